// Package migrate 提供配置文件迁移命令。
package migrate

import (
	"github.com/urfave/cli/v3"
)

// Command 迁移命令
var Command = &cli.Command{
	Name:      "migrate",
	Usage:     "加载配置文件并升级到当前 schema 版本",
	ArgsUsage: "[path]",
	Action:    action,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "dry-run",
			Aliases: []string{"n"},
			Usage:   "只报告迁移结果，不写回磁盘",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "输出迁移过程的调试日志",
		},
	},
}

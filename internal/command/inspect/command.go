// Package inspect 提供配置文件巡检命令。
package inspect

import (
	"github.com/urfave/cli/v3"
)

// Command 巡检命令
var Command = &cli.Command{
	Name:      "inspect",
	Usage:     "探测配置文件版本并列出迁移链",
	ArgsUsage: "[path]",
	Action:    action,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "example",
			Usage: "输出带注释的 YAML 配置示例",
		},
	},
}

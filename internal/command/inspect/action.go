package inspect

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260830-go-pkg-cfgmig/internal/command"
	"github.com/lwmacct/260830-go-pkg-cfgmig/internal/config"
	"github.com/lwmacct/260830-go-pkg-cfgmig/pkg/cfgman"
	"github.com/lwmacct/260830-go-pkg-cfgmig/pkg/cfgmig"
)

func action(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("example") {
		_, err := os.Stdout.Write(cfgman.ExampleYAML(config.DefaultConfig()))

		return err
	}

	path := cmd.Args().First()
	if path == "" {
		// 未指定文件时巡检默认搜索路径
		paths := cfgman.DefaultPaths(command.AppName)
		for _, candidate := range paths {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate

				break
			}
		}
		if path == "" {
			fmt.Println("未找到配置文件，搜索路径：")
			for _, candidate := range paths {
				fmt.Println("  -", candidate)
			}

			return nil
		}
	}

	probed := cfgmig.ProbeVersion(path)
	chain := config.NewChain()

	fmt.Println("文件:", path)
	fmt.Println("探测版本:", probed)
	fmt.Println("当前版本:", config.CurrentVersion)
	fmt.Println("可迁移:", chain.CanMigrate(probed, config.CurrentVersion))

	steps := chain.Steps()
	fmt.Printf("已注册 %d 个迁移步骤:\n", len(steps))
	for _, step := range steps {
		marker := " "
		if step.From >= probed && step.To <= config.CurrentVersion {
			// 本次加载会实际执行的步骤
			marker = "*"
		}
		fmt.Printf("  %s %d -> %d\n", marker, step.From, step.To)
	}

	return nil
}

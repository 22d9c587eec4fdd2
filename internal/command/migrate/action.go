package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260830-go-pkg-cfgmig/internal/config"
	"github.com/lwmacct/260830-go-pkg-cfgmig/pkg/cfgman"
)

func action(ctx context.Context, cmd *cli.Command) error {
	level := slog.LevelInfo
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var opts []cfgman.Option
	if cmd.Bool("dry-run") {
		opts = append(opts, cfgman.WithoutPersist())
	}

	mgr := config.NewManager(cmd.Args().First(), logger, opts...)

	result, err := mgr.Load()
	if err != nil {
		return fmt.Errorf("加载成功但写回失败: %w", err)
	}

	fmt.Println("文件:", mgr.Path())
	switch {
	case result.WasCreated:
		fmt.Println("结果: 原配置不可用，已生成默认配置")
	case result.WasMigrated:
		fmt.Printf("结果: 已从版本 %d 迁移到 %d\n", result.OriginalVersion, config.CurrentVersion)
	default:
		fmt.Printf("结果: 无需迁移 (版本 %d)\n", result.OriginalVersion)
	}
	if cmd.Bool("dry-run") {
		fmt.Println("dry-run: 未写回磁盘")
	}

	fmt.Println(string(cfgman.MarshalJSON(result.Config)))

	return nil
}

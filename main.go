package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260830-go-pkg-cfgmig/internal/command"
	"github.com/lwmacct/260830-go-pkg-cfgmig/internal/command/inspect"
	"github.com/lwmacct/260830-go-pkg-cfgmig/internal/command/migrate"
)

func main() {
	app := &cli.Command{
		Name:  command.AppName,
		Usage: "配置迁移工具",
		Commands: []*cli.Command{
			inspect.Command,
			migrate.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

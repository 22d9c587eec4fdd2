// Package command 提供配置巡检与迁移的命令行功能。
package command

import "github.com/lwmacct/260830-go-pkg-cfgmig/internal/config"

// AppName 应用名称，决定默认配置搜索路径（.cfgmig.json 等）。
const AppName = "cfgmig"

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// Package config 提供应用配置管理。
//
// 配置文件是带 Version 字段的 JSON 文档，schema 演进历史：
//  0. legacy - 扁平结构（addr / timeout 在顶层）
//  1. 引入 server 分组
//  2. 引入 log 分组
//  3. 移除 server.docs，client 增加重试配置
//
// 旧版本文件由注册的迁移链自动升级（见 [NewChain]）。
package config

import (
	"log/slog"
	"time"

	"github.com/lwmacct/260830-go-pkg-cfgmig/pkg/cfgman"
	"github.com/lwmacct/260830-go-pkg-cfgmig/pkg/cfgmig"
)

// CurrentVersion 当前配置 schema 版本。
//
// 每次不兼容的结构调整都要递增此值，并在 [NewChain] 中补上
// 对应的迁移步骤。
const CurrentVersion cfgmig.Version = 3

// Config 应用配置。
type Config struct {
	Server ServerConfig `json:"server" desc:"服务端配置"`
	Client ClientConfig `json:"client" desc:"客户端配置"`
	Log    LogConfig    `json:"log" desc:"日志配置"`
}

// ServerConfig 服务端配置。
type ServerConfig struct {
	Addr    string        `json:"addr" desc:"服务器监听地址"`
	Timeout time.Duration `json:"timeout" desc:"HTTP 读写超时"`
}

// ClientConfig 客户端配置。
type ClientConfig struct {
	URL     string        `json:"url" desc:"服务器地址"`
	Timeout time.Duration `json:"timeout" desc:"请求超时时间"`
	Retries int           `json:"retries" desc:"重试次数"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level string `json:"level" desc:"日志级别 (debug/info/warn/error)"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:    ":40117",
			Timeout: 15 * time.Second,
		},
		Client: ClientConfig{
			URL:     `${API_BASE_URL:-:40117}`,
			Timeout: 30 * time.Second,
			Retries: 3,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// NewChain 返回覆盖全部历史版本的迁移链。
//
// 步骤必须保持 0 → CurrentVersion 连续可达，无空洞。
func NewChain() *cfgmig.Chain {
	return cfgmig.NewChain().
		MustRegister(cfgmig.Step{
			// 0 → 1: 顶层 addr / timeout 移入 server 分组
			From: 0,
			To:   1,
			Transform: cfgmig.Compose(
				cfgmig.RenameField("addr", "server.addr"),
				cfgmig.RenameField("timeout", "server.timeout"),
			),
		}).
		MustRegister(cfgmig.Step{
			// 1 → 2: 引入 log 分组
			From:      1,
			To:        2,
			Transform: cfgmig.AddField("log.level", "info"),
		}).
		MustRegister(cfgmig.Step{
			// 2 → 3: 移除废弃的 server.docs，client 增加重试配置
			From: 2,
			To:   3,
			Transform: cfgmig.Compose(
				cfgmig.RemoveField("server.docs"),
				cfgmig.AddField("client.retries", 3),
			),
		})
}

// NewService 创建本配置类型的迁移加载服务。
func NewService(logger *slog.Logger) *cfgmig.Service[Config] {
	return cfgmig.NewService(CurrentVersion, DefaultConfig,
		cfgmig.WithChain(NewChain()),
		cfgmig.WithLogger(logger),
	)
}

// NewManager 创建配置管理者；path 为空时走默认搜索路径。
func NewManager(path string, logger *slog.Logger, opts ...cfgman.Option) *cfgman.Manager[Config] {
	base := []cfgman.Option{cfgman.WithLogger(logger)}
	if path != "" {
		base = append(base, cfgman.WithPath(path))
	} else {
		base = append(base, cfgman.WithAppName("cfgmig"))
	}

	return cfgman.New(NewService(logger), append(base, opts...)...)
}

package cfgman

import (
	"log/slog"
	"os"
)

// options 管理者构造选项。
type options struct {
	path      string
	paths     []string
	appName   string
	logger    *slog.Logger
	noExpand  bool
	noPersist bool
	mode      os.FileMode
}

// Option 管理者构造选项函数。
type Option func(*options)

// newOptions 应用选项并填充默认值。
func newOptions(opts ...Option) *options {
	o := &options{mode: 0o600}
	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	return o
}

// WithPath 显式指定配置文件路径，跳过搜索。
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithPaths 设置配置文件搜索路径，先命中的文件生效。
func WithPaths(paths ...string) Option {
	return func(o *options) {
		o.paths = paths
	}
}

// WithAppName 设置应用名称，用于生成默认搜索路径（见 [DefaultPaths]）。
func WithAppName(name string) Option {
	return func(o *options) {
		o.appName = name
	}
}

// WithLogger 注入日志 sink，默认静默。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithoutTemplateExpansion 禁用配置文件的模板展开。
//
// 默认会执行 Shell 参数展开（如 ${VAR:-default}）。
// 该选项会保留原始 ${...} 字符串。
func WithoutTemplateExpansion() Option {
	return func(o *options) {
		o.noExpand = true
	}
}

// WithoutPersist 禁用新建与迁移后的自动写回，加载变为只读操作。
func WithoutPersist() Option {
	return func(o *options) {
		o.noPersist = true
	}
}

// WithFileMode 设置写回文件的权限，默认 0600。
func WithFileMode(mode os.FileMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

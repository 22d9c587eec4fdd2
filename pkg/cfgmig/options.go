package cfgmig

import "log/slog"

// options 服务构造选项。
type options struct {
	chain  *Chain
	logger *slog.Logger
}

// Option 服务构造选项函数。
type Option func(*options)

// newOptions 应用选项并填充默认值。
func newOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.chain == nil {
		o.chain = NewChain()
	}
	if o.logger == nil {
		// 默认静默：未注入 logger 不改变任何行为
		o.logger = slog.New(slog.DiscardHandler)
	}

	return o
}

// WithChain 注入该配置类型的迁移链。
//
// 未注入时使用空链：版本相等或更新的文件仍可加载，旧版本文件只能
// 回退默认值。
func WithChain(chain *Chain) Option {
	return func(o *options) {
		o.chain = chain
	}
}

// WithLogger 注入日志 sink，接收探测结果、迁移进度与回退决策。
//
// 默认使用 [slog.DiscardHandler]（静默），绝不使用全局 logger。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

package sqldb

// 函数式选项模式

import (
	"go.uber.org/zap"
)

type options struct {
	logger       *zap.Logger
	sqlUrl       string
	maxOpenConns int
}

// 默认选项
var defaultOptions = options{
	logger:       zap.NewNop(),
	maxOpenConns: 16,
}

type Option func(opts *options)

// 配置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// 配置数据库的链接url，格式为user:password@tcp(host:port)/dbname?charset=utf8mb4
func WithConnURL(sqlURL string) Option {
	return func(opts *options) {
		opts.sqlUrl = sqlURL
	}
}

func WithMaxOpenConns(n int) Option {
	return func(opts *options) {
		opts.maxOpenConns = n
	}
}

package page

// 页面解析器的函数式选项

import (
	"github.com/dszqbsm/hoopstat/dom"
	"github.com/dszqbsm/hoopstat/urls"
	"go.uber.org/zap"
)

type options struct {
	logger  *zap.Logger
	backend dom.Backend // 为空时使用页面类型固定的第一个后端
	builder dom.Builder
	strict  bool
	baseURL string
}

var defaultOptions = options{
	logger:  zap.NewNop(),
	builder: dom.Parse,
	strict:  true,
	baseURL: urls.BaseURL,
}

type Option func(opts *options)

func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// 指定树构建后端，必须是页面类型支持的后端之一
func WithBackend(backend dom.Backend) Option {
	return func(opts *options) {
		opts.backend = backend
	}
}

// 替换文档构建函数
func WithBuilder(builder dom.Builder) Option {
	return func(opts *options) {
		opts.builder = builder
	}
}

// 非严格模式下跳过出错的行，返回成功的记录和汇总后的错误
func WithStrict(strict bool) Option {
	return func(opts *options) {
		opts.strict = strict
	}
}

// 相对链接的解析基准
func WithBaseURL(baseURL string) Option {
	return func(opts *options) {
		opts.baseURL = baseURL
	}
}

package fetch

import (
	"time"

	"github.com/dszqbsm/hoopstat/proxy"
	"go.uber.org/zap"
)

const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

type options struct {
	logger    *zap.Logger
	timeout   time.Duration
	proxy     proxy.ProxyFunc
	userAgent string
	cookie    string
}

var defaultOptions = options{
	logger:    zap.NewNop(),
	timeout:   10 * time.Second,
	userAgent: DefaultUserAgent,
}

type Option func(opts *options)

func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// 单次请求的超时时间，0表示不限制
func WithTimeout(timeout time.Duration) Option {
	return func(opts *options) {
		opts.timeout = timeout
	}
}

// 为nil时直连
func WithProxy(p proxy.ProxyFunc) Option {
	return func(opts *options) {
		opts.proxy = p
	}
}

func WithUserAgent(ua string) Option {
	return func(opts *options) {
		if ua != "" {
			opts.userAgent = ua
		}
	}
}

func WithCookie(cookie string) Option {
	return func(opts *options) {
		opts.cookie = cookie
	}
}

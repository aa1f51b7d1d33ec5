package page

// 页面解析门面：第一次取数时构建文档并提取，结果与错误都缓存在实例上

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dszqbsm/hoopstat/dom"
	"github.com/dszqbsm/hoopstat/ident"
	"github.com/dszqbsm/hoopstat/record"
	"github.com/golang/groupcache/singleflight"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	ErrBackendNotPinned = errors.New("page: backend not supported by page type")
	ErrPanic            = errors.New("page: extraction panicked")
)

// 从文档中提取一种页面类型的结果
type ParseFunc[T any] func(ctx *Context) (T, error)

// 一个页面类型加一份页面内容对应一个实例，实例的生命周期内内容不变，因此缓存不需要失效
type Parser[T any] struct {
	name     string
	backends []dom.Backend
	body     []byte
	parse    ParseFunc[T]
	options

	flight singleflight.Group
	mu     sync.Mutex
	done   bool
	data   T
	err    error
}

/*
输入页面类型名、该类型支持的后端、页面内容、提取函数和可选配置，输出一个解析器

此时不会构建文档，构建推迟到第一次调用Data
*/
func New[T any](name string, backends []dom.Backend, body []byte, parse ParseFunc[T], opts ...Option) *Parser[T] {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = zap.NewNop()
	}
	if options.builder == nil {
		options.builder = dom.Parse
	}
	return &Parser[T]{
		name:     name,
		backends: backends,
		body:     body,
		parse:    parse,
		options:  options,
	}
}

func (p *Parser[T]) Name() string {
	return p.name
}

// 实际使用的后端
func (p *Parser[T]) Backend() dom.Backend {
	if p.backend != "" {
		return p.backend
	}
	if len(p.backends) > 0 {
		return p.backends[0]
	}
	return dom.BackendGoquery
}

/*
无输入，输出提取结果和错误

第一次调用时构建文档并执行提取，并发的首次调用由singleflight合并为一次；之后的调用直接返回缓存，不再访问文档。
提取过程中的panic转为ErrPanic缓存起来，否则singleflight中的等待者永远不会被唤醒
*/
func (p *Parser[T]) Data() (T, error) {
	if ok, data, err := p.cached(); ok {
		return data, err
	}
	p.flight.Do(p.name, func() (interface{}, error) {
		if ok, _, _ := p.cached(); ok {
			return nil, nil
		}
		var (
			data T
			err  error
		)
		defer func() {
			if r := recover(); r != nil {
				var zero T
				data, err = zero, fmt.Errorf("%w: %s: %v", ErrPanic, p.name, r)
				p.logger.Error("page extraction panicked", zap.String("page", p.name), zap.Any("panic", r))
			}
			p.mu.Lock()
			p.data, p.err, p.done = data, err, true
			p.mu.Unlock()
		}()
		data, err = p.run()
		return nil, nil
	})
	_, data, err := p.cached()
	return data, err
}

func (p *Parser[T]) cached() (bool, T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done, p.data, p.err
}

func (p *Parser[T]) run() (T, error) {
	var zero T
	backend := p.Backend()
	if !p.pinned(backend) {
		return zero, fmt.Errorf("%w: %s does not support %q", ErrBackendNotPinned, p.name, backend)
	}

	start := time.Now()
	doc, err := p.builder(p.body, backend)
	if err != nil {
		return zero, fmt.Errorf("page %s: build document: %w", p.name, err)
	}
	ctx := &Context{
		Page:    p.name,
		Doc:     doc,
		Logger:  p.logger.With(zap.String("page", p.name)),
		Strict:  p.strict,
		BaseURL: p.baseURL,
		Ident:   ident.New(p.logger.With(zap.String("page", p.name))),
	}
	data, err := p.parse(ctx)
	if err != nil {
		err = tagPage(p.name, err)
		p.logger.Warn("page extraction failed",
			zap.String("page", p.name),
			zap.String("backend", string(backend)),
			zap.Int("errors", len(multierr.Errors(err))),
			zap.Error(err),
		)
	}
	p.logger.Debug("page parsed",
		zap.String("page", p.name),
		zap.String("backend", string(backend)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return data, err
}

func (p *Parser[T]) pinned(backend dom.Backend) bool {
	if len(p.backends) == 0 {
		return true
	}
	for _, b := range p.backends {
		if b == backend {
			return true
		}
	}
	return false
}

// 为所有未标注页面的ExtractError补上页面类型名
func tagPage(name string, err error) error {
	for _, e := range multierr.Errors(err) {
		var ee *record.ExtractError
		if errors.As(e, &ee) && ee.Page == "" {
			ee.Page = name
		}
	}
	return err
}

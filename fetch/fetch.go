package fetch

// 抓取单个页面并统一转换为UTF-8，供命令行在没有本地文件时使用

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// 响应状态码不是200
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: error status code:%d", e.URL, e.Code)
}

type browserFetch struct {
	options
	client *http.Client
}

func New(opts ...Option) Fetcher {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	client := &http.Client{
		Timeout: options.timeout,
	}
	if options.proxy != nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.Proxy = options.proxy
		client.Transport = transport
	}
	return &browserFetch{options: options, client: client}
}

/*
输入上下文和页面地址，输出UTF-8编码的页面内容和错误

设置User-Agent和Cookie后发送GET请求，状态码不是200时返回StatusError；响应编码根据Content-Type和前1024字节检测
*/
func (b *browserFetch) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("get url failed:%w", err)
	}
	req.Header.Set("User-Agent", b.userAgent)
	if len(b.cookie) > 0 {
		req.Header.Set("Cookie", b.cookie)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		b.logger.Error("fetch failed", zap.String("url", url), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b.logger.Warn("unexpected status", zap.String("url", url), zap.Int("code", resp.StatusCode))
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	bodyReader := bufio.NewReader(resp.Body)
	e := b.determineEncoding(bodyReader, resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(transform.NewReader(bodyReader, e.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", url, err)
	}
	b.logger.Debug("page fetched", zap.String("url", url), zap.Int("bytes", len(body)))
	return body, nil
}

// 内容不足1024字节时用已读到的部分检测
func (b *browserFetch) determineEncoding(r *bufio.Reader, contentType string) encoding.Encoding {
	peek, err := r.Peek(1024)
	if err != nil && !errors.Is(err, io.EOF) {
		b.logger.Error("peek body failed", zap.Error(err))
		return unicode.UTF8
	}
	e, _, _ := charset.DetermineEncoding(peek, contentType)
	return e
}

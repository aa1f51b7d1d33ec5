package proxy

// 按轮询顺序为每个请求挑选代理服务器

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
)

var ErrEmptyProxy = errors.New("proxy: url list is empty")

type ProxyFunc func(*http.Request) (*url.URL, error)

type roundRobinSwitcher struct {
	proxyURLs []*url.URL
	index     uint32
}

// 并发安全，多个请求同时取代理时依次拿到不同的地址
func (r *roundRobinSwitcher) GetProxy(pr *http.Request) (*url.URL, error) {
	if len(r.proxyURLs) == 0 {
		return nil, ErrEmptyProxy
	}
	index := atomic.AddUint32(&r.index, 1) - 1
	u := r.proxyURLs[index%uint32(len(r.proxyURLs))]
	return u, nil
}

/*
输入代理服务器地址列表，输出代理切换函数和错误

地址必须带有协议和主机，如http://127.0.0.1:8888或socks5://127.0.0.1:1080
*/
func RoundRobinProxySwitcher(proxyURLs ...string) (ProxyFunc, error) {
	if len(proxyURLs) < 1 {
		return nil, ErrEmptyProxy
	}
	urls := make([]*url.URL, len(proxyURLs))
	for i, u := range proxyURLs {
		parsedU, err := url.Parse(strings.TrimSpace(u))
		if err != nil {
			return nil, err
		}
		if parsedU.Scheme == "" || parsedU.Host == "" {
			return nil, fmt.Errorf("proxy: invalid url %q", u)
		}
		urls[i] = parsedU
	}
	return (&roundRobinSwitcher{proxyURLs: urls}).GetProxy, nil
}

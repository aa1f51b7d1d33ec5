package dom

// 对HTML树构建与选择器查询能力的封装，页面解析器只依赖这里的Node/Document接口

import (
	"errors"
	"fmt"
	"strings"
)

type Backend string

const (
	BackendGoquery Backend = "goquery" // goquery + cascadia，CSS选择器原生执行
	BackendXPath   Backend = "xpath"   // htmlquery + xpath，CSS选择器先翻译为XPath 1.0
)

var ErrUnknownBackend = errors.New("dom: unknown backend")

// 选择器无法编译或翻译
type SelectorError struct {
	Selector string
	Backend  Backend
	Err      error
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("dom(%s): invalid selector %q: %v", e.Backend, e.Selector, e.Err)
}

func (e *SelectorError) Unwrap() error {
	return e.Err
}

// 树中的一个元素
type Node interface {
	// 以当前节点为上下文查找所有匹配选择器的后代元素
	Find(selector string) ([]Node, error)
	// 所有后代文本节点拼接后的文本，不做裁剪
	Text() string
	Attr(name string) (string, bool)
	ParentTag() string
}

// 一次页面解析得到的整棵树，构建后只读
type Document interface {
	Node
	Backend() Backend
}

// 文档构建函数，测试中可替换以统计构建次数
type Builder func(body []byte, backend Backend) (Document, error)

/*
输入页面内容和后端名称，输出文档和错误

根据后端选择goquery或htmlquery构建树，后端未知时返回ErrUnknownBackend
*/
func Parse(body []byte, backend Backend) (Document, error) {
	switch backend {
	case BackendGoquery, "":
		return newGoqueryDocument(body)
	case BackendXPath:
		return newXPathDocument(body)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// 命令行与配置文件中的后端名称
func ParseBackend(name string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(name))); b {
	case BackendGoquery, BackendXPath:
		return b, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

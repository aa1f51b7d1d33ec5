package dom

import (
	"bytes"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
)

type xpathNode struct {
	n *html.Node
}

type xpathDocument struct {
	xpathNode
}

func newXPathDocument(body []byte) (Document, error) {
	root, err := htmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return &xpathDocument{xpathNode{n: root}}, nil
}

func (d *xpathDocument) Backend() Backend {
	return BackendXPath
}

func (n xpathNode) Find(selector string) ([]Node, error) {
	expr, err := compileXPath(selector)
	if err != nil {
		return nil, err
	}
	found := htmlquery.QuerySelectorAll(n.n, expr)
	nodes := make([]Node, 0, len(found))
	for _, f := range found {
		if f.Type != html.ElementNode {
			continue
		}
		nodes = append(nodes, xpathNode{n: f})
	}
	return nodes, nil
}

func (n xpathNode) Text() string {
	return htmlquery.InnerText(n.n)
}

func (n xpathNode) Attr(name string) (string, bool) {
	if !htmlquery.ExistsAttr(n.n, name) {
		return "", false
	}
	return htmlquery.SelectAttr(n.n, name), true
}

func (n xpathNode) ParentTag() string {
	p := n.n.Parent
	if p == nil || p.Type != html.ElementNode {
		return ""
	}
	return p.Data
}

// CSS选择器翻译为相对于上下文节点的XPath后编译，结果缓存
func compileXPath(selector string) (*xpath.Expr, error) {
	key := "xpath:" + selector
	if v, ok := selectors.get(key); ok {
		return v.(*xpath.Expr), nil
	}
	src, err := cssToXPath(selector)
	if err != nil {
		return nil, &SelectorError{Selector: selector, Backend: BackendXPath, Err: err}
	}
	expr, err := xpath.Compile(src)
	if err != nil {
		return nil, &SelectorError{Selector: selector, Backend: BackendXPath, Err: err}
	}
	selectors.add(key, expr)
	return expr, nil
}

package dom

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

type goqueryNode struct {
	sel *goquery.Selection
}

type goqueryDocument struct {
	goqueryNode
}

func newGoqueryDocument(body []byte) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return &goqueryDocument{goqueryNode{sel: doc.Selection}}, nil
}

func (d *goqueryDocument) Backend() Backend {
	return BackendGoquery
}

// 选择器由cascadia编译后缓存，非法选择器在这里报错，而不是像Selection.Find那样静默返回空结果
func (n goqueryNode) Find(selector string) ([]Node, error) {
	m, err := compileCSS(selector)
	if err != nil {
		return nil, err
	}
	found := n.sel.FindMatcher(m)
	nodes := make([]Node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, goqueryNode{sel: s})
	})
	return nodes, nil
}

func (n goqueryNode) Text() string {
	return n.sel.Text()
}

func (n goqueryNode) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

func (n goqueryNode) ParentTag() string {
	if len(n.sel.Nodes) == 0 {
		return ""
	}
	p := n.sel.Nodes[0].Parent
	if p == nil || p.Type != html.ElementNode {
		return ""
	}
	return p.Data
}

func compileCSS(selector string) (cascadia.Selector, error) {
	key := "css:" + selector
	if v, ok := selectors.get(key); ok {
		return v.(cascadia.Selector), nil
	}
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, &SelectorError{Selector: selector, Backend: BackendGoquery, Err: err}
	}
	selectors.add(key, m)
	return m, nil
}

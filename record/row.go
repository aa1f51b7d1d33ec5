package record

// 行提取：在容器内按行选择器取出所有行并分类

import (
	"strings"

	"github.com/dszqbsm/hoopstat/dom"
)

type RowKind int

// RowDivider为表内重复的表头、分组标题等；RowDidNotPlay有原因单元格，没有统计数据
const (
	RowData RowKind = iota
	RowDivider
	RowDidNotPlay
)

func (k RowKind) String() string {
	switch k {
	case RowDivider:
		return "divider"
	case RowDidNotPlay:
		return "did_not_play"
	default:
		return "data"
	}
}

// 只根据行自身的标记分类，与行的位置无关
type Classifier func(n dom.Node) RowKind

type Row struct {
	Index int
	Kind  RowKind
	Node  dom.Node
}

/*
输入一行，输出该行的分类

class属性非空的行是分隔行；否则含有非空原因单元格（td[data-stat=reason]）的行是未出场行；其余为数据行
*/
func DefaultClassifier(n dom.Node) RowKind {
	if class, ok := n.Attr("class"); ok && strings.TrimSpace(class) != "" {
		return RowDivider
	}
	cells, err := n.Find(ReasonSelector)
	if err == nil && len(cells) > 0 && strings.TrimSpace(cells[0].Text()) != "" {
		return RowDidNotPlay
	}
	return RowData
}

// class中含有任一标记的行是分隔行，其余都是数据行
func MarkerClassifier(markers ...string) Classifier {
	return func(n dom.Node) RowKind {
		class, _ := n.Attr("class")
		for _, c := range strings.Fields(class) {
			for _, m := range markers {
				if c == m {
					return RowDivider
				}
			}
		}
		return RowData
	}
}

// 只有class中含有指定标记的行是数据行
func RequireClass(class string) Classifier {
	return func(n dom.Node) RowKind {
		got, _ := n.Attr("class")
		for _, c := range strings.Fields(got) {
			if c == class {
				return RowData
			}
		}
		return RowDivider
	}
}

func AllData(dom.Node) RowKind {
	return RowData
}

/*
输入文档、容器选择器、行选择器和分类函数，输出所有行（含分隔行）和错误

容器取第一个匹配；行选择器作为容器的后代选择器执行，因此浏览器插入的tbody不影响匹配；
位于thead、tfoot中的行直接跳过，不参与分类
*/
func Scan(doc dom.Node, container, row string, classify Classifier) ([]Row, error) {
	containers, err := doc.Find(container)
	if err != nil {
		return nil, &ExtractError{Row: -1, Selector: container, Err: err}
	}
	if len(containers) == 0 {
		return nil, &ExtractError{Row: -1, Selector: container, Err: ErrNoMatch}
	}
	nodes, err := containers[0].Find(row)
	if err != nil {
		return nil, &ExtractError{Row: -1, Selector: row, Err: err}
	}
	if classify == nil {
		classify = DefaultClassifier
	}
	rows := make([]Row, 0, len(nodes))
	for _, n := range nodes {
		switch n.ParentTag() {
		case "thead", "tfoot":
			continue
		}
		rows = append(rows, Row{Index: len(rows), Kind: classify(n), Node: n})
	}
	return rows, nil
}

// 与Scan相同，但去掉分隔行
func Rows(doc dom.Node, container, row string, classify Classifier) ([]Row, error) {
	all, err := Scan(doc, container, row, classify)
	if err != nil {
		return nil, err
	}
	rows := all[:0]
	for _, r := range all {
		if r.Kind != RowDivider {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

package playerdir

// 球员目录页：姓氏首字母到对应球员列表页地址的映射

import (
	"sort"

	"github.com/dszqbsm/hoopstat/dom"
	"github.com/dszqbsm/hoopstat/page"
	"github.com/dszqbsm/hoopstat/record"
	"go.uber.org/multierr"
)

const Name = "playerdir"

// 字母链接后面混有热门球员链接，只有li的直接子元素a才是字母链接；该结构在两种后端下结果不一致，只支持goquery
var Backends = []dom.Backend{dom.BackendGoquery}

var Fields = []string{"letter", "url"}

const (
	letterIndex = "ul.page_index"
	letterLink  = "li > a"
)

var schema = record.Schema{
	Name: Name,
	Fields: []record.Field{
		{Name: "letter", Rule: record.Lower},
		{Name: "href", Attr: "href"},
	},
}

type Parser struct {
	*page.Parser[map[string]string]
}

func New(body []byte, opts ...page.Option) *Parser {
	return &Parser{page.New(Name, Backends, body, parse, opts...)}
}

var Kind = page.NewKind(Name, Backends, Fields, parse, flatten)

// 没有球员的字母（如x）在页面上没有链接，结果中也不存在
func parse(ctx *page.Context) (map[string]string, error) {
	recs, err := ctx.Records(letterIndex, letterLink, record.AllData, schema)
	urls := make(map[string]string, len(recs))
	for _, r := range recs {
		href := r.String("href")
		if _, ok := ctx.Ident.PlayerLetter(href); !ok {
			continue
		}
		u, uerr := ctx.Abs(href)
		if uerr != nil {
			ferr := ctx.RecordError(Name, r, "href", uerr)
			if ctx.Strict {
				return nil, ferr
			}
			err = multierr.Append(err, ferr)
			continue
		}
		urls[r.String("letter")] = u
	}
	return urls, err
}

func flatten(urls map[string]string) [][]string {
	letters := make([]string, 0, len(urls))
	for l := range urls {
		letters = append(letters, l)
	}
	sort.Strings(letters)
	rows := make([][]string, 0, len(letters))
	for _, l := range letters {
		rows = append(rows, []string{l, urls[l]})
	}
	return rows
}

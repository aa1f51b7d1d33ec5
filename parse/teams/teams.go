package teams

// 球队索引页：现役球队的名称、缩写和球队主页地址

import (
	"github.com/dszqbsm/hoopstat/dom"
	"github.com/dszqbsm/hoopstat/page"
	"github.com/dszqbsm/hoopstat/record"
	"go.uber.org/multierr"
)

const Name = "teams"

var Backends = []dom.Backend{dom.BackendGoquery, dom.BackendXPath}

var Fields = []string{"name", "abbreviation", "status", "url"}

const (
	activeContainer = "#all_teams_active"
	teamRow         = "tr"
	franchiseClass  = "full_table" // 球队主行，其余为历史队名行
	statusActive    = "active"
)

var schema = record.Schema{
	Name: Name,
	Fields: []record.Field{
		{Name: "name", Selector: "th[data-stat=franch_name] a", Rule: record.Lower},
		{Name: "href", Selector: "th[data-stat=franch_name] a", Attr: "href"},
	},
}

type Team struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Status       string `json:"status"`
	URL          string `json:"url"`
}

type Parser struct {
	*page.Parser[[]Team]
}

func New(body []byte, opts ...page.Option) *Parser {
	return &Parser{page.New(Name, Backends, body, parse, opts...)}
}

var Kind = page.NewKind(Name, Backends, Fields, parse, flatten)

/*
输入提取上下文，输出球队列表和错误

链接不是/teams/XXX/形式的行只记录告警并跳过
*/
func parse(ctx *page.Context) ([]Team, error) {
	recs, err := ctx.Records(activeContainer, teamRow, record.RequireClass(franchiseClass), schema)
	teams := make([]Team, 0, len(recs))
	for _, r := range recs {
		href := r.String("href")
		abbr, ok := ctx.Ident.Team(href)
		if !ok {
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
		teams = append(teams, Team{
			Name:         r.String("name"),
			Abbreviation: abbr,
			Status:       statusActive,
			URL:          u,
		})
	}
	return teams, err
}

func flatten(teams []Team) [][]string {
	rows := make([][]string, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, []string{t.Name, t.Abbreviation, t.Status, t.URL})
	}
	return rows
}

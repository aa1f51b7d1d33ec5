package summary

// 赛季概况页：东西部排名表中的球队，以及球队赛季页地址中的缩写和赛季结束年

import (
	"github.com/dszqbsm/hoopstat/dom"
	"github.com/dszqbsm/hoopstat/page"
	"github.com/dszqbsm/hoopstat/record"
	"go.uber.org/multierr"
)

const Name = "summary"

var Backends = []dom.Backend{dom.BackendGoquery, dom.BackendXPath}

var Fields = []string{"team_name", "team_season_url", "abbreviation", "end_year"}

// 排名表按联盟分为东西两张
var conferences = []string{
	"#all_confs_standings_E table",
	"#all_confs_standings_W table",
}

const (
	standingsRow = "tr"
	teamLink     = "th[data-stat=team_name] a"
)

var schema = record.Schema{
	Name: Name,
	Fields: []record.Field{
		{Name: "team_name", Selector: teamLink, Rule: record.Lower},
		{Name: "href", Selector: teamLink, Attr: "href"},
	},
}

type TeamSeason struct {
	TeamName     string `json:"team_name"`
	URL          string `json:"team_season_url"`
	Abbreviation string `json:"abbreviation"`
	EndYear      string `json:"end_year"`
}

type Parser struct {
	*page.Parser[[]TeamSeason]
}

func New(body []byte, opts ...page.Option) *Parser {
	return &Parser{page.New(Name, Backends, body, parse, opts...)}
}

var Kind = page.NewKind(Name, Backends, Fields, parse, flatten)

/*
输入提取上下文，输出球队赛季列表和错误

先东部后西部；链接无法解析出缩写和年份时两个字段留空，记录本身保留
*/
func parse(ctx *page.Context) ([]TeamSeason, error) {
	var (
		out  []TeamSeason
		errs error
	)
	for _, conf := range conferences {
		recs, err := ctx.Records(conf, standingsRow, record.MarkerClassifier("thead"), schema)
		if err != nil {
			if ctx.Strict {
				return nil, err
			}
			errs = multierr.Append(errs, err)
		}
		for _, r := range recs {
			href := r.String("href")
			u, uerr := ctx.Abs(href)
			if uerr != nil {
				ferr := ctx.RecordError(Name, r, "href", uerr)
				if ctx.Strict {
					return nil, ferr
				}
				errs = multierr.Append(errs, ferr)
				continue
			}
			id := ctx.Ident.TeamSeason(href)
			out = append(out, TeamSeason{
				TeamName:     r.String("team_name"),
				URL:          u,
				Abbreviation: id.Abbreviation,
				EndYear:      id.EndYear,
			})
		}
	}
	return out, errs
}

func flatten(teams []TeamSeason) [][]string {
	rows := make([][]string, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, []string{t.TeamName, t.URL, t.Abbreviation, t.EndYear})
	}
	return rows
}

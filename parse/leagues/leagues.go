package leagues

// 联盟索引页：每个赛季、每个联盟一条记录

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/dszqbsm/hoopstat/coerce"
	"github.com/dszqbsm/hoopstat/dom"
	"github.com/dszqbsm/hoopstat/page"
	"github.com/dszqbsm/hoopstat/record"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const Name = "leagues"

var Backends = []dom.Backend{dom.BackendGoquery, dom.BackendXPath}

var Fields = []string{"league", "season", "start_year", "end_year", "url"}

const (
	statsTable = "table#stats"
	seasonRow  = "tr"
	seasonLink = "th[data-stat=season] a"
)

var schema = record.Schema{
	Name: Name,
	Fields: []record.Field{
		{Name: "season", Selector: seasonLink, Rule: record.Lower, Optional: true},
		{Name: "href", Selector: seasonLink, Attr: "href", Optional: true},
	},
}

// 同一赛季可能同时存在NBA和ABA两个联盟
type Season struct {
	League    string    `json:"league"`
	Label     string    `json:"season"`
	StartYear time.Time `json:"start_year"`
	EndYear   time.Time `json:"end_year"`
	URL       string    `json:"url"`
}

// 起止年份输出为当年1月1日
func (s Season) MarshalJSON() ([]byte, error) {
	type plain Season
	return json.Marshal(struct {
		plain
		StartYear string `json:"start_year"`
		EndYear   string `json:"end_year"`
	}{plain(s), s.StartYear.Format(coerce.BirthLayout), s.EndYear.Format(coerce.BirthLayout)})
}

type SeasonKey struct {
	Label  string
	League string
}

type Parser struct {
	*page.Parser[[]Season]
}

func New(body []byte, opts ...page.Option) *Parser {
	return &Parser{page.New(Name, Backends, body, parse, opts...)}
}

var Kind = page.NewKind(Name, Backends, Fields, parse, flatten)

// 以(赛季标签, 联盟)为键的地址索引
func (p *Parser) Index() (map[SeasonKey]string, error) {
	seasons, err := p.Data()
	idx := make(map[SeasonKey]string, len(seasons))
	for _, s := range seasons {
		idx[SeasonKey{Label: s.Label, League: s.League}] = s.URL
	}
	return idx, err
}

/*
输入提取上下文，输出赛季列表和错误

没有赛季链接的行（表头重复行等）直接跳过；链接不符合/leagues/XXX_YYYY.html的行记录告警后跳过；赛季标签或链接无法转换时返回带行号和字段的ExtractError
*/
func parse(ctx *page.Context) ([]Season, error) {
	recs, err := ctx.Records(statsTable, seasonRow, record.MarkerClassifier("thead", "over_header"), schema)
	if err != nil && ctx.Strict {
		return nil, err
	}
	seasons := make([]Season, 0, len(recs))
	for _, r := range recs {
		href, _ := r.Get("href")
		if href.Kind == record.KindMissing {
			continue
		}
		league, _, ok := ctx.Ident.League(href.Str)
		if !ok {
			continue
		}
		label := r.String("season")
		start, end, serr := coerce.SeasonYears(label)
		if serr != nil {
			ferr := ctx.RecordError(Name, r, "season", serr)
			if ctx.Strict {
				return nil, ferr
			}
			err = multierr.Append(err, ferr)
			continue
		}
		u, uerr := ctx.Abs(href.Str)
		if uerr != nil {
			ferr := ctx.RecordError(Name, r, "href", uerr)
			if ctx.Strict {
				return nil, ferr
			}
			err = multierr.Append(err, ferr)
			continue
		}
		seasons = append(seasons, Season{League: league, Label: label, StartYear: start, EndYear: end, URL: u})
	}
	ctx.Logger.Debug("seasons extracted", zap.Int("count", len(seasons)))
	return seasons, err
}

func flatten(seasons []Season) [][]string {
	rows := make([][]string, 0, len(seasons))
	for _, s := range seasons {
		rows = append(rows, []string{
			s.League,
			s.Label,
			strconv.Itoa(s.StartYear.Year()),
			strconv.Itoa(s.EndYear.Year()),
			s.URL,
		})
	}
	return rows
}

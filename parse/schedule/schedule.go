package schedule

// 赛季赛程页：一行一场比赛，未进行的比赛比分为-1、技术统计链接为空

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/dszqbsm/hoopstat/coerce"
	"github.com/dszqbsm/hoopstat/dom"
	"github.com/dszqbsm/hoopstat/page"
	"github.com/dszqbsm/hoopstat/record"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const Name = "schedule"

var Backends = []dom.Backend{dom.BackendGoquery, dom.BackendXPath}

var Fields = []string{
	"game_date", "game_start_time",
	"visitor_team_name", "visitor_pts",
	"home_team_name", "home_pts",
	"box_score_text", "overtimes", "attendance", "type",
}

type GameType string

const (
	Regular GameType = "regular"
	Playoff GameType = "playoff"
)

const (
	scheduleTable  = "table#schedule"
	gameRow        = "tr"
	playoffsMarker = "playoffs"
)

func newSchema(baseURL string) record.Schema {
	return record.Schema{
		Name: Name,
		Fields: []record.Field{
			{Name: "game_date", Selector: "th[data-stat=date_game]", Rule: record.Date(coerce.GameDateLayout)},
			{Name: "game_start_time", Selector: "td[data-stat=game_start_time]", Rule: record.Clock},
			{Name: "visitor_team_name", Selector: "td[data-stat=visitor_team_name]", Rule: record.Lower},
			{Name: "visitor_pts", Selector: "td[data-stat=visitor_pts]", Rule: record.Integer},
			{Name: "home_team_name", Selector: "td[data-stat=home_team_name]", Rule: record.Lower},
			{Name: "home_pts", Selector: "td[data-stat=home_pts]", Rule: record.Integer},
			{Name: "box_score_text", Selector: "td[data-stat=box_score_text] a", Attr: "href", Rule: record.AbsURL(baseURL), Optional: true},
			{Name: "overtimes", Selector: "td[data-stat=overtimes]", Rule: record.Lower},
			{Name: "attendance", Selector: "td[data-stat=attendance]", Rule: record.Integer},
		},
	}
}

type Game struct {
	GameDate        time.Time        `json:"game_date"`
	GameStartTime   coerce.TimeOfDay `json:"game_start_time"`
	VisitorTeamName string           `json:"visitor_team_name"`
	VisitorPts      int              `json:"visitor_pts"`
	HomeTeamName    string           `json:"home_team_name"`
	HomePts         int              `json:"home_pts"`
	BoxScoreText    string           `json:"box_score_text"` // 未进行的比赛为空串
	Overtimes       string           `json:"overtimes"`      // 原样保留，如""、"ot"、"2ot"
	Attendance      int              `json:"attendance"`
	Type            GameType         `json:"type"`
}

func (g Game) MarshalJSON() ([]byte, error) {
	type plain Game
	return json.Marshal(struct {
		plain
		GameDate string `json:"game_date"`
	}{plain(g), g.GameDate.Format(coerce.BirthLayout)})
}

// 尚未进行
func (g Game) Unplayed() bool {
	return g.VisitorPts == coerce.MissingInt && g.HomePts == coerce.MissingInt
}

type Parser struct {
	*page.Parser[[]Game]
}

func New(body []byte, opts ...page.Option) *Parser {
	return &Parser{page.New(Name, Backends, body, parse, opts...)}
}

var Kind = page.NewKind(Name, Backends, Fields, parse, flatten)

/*
输入提取上下文，输出比赛列表和错误

按表格顺序遍历所有行，文本包含Playoffs的分隔行之后的比赛都标记为季后赛；分隔行本身的分类只看其标记
*/
func parse(ctx *page.Context) ([]Game, error) {
	rows, err := record.Scan(ctx.Doc, scheduleTable, gameRow, record.DefaultClassifier)
	if err != nil {
		return nil, err
	}
	schema := newSchema(ctx.BaseURL)
	typ := Regular

	var errs error
	games := make([]Game, 0, len(rows))
	for _, row := range rows {
		if row.Kind == record.RowDivider {
			if strings.Contains(strings.ToLower(row.Node.Text()), playoffsMarker) {
				typ = Playoff
				ctx.Logger.Debug("playoffs begin", zap.Int("row", row.Index))
			}
			continue
		}
		r, err := record.Assemble(row, schema)
		if err != nil {
			if ctx.Strict {
				return nil, err
			}
			errs = multierr.Append(errs, err)
			continue
		}
		games = append(games, Game{
			GameDate:        r.Date("game_date"),
			GameStartTime:   r.Time("game_start_time"),
			VisitorTeamName: r.String("visitor_team_name"),
			VisitorPts:      r.Int("visitor_pts"),
			HomeTeamName:    r.String("home_team_name"),
			HomePts:         r.Int("home_pts"),
			BoxScoreText:    r.String("box_score_text"),
			Overtimes:       r.String("overtimes"),
			Attendance:      r.Int("attendance"),
			Type:            typ,
		})
	}
	return games, errs
}

func flatten(games []Game) [][]string {
	rows := make([][]string, 0, len(games))
	for _, g := range games {
		rows = append(rows, []string{
			g.GameDate.Format(coerce.BirthLayout),
			g.GameStartTime.String(),
			g.VisitorTeamName,
			strconv.Itoa(g.VisitorPts),
			g.HomeTeamName,
			strconv.Itoa(g.HomePts),
			g.BoxScoreText,
			g.Overtimes,
			strconv.Itoa(g.Attendance),
			string(g.Type),
		})
	}
	return rows
}

package boxscore

// 技术统计页：主客队各两张表（基础、进阶），共四组球员统计

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dszqbsm/hoopstat/dom"
	"github.com/dszqbsm/hoopstat/page"
	"github.com/dszqbsm/hoopstat/record"
	"go.uber.org/multierr"
)

const Name = "boxscore"

var Backends = []dom.Backend{dom.BackendGoquery, dom.BackendXPath}

var Fields = []string{"side", "abbreviation", "table", "player", "did_not_play", "stats"}

const (
	teamLinks = "div.scorebox a[itemprop=name]"
	awayIndex = 0
	homeIndex = 1
	statRow   = "tr"

	sideHome = "home"
	sideAway = "away"
)

var ErrNoTeam = errors.New("team abbreviation not found in scorebox")

type TeamBox struct {
	Abbreviation string         `json:"abbreviation"`
	Basic        []BasicLine    `json:"basic"`
	Advanced     []AdvancedLine `json:"advanced"`
}

type Result struct {
	Home TeamBox `json:"home_team"`
	Away TeamBox `json:"away_team"`
}

type Parser struct {
	*page.Parser[Result]
}

func New(body []byte, opts ...page.Option) *Parser {
	return &Parser{page.New(Name, Backends, body, parse, opts...)}
}

var Kind = page.NewKind(Name, Backends, Fields, parse, flatten)

// 当前页面的表id形如box-GSW-game-basic，旧页面形如box_gsw_basic
func tableSelectors(abbr, table string) []string {
	return []string{
		fmt.Sprintf("table#box-%s-game-%s", strings.ToUpper(abbr), table),
		fmt.Sprintf("table#box_%s_%s", strings.ToLower(abbr), table),
	}
}

/*
输入提取上下文，输出主客队统计和错误

比分牌中第一个球队链接是客队、第二个是主队，缩写从球队赛季链接中提取，再据此定位两队的基础表和进阶表
*/
func parse(ctx *page.Context) (Result, error) {
	links, err := ctx.Doc.Find(teamLinks)
	if err != nil {
		return Result{}, err
	}
	if len(links) <= homeIndex {
		return Result{}, &record.ExtractError{Row: -1, Field: "scorebox", Selector: teamLinks, Err: record.ErrNoMatch}
	}

	var (
		res  Result
		errs error
	)
	sides := []struct {
		box  *TeamBox
		link dom.Node
	}{
		{box: &res.Away, link: links[awayIndex]},
		{box: &res.Home, link: links[homeIndex]},
	}
	for _, side := range sides {
		href, _ := side.link.Attr("href")
		abbr := ctx.Ident.TeamSeason(href).Abbreviation
		if abbr == "" {
			err := &record.ExtractError{Row: -1, Field: "scorebox", Selector: teamLinks, Err: ErrNoTeam}
			if ctx.Strict {
				return Result{}, err
			}
			errs = multierr.Append(errs, err)
			continue
		}
		side.box.Abbreviation = abbr

		basic, err := teamTable(ctx, abbr, basicSchema)
		if err != nil && ctx.Strict {
			return Result{}, err
		}
		errs = multierr.Append(errs, err)
		for _, r := range basic {
			side.box.Basic = append(side.box.Basic, basicLine(r))
		}

		advanced, err := teamTable(ctx, abbr, advancedSchema)
		if err != nil && ctx.Strict {
			return Result{}, err
		}
		errs = multierr.Append(errs, err)
		for _, r := range advanced {
			side.box.Advanced = append(side.box.Advanced, advancedLine(r))
		}
	}
	return res, errs
}

// 依次尝试当前与旧版的表id，使用第一个存在的表
func teamTable(ctx *page.Context, abbr string, schema record.Schema) ([]record.Record, error) {
	candidates := tableSelectors(abbr, schema.Name)
	for _, sel := range candidates {
		found, err := ctx.Doc.Find(sel)
		if err != nil {
			return nil, err
		}
		if len(found) > 0 {
			return ctx.Records(sel, statRow, record.DefaultClassifier, schema)
		}
	}
	return nil, &record.ExtractError{
		Schema:   schema.Name,
		Row:      -1,
		Selector: strings.Join(candidates, ", "),
		Err:      record.ErrNoMatch,
	}
}

func flatten(res Result) [][]string {
	var rows [][]string
	add := func(side, abbr, table, player, dnp string, stats interface{}) {
		encoded := ""
		if dnp == "" {
			if b, err := json.Marshal(stats); err == nil {
				encoded = string(b)
			}
		}
		rows = append(rows, []string{side, abbr, table, player, dnp, encoded})
	}
	for _, t := range []struct {
		side string
		box  TeamBox
	}{{sideAway, res.Away}, {sideHome, res.Home}} {
		for _, l := range t.box.Basic {
			add(t.side, t.box.Abbreviation, basicSchema.Name, l.Player, l.DidNotPlay, l.Stats)
		}
		for _, l := range t.box.Advanced {
			add(t.side, t.box.Abbreviation, advancedSchema.Name, l.Player, l.DidNotPlay, l.Stats)
		}
	}
	return rows
}

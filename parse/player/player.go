package player

// 球员个人页：姓名、身高、体重、生日、出生地和国籍

import (
	"encoding/json"
	"time"

	"github.com/dszqbsm/hoopstat/coerce"
	"github.com/dszqbsm/hoopstat/dom"
	"github.com/dszqbsm/hoopstat/page"
	"github.com/dszqbsm/hoopstat/record"
)

const Name = "player"

var Backends = []dom.Backend{dom.BackendGoquery, dom.BackendXPath}

var Fields = []string{"name", "height", "weight", "birthday", "birthplace", "nationality"}

const (
	pageBody   = "body"
	playerMeta = "div#meta"
)

func newSchema(ctx *page.Context) record.Schema {
	return record.Schema{
		Name: Name,
		Fields: []record.Field{
			{Name: "name", Selector: "h1[itemprop=name]"},
			{Name: "height", Selector: "span[itemprop=height]"},
			{Name: "weight", Selector: "span[itemprop=weight]", Rule: record.Weight(ctx.Logger)},
			{Name: "birthday", Selector: "span[itemprop=birthDate]", Attr: "data-birth", Rule: record.Date(coerce.BirthLayout)},
			{Name: "birthplace", Selector: "span[itemprop=birthPlace]"},
			{Name: "nationality", Selector: "span.f-i"},
		},
	}
}

type Player struct {
	Name        string    `json:"name"`
	Height      string    `json:"height"`
	Weight      *int      `json:"weight"` // 无法解析时为null
	Birthday    time.Time `json:"birthday"`
	Birthplace  string    `json:"birthplace"`
	Nationality string    `json:"nationality"`
}

// 生日只输出日期部分，与数据库中的文本形式一致
func (p Player) MarshalJSON() ([]byte, error) {
	type plain Player
	return json.Marshal(struct {
		plain
		Birthday string `json:"birthday"`
	}{plain(p), p.Birthday.Format(coerce.BirthLayout)})
}

type Parser struct {
	*page.Parser[Player]
}

func New(body []byte, opts ...page.Option) *Parser {
	return &Parser{page.New(Name, Backends, body, parse, opts...)}
}

var Kind = page.NewKind(Name, Backends, Fields, parse, flatten)

func parse(ctx *page.Context) (Player, error) {
	recs, err := ctx.Records(pageBody, playerMeta, record.AllData, newSchema(ctx))
	if err != nil {
		return Player{}, err
	}
	if len(recs) == 0 {
		return Player{}, &record.ExtractError{Row: -1, Selector: playerMeta, Err: record.ErrNoMatch}
	}
	r := recs[0]
	p := Player{
		Name:        r.String("name"),
		Height:      r.String("height"),
		Birthday:    r.Date("birthday"),
		Birthplace:  r.String("birthplace"),
		Nationality: r.String("nationality"),
	}
	if v, _ := r.Get("weight"); v.Kind == record.KindInt {
		w := v.Int
		p.Weight = &w
	}
	return p, nil
}

func flatten(p Player) [][]string {
	weight := ""
	if p.Weight != nil {
		weight = record.IntValue(*p.Weight).String()
	}
	return [][]string{{
		p.Name,
		p.Height,
		weight,
		p.Birthday.Format(coerce.BirthLayout),
		p.Birthplace,
		p.Nationality,
	}}
}

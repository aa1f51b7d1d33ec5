package boxscore

import (
	"encoding/json"

	"github.com/dszqbsm/hoopstat/record"
)

// 统计值保持网页上的原文，例如.588、+12，未定义的命中率为空串
type BasicStats struct {
	MP        string `json:"mp"`
	FG        string `json:"fg"`
	FGA       string `json:"fga"`
	FGPct     string `json:"fg_pct"`
	FG3       string `json:"fg3"`
	FG3A      string `json:"fg3a"`
	FG3Pct    string `json:"fg3_pct"`
	FT        string `json:"ft"`
	FTA       string `json:"fta"`
	FTPct     string `json:"ft_pct"`
	ORB       string `json:"orb"`
	DRB       string `json:"drb"`
	TRB       string `json:"trb"`
	AST       string `json:"ast"`
	STL       string `json:"stl"`
	BLK       string `json:"blk"`
	TOV       string `json:"tov"`
	PF        string `json:"pf"`
	PTS       string `json:"pts"`
	PlusMinus string `json:"plus_minus"`
}

type AdvancedStats struct {
	MP         string `json:"mp"`
	TSPct      string `json:"ts_pct"`
	EFGPct     string `json:"efg_pct"`
	FG3APerFGA string `json:"fg3a_per_fga_pct"`
	FTAPerFGA  string `json:"fta_per_fga_pct"`
	ORBPct     string `json:"orb_pct"`
	DRBPct     string `json:"drb_pct"`
	TRBPct     string `json:"trb_pct"`
	ASTPct     string `json:"ast_pct"`
	STLPct     string `json:"stl_pct"`
	BLKPct     string `json:"blk_pct"`
	TOVPct     string `json:"tov_pct"`
	USGPct     string `json:"usg_pct"`
	OffRtg     string `json:"off_rtg"`
	DefRtg     string `json:"def_rtg"`
}

// 一名球员在基础统计表中的一行：Stats为nil时DidNotPlay一定非空
type BasicLine struct {
	Player     string
	Stats      *BasicStats
	DidNotPlay string
}

type AdvancedLine struct {
	Player     string
	Stats      *AdvancedStats
	DidNotPlay string
}

func (l BasicLine) Played() bool    { return l.Stats != nil }
func (l AdvancedLine) Played() bool { return l.Stats != nil }

type didNotPlay struct {
	Player     string `json:"player"`
	DidNotPlay string `json:"did_not_play"`
}

// 出场球员展开为player加全部统计字段，未出场球员只有player和did_not_play
func (l BasicLine) MarshalJSON() ([]byte, error) {
	if l.Stats == nil {
		return json.Marshal(didNotPlay{Player: l.Player, DidNotPlay: l.DidNotPlay})
	}
	return json.Marshal(struct {
		Player string `json:"player"`
		*BasicStats
	}{l.Player, l.Stats})
}

func (l AdvancedLine) MarshalJSON() ([]byte, error) {
	if l.Stats == nil {
		return json.Marshal(didNotPlay{Player: l.Player, DidNotPlay: l.DidNotPlay})
	}
	return json.Marshal(struct {
		Player string `json:"player"`
		*AdvancedStats
	}{l.Player, l.Stats})
}

var basicSchema = record.Schema{
	Name: "basic",
	Fields: append([]record.Field{playerField},
		stat("mp"), stat("fg"), stat("fga"), stat("fg_pct"),
		stat("fg3"), stat("fg3a"), stat("fg3_pct"),
		stat("ft"), stat("fta"), stat("ft_pct"),
		stat("orb"), stat("drb"), stat("trb"),
		stat("ast"), stat("stl"), stat("blk"), stat("tov"), stat("pf"),
		stat("pts"), stat("plus_minus"),
	),
}

var advancedSchema = record.Schema{
	Name: "advanced",
	Fields: append([]record.Field{playerField},
		stat("mp"), stat("ts_pct"), stat("efg_pct"),
		stat("fg3a_per_fga_pct"), stat("fta_per_fga_pct"),
		stat("orb_pct"), stat("drb_pct"), stat("trb_pct"),
		stat("ast_pct"), stat("stl_pct"), stat("blk_pct"), stat("tov_pct"),
		stat("usg_pct"), stat("off_rtg"), stat("def_rtg"),
	),
}

var playerField = record.Field{Name: "player", Selector: "th[data-stat=player]"}

func stat(name string) record.Field {
	return record.Field{Name: name, Selector: "td[data-stat=" + name + "]"}
}

func basicLine(r record.Record) BasicLine {
	line := BasicLine{Player: r.String("player")}
	if r.Has(record.DidNotPlayKey) {
		line.DidNotPlay = r.String(record.DidNotPlayKey)
		return line
	}
	line.Stats = &BasicStats{
		MP:        r.String("mp"),
		FG:        r.String("fg"),
		FGA:       r.String("fga"),
		FGPct:     r.String("fg_pct"),
		FG3:       r.String("fg3"),
		FG3A:      r.String("fg3a"),
		FG3Pct:    r.String("fg3_pct"),
		FT:        r.String("ft"),
		FTA:       r.String("fta"),
		FTPct:     r.String("ft_pct"),
		ORB:       r.String("orb"),
		DRB:       r.String("drb"),
		TRB:       r.String("trb"),
		AST:       r.String("ast"),
		STL:       r.String("stl"),
		BLK:       r.String("blk"),
		TOV:       r.String("tov"),
		PF:        r.String("pf"),
		PTS:       r.String("pts"),
		PlusMinus: r.String("plus_minus"),
	}
	return line
}

func advancedLine(r record.Record) AdvancedLine {
	line := AdvancedLine{Player: r.String("player")}
	if r.Has(record.DidNotPlayKey) {
		line.DidNotPlay = r.String(record.DidNotPlayKey)
		return line
	}
	line.Stats = &AdvancedStats{
		MP:         r.String("mp"),
		TSPct:      r.String("ts_pct"),
		EFGPct:     r.String("efg_pct"),
		FG3APerFGA: r.String("fg3a_per_fga_pct"),
		FTAPerFGA:  r.String("fta_per_fga_pct"),
		ORBPct:     r.String("orb_pct"),
		DRBPct:     r.String("drb_pct"),
		TRBPct:     r.String("trb_pct"),
		ASTPct:     r.String("ast_pct"),
		STLPct:     r.String("stl_pct"),
		BLKPct:     r.String("blk_pct"),
		TOVPct:     r.String("tov_pct"),
		USGPct:     r.String("usg_pct"),
		OffRtg:     r.String("off_rtg"),
		DefRtg:     r.String("def_rtg"),
	}
	return line
}

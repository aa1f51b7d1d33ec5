package ident

// 从站内链接路径中提取球队缩写、赛季结束年、联盟代码等结构化标识

import (
	"net/url"
	"regexp"

	"go.uber.org/zap"
)

var (
	teamSeasonRe = regexp.MustCompile(`^/teams/([A-Z]{3})/(\d{4})\.html`)
	teamRe       = regexp.MustCompile(`^/teams/([A-Z]{3})/`)
	leagueRe     = regexp.MustCompile(`^/leagues/(NBA|ABA|BAA)_(\d{4})\.html`)
	letterRe     = regexp.MustCompile(`^/players/([a-z])/`)
)

// 球队缩写+赛季结束年，两个字段都为空表示提取失败
type Identifier struct {
	Abbreviation string `json:"abbreviation"`
	EndYear      string `json:"end_year"`
}

func (i Identifier) Empty() bool {
	return i.Abbreviation == "" && i.EndYear == ""
}

type Extractor struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

/*
输入一个链接（相对路径或绝对地址），输出球队赛季标识

匹配/teams/XXX/YYYY.html，不匹配时返回空标识并记录告警，不返回错误，外层记录仍然可用
*/
func (e *Extractor) TeamSeason(href string) Identifier {
	m := teamSeasonRe.FindStringSubmatch(path(href))
	if m == nil {
		e.logger.Warn("abbreviation or year not found", zap.String("href", href))
		return Identifier{}
	}
	return Identifier{Abbreviation: m[1], EndYear: m[2]}
}

// 球队索引页的链接形如/teams/ATL/
func (e *Extractor) Team(href string) (string, bool) {
	m := teamRe.FindStringSubmatch(path(href))
	if m == nil {
		e.logger.Warn("team abbreviation not found", zap.String("href", href))
		return "", false
	}
	return m[1], true
}

// 赛季链接形如/leagues/NBA_2019.html，同一赛季可能有多个联盟
func (e *Extractor) League(href string) (league, endYear string, ok bool) {
	m := leagueRe.FindStringSubmatch(path(href))
	if m == nil {
		e.logger.Warn("league not found", zap.String("href", href))
		return "", "", false
	}
	return m[1], m[2], true
}

func (e *Extractor) PlayerLetter(href string) (string, bool) {
	m := letterRe.FindStringSubmatch(path(href))
	if m == nil {
		e.logger.Debug("not a player index link", zap.String("href", href))
		return "", false
	}
	return m[1], true
}

// 绝对地址只保留路径部分
func path(href string) string {
	u, err := url.Parse(href)
	if err != nil || !u.IsAbs() {
		return href
	}
	return u.EscapedPath()
}

package urls

// 页面地址模板，以及相对链接到绝对地址的转换

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const BaseURL = "https://www.basketball-reference.com"

const (
	playersPath        = "/players/"
	leaguesPath        = "/leagues/"
	teamsPath          = "/teams/"
	seasonSummaryPath  = "/leagues/%s_%d.html"
	seasonSchedulePath = "/leagues/%s_%d_games-%s.html"
	boxScorePath       = "/boxscores/%s0%s.html"
	boxScoreDateLayout = "20060102"
)

/*
输入基础地址和一个链接，输出绝对地址和错误

按照RFC 3986解析相对引用，链接本身已是绝对地址时原样返回
*/
func Abs(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url %q: %w", base, err)
	}
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", fmt.Errorf("parse href %q: %w", ref, err)
	}
	return b.ResolveReference(r).String(), nil
}

func Players() string { return BaseURL + playersPath }
func Leagues() string { return BaseURL + leaguesPath }
func Teams() string   { return BaseURL + teamsPath }

// 赛季概况页，endYear为赛季结束年
func SeasonSummary(league string, endYear int) string {
	return BaseURL + fmt.Sprintf(seasonSummaryPath, strings.ToUpper(league), endYear)
}

// 月份为小写英文全称，如october
func SeasonSchedule(league string, endYear int, month time.Month) string {
	return BaseURL + fmt.Sprintf(seasonSchedulePath, strings.ToUpper(league), endYear, strings.ToLower(month.String()))
}

// 技术统计页以比赛日期和主队缩写命名
func BoxScore(date time.Time, homeAbbr string) string {
	return BaseURL + fmt.Sprintf(boxScorePath, date.Format(boxScoreDateLayout), strings.ToUpper(homeAbbr))
}

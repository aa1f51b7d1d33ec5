package schedule

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dszqbsm/hoopstat/coerce"
	"github.com/dszqbsm/hoopstat/page"
	"github.com/dszqbsm/hoopstat/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

const schedulePage = `<html><body>
<table id="schedule">
<thead><tr><th data-stat="date_game">Date</th><th data-stat="game_start_time">Start (ET)</th></tr></thead>
<tbody>
<tr><th data-stat="date_game"><a href="/boxscores/index.fcgi?month=10&day=16&year=2018">Tue, Oct 16, 2018</a></th><td data-stat="game_start_time">8:00p</td><td data-stat="visitor_team_name"><a href="/teams/PHI/2019.html">Philadelphia 76ers</a></td><td data-stat="visitor_pts">87</td><td data-stat="home_team_name"><a href="/teams/BOS/2019.html">Boston Celtics</a></td><td data-stat="home_pts">105</td><td data-stat="box_score_text"><a href="/boxscores/201810160BOS.html">Box Score</a></td><td data-stat="overtimes"></td><td data-stat="attendance">18,624</td><td data-stat="game_remarks"></td></tr>
<tr><th data-stat="date_game"><a href="/boxscores/index.fcgi?month=10&day=17&year=2018">Wed, Oct 17, 2018</a></th><td data-stat="game_start_time">10:30p</td><td data-stat="visitor_team_name">Denver Nuggets</td><td data-stat="visitor_pts">107</td><td data-stat="home_team_name">Los Angeles Clippers</td><td data-stat="home_pts">98</td><td data-stat="box_score_text"><a href="/boxscores/201810170LAC.html">Box Score</a></td><td data-stat="overtimes">OT</td><td data-stat="attendance">14,128</td></tr>
<tr class="thead"><th colspan="10">Playoffs</th></tr>
<tr><th data-stat="date_game">Sat, Apr 13, 2019</th><td data-stat="game_start_time">12:30p</td><td data-stat="visitor_team_name">Brooklyn Nets</td><td data-stat="visitor_pts"></td><td data-stat="home_team_name">Philadelphia 76ers</td><td data-stat="home_pts"></td><td data-stat="box_score_text"></td><td data-stat="overtimes"></td><td data-stat="attendance"></td></tr>
</tbody></table>
</body></html>`

func TestParse(t *testing.T) {
	for _, b := range Backends {
		t.Run(string(b), func(t *testing.T) {
			games, err := New([]byte(schedulePage), page.WithBackend(b)).Data()
			require.NoError(t, err)
			require.Len(t, games, 3)

			assert.Equal(t, Game{
				GameDate:        time.Date(2018, time.October, 16, 0, 0, 0, 0, time.UTC),
				GameStartTime:   coerce.TimeOfDay{Hour: 20},
				VisitorTeamName: "philadelphia 76ers",
				VisitorPts:      87,
				HomeTeamName:    "boston celtics",
				HomePts:         105,
				BoxScoreText:    "https://www.basketball-reference.com/boxscores/201810160BOS.html",
				Overtimes:       "",
				Attendance:      18624,
				Type:            Regular,
			}, games[0])
			assert.True(t, strings.HasSuffix(games[0].BoxScoreText, "/boxscores/201810160BOS.html"))

			assert.Equal(t, "ot", games[1].Overtimes)
			assert.Equal(t, coerce.TimeOfDay{Hour: 22, Minute: 30}, games[1].GameStartTime)
			assert.Equal(t, Regular, games[1].Type)

			future := games[2]
			assert.Equal(t, -1, future.VisitorPts)
			assert.Equal(t, -1, future.HomePts)
			assert.Equal(t, -1, future.Attendance)
			assert.Equal(t, "", future.BoxScoreText)
			assert.True(t, future.Unplayed())
			assert.Equal(t, Playoff, future.Type)
		})
	}
}

func TestGameJSON(t *testing.T) {
	games, err := New([]byte(schedulePage)).Data()
	require.NoError(t, err)
	js, err := json.Marshal(games[0])
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(js, &got))
	assert.Equal(t, "2018-10-16", got["game_date"])
	assert.Equal(t, "philadelphia 76ers", got["visitor_team_name"])
	assert.EqualValues(t, 18624, got["attendance"])
	assert.NotContains(t, string(js), "T00:00:00Z")
}

func TestParseMalformedDate(t *testing.T) {
	body := strings.Replace(schedulePage, "Wed, Oct 17, 2018", "Oct 17th", 1)

	_, err := New([]byte(body)).Data()
	var fe *coerce.FormatError
	require.ErrorAs(t, err, &fe)
	var ee *record.ExtractError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "schedule", ee.Page)
	assert.Equal(t, "game_date", ee.Field)
	assert.Equal(t, 1, ee.Row)

	games, err := New([]byte(body), page.WithStrict(false)).Data()
	require.Len(t, games, 2)
	assert.Len(t, multierr.Errors(err), 1)
}

func TestParseCustomBaseURL(t *testing.T) {
	games, err := New([]byte(schedulePage), page.WithBaseURL("http://mirror.local")).Data()
	require.NoError(t, err)
	assert.Equal(t, "http://mirror.local/boxscores/201810160BOS.html", games[0].BoxScoreText)
}

func TestFlatten(t *testing.T) {
	games, err := New([]byte(schedulePage)).Data()
	require.NoError(t, err)
	rows, err := Kind.Flatten(games)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2019-04-13", "12:30", "brooklyn nets", "-1", "philadelphia 76ers", "-1", "", "", "-1", "playoff",
	}, rows[2])
	assert.Len(t, rows[0], len(Fields))
}

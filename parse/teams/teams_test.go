package teams

import (
	"testing"

	"github.com/dszqbsm/hoopstat/dom"
	"github.com/dszqbsm/hoopstat/page"
	"github.com/dszqbsm/hoopstat/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const teamsPage = `<html><body>
<div id="all_teams_active"><table id="teams_active">
<thead><tr><th data-stat="franch_name">Franchise</th><th data-stat="lg_id">Lg</th></tr></thead>
<tbody>
<tr class="full_table"><th data-stat="franch_name"><a href="/teams/ATL/">Atlanta Hawks</a></th><td data-stat="lg_id">NBA</td></tr>
<tr class="partial_table"><th data-stat="team_name"><a href="/teams/ATL/">Atlanta Hawks</a></th><td data-stat="lg_id">NBA</td></tr>
<tr class="partial_table"><th data-stat="team_name">St. Louis Hawks</th><td data-stat="lg_id">NBA</td></tr>
<tr class="full_table"><th data-stat="franch_name"><a href="/teams/BOS/">Boston Celtics</a></th><td data-stat="lg_id">NBA</td></tr>
<tr class="full_table"><th data-stat="franch_name"><a href="/about/">Not A Team</a></th><td data-stat="lg_id">NBA</td></tr>
</tbody></table></div>
<div id="all_teams_defunct"><table id="teams_defunct"><tbody>
<tr class="full_table"><th data-stat="franch_name"><a href="/teams/AND/">Anderson Packers</a></th></tr>
</tbody></table></div>
</body></html>`

func TestParse(t *testing.T) {
	for _, b := range Backends {
		t.Run(string(b), func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			p := New([]byte(teamsPage), page.WithBackend(b), page.WithLogger(zap.New(core)))
			teams, err := p.Data()
			require.NoError(t, err)
			assert.Equal(t, []Team{
				{Name: "atlanta hawks", Abbreviation: "ATL", Status: "active", URL: "https://www.basketball-reference.com/teams/ATL/"},
				{Name: "boston celtics", Abbreviation: "BOS", Status: "active", URL: "https://www.basketball-reference.com/teams/BOS/"},
			}, teams)
			assert.Equal(t, 1, logs.FilterField(zap.String("href", "/about/")).Len())
		})
	}
}

func TestParseMissingContainer(t *testing.T) {
	_, err := New([]byte(`<html><body><p>maintenance</p></body></html>`)).Data()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page=teams")
}

func TestParseBadBaseURL(t *testing.T) {
	_, err := New([]byte(teamsPage), page.WithBaseURL("http://[::1")).Data()
	var ee *record.ExtractError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, Name, ee.Page)
	assert.Equal(t, 0, ee.Row)
	assert.Equal(t, "href", ee.Field)

	teams, err := New([]byte(teamsPage), page.WithBaseURL("http://[::1"), page.WithStrict(false)).Data()
	assert.Empty(t, teams)
	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	require.ErrorAs(t, errs[1], &ee)
	assert.Equal(t, 3, ee.Row)
	assert.Equal(t, "href", ee.Field)
}

func TestKind(t *testing.T) {
	data, err := Kind.Run([]byte(teamsPage), page.WithBackend(dom.BackendXPath))
	require.NoError(t, err)
	rows, err := Kind.Flatten(data)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"boston celtics", "BOS", "active", "https://www.basketball-reference.com/teams/BOS/"}, rows[1])
	assert.Len(t, rows[0], len(Fields))
}

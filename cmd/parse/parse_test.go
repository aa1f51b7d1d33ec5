package parse

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/dszqbsm/hoopstat/dom"
	"github.com/dszqbsm/hoopstat/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const teamsPage = `<html><body>
<div id="all_teams_active"><table><tbody>
<tr class="full_table"><th data-stat="franch_name"><a href="/teams/BOS/">Boston Celtics</a></th></tr>
<tr class="full_table"><th data-stat="franch_name"><a href="/teams/LAL/">Los Angeles Lakers</a></th></tr>
</tbody></table></div>
</body></html>`

const brokenRows = `<html><body>
<div id="all_teams_active"><table><tbody>
<tr class="full_table"><th data-stat="franch_name"><a href="/teams/BOS/">Boston Celtics</a></th></tr>
<tr class="full_table"><td>no franchise cell</td></tr>
</tbody></table></div>
</body></html>`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func noConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.yaml")
}

type team struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	URL          string `json:"url"`
}

func TestRunFile(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), &out, "teams", Flags{
		ConfigFile: noConfig(t),
		File:       writeFile(t, "teams.html", teamsPage),
		Backend:    string(dom.BackendXPath),
		Strict:     true,
	})
	require.NoError(t, err)

	var got []team
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, team{Name: "los angeles lakers", Abbreviation: "LAL", URL: "https://www.basketball-reference.com/teams/LAL/"}, got[1])
}

func TestRunURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams/" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(teamsPage))
	}))
	defer srv.Close()

	cfg := writeFile(t, "config.yaml", "baseURL: "+srv.URL+"\nfetcher:\n  timeout: 2s\n")

	var out bytes.Buffer
	err := Run(context.Background(), &out, "teams", Flags{ConfigFile: cfg, URL: "/teams/", Strict: true})
	require.NoError(t, err)

	var got []team
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, srv.URL+"/teams/BOS/", got[0].URL)

	err = Run(context.Background(), &out, "teams", Flags{ConfigFile: cfg, URL: "/missing/", Strict: true})
	assert.Error(t, err)
}

func TestRunStrictness(t *testing.T) {
	file := writeFile(t, "broken.html", brokenRows)

	var out bytes.Buffer
	err := Run(context.Background(), &out, "teams", Flags{ConfigFile: noConfig(t), File: file, Strict: true})
	require.Error(t, err)
	assert.Empty(t, out.String())

	err = Run(context.Background(), &out, "teams", Flags{ConfigFile: noConfig(t), File: file, Strict: false})
	require.NoError(t, err)
	var got []team
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "BOS", got[0].Abbreviation)
}

func TestRunLenientBadSeasonLabel(t *testing.T) {
	file := writeFile(t, "leagues.html", `<html><body><table id="stats">
<tr><th data-stat="season"><a href="/leagues/NBA_2019.html">2018/19</a></th></tr>
<tr><th data-stat="season"><a href="/leagues/NBA_2018.html">2017-18</a></th></tr>
</table></body></html>`)

	var out bytes.Buffer
	err := Run(context.Background(), &out, "leagues", Flags{ConfigFile: noConfig(t), File: file, Strict: true})
	require.Error(t, err)
	assert.Empty(t, out.String())

	err = Run(context.Background(), &out, "leagues", Flags{ConfigFile: noConfig(t), File: file, Strict: false})
	require.NoError(t, err)
	var got []map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "2017-18", got[0]["season"])
	assert.Equal(t, "2017-01-01", got[0]["start_year"])
	assert.Equal(t, "https://www.basketball-reference.com/leagues/NBA_2018.html", got[0]["url"])
}

func TestRunErrors(t *testing.T) {
	file := writeFile(t, "teams.html", teamsPage)
	var out bytes.Buffer

	err := Run(context.Background(), &out, "standings", Flags{ConfigFile: noConfig(t), File: file})
	assert.ErrorIs(t, err, page.ErrUnknownKind)

	err = Run(context.Background(), &out, "teams", Flags{ConfigFile: noConfig(t)})
	assert.ErrorContains(t, err, "one of --file or --url")

	err = Run(context.Background(), &out, "teams", Flags{ConfigFile: noConfig(t), File: file, URL: "/teams/"})
	assert.ErrorContains(t, err, "mutually exclusive")

	err = Run(context.Background(), &out, "teams", Flags{ConfigFile: noConfig(t), File: file, Backend: "lxml"})
	assert.ErrorIs(t, err, dom.ErrUnknownBackend)

	err = Run(context.Background(), &out, "playerdir", Flags{ConfigFile: noConfig(t), File: file, Backend: "xpath"})
	assert.ErrorIs(t, err, page.ErrBackendNotPinned)
}

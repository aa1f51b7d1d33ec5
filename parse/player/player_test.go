package player

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dszqbsm/hoopstat/page"
	"github.com/dszqbsm/hoopstat/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const playerPage = `<html><body>
<div id="info"><div id="meta">
<h1 itemprop="name">Kevin Durant</h1>
<p><span itemprop="height">6-10</span>,&nbsp;<span itemprop="weight">240lb</span>&nbsp;(208cm,&nbsp;108kg)</p>
<p><strong>Born: </strong><span itemprop="birthDate" id="necro-birth" data-birth="1988-09-29"><a href="/friv/birthdays.fcgi?month=9&day=29">September 29</a>, <a href="/players/birthyears.fcgi?year=1988">1988</a></span>
<span itemprop="birthPlace">in&nbsp;Washington,&nbsp;<a href="/friv/birthplaces.fcgi?country=US&state=DC">District of Columbia</a></span>
<span class="f-i f-us">us</span></p>
</div></div>
</body></html>`

func TestParse(t *testing.T) {
	for _, b := range Backends {
		t.Run(string(b), func(t *testing.T) {
			p, err := New([]byte(playerPage), page.WithBackend(b)).Data()
			require.NoError(t, err)
			assert.Equal(t, "Kevin Durant", p.Name)
			assert.Equal(t, "6-10", p.Height)
			require.NotNil(t, p.Weight)
			assert.Equal(t, 240, *p.Weight)
			assert.Equal(t, time.Date(1988, time.September, 29, 0, 0, 0, 0, time.UTC), p.Birthday)
			assert.Equal(t, "in\u00a0Washington,\u00a0District of Columbia", p.Birthplace)
			assert.Equal(t, "us", p.Nationality)
		})
	}
}

func TestWeightInKilograms(t *testing.T) {
	body := strings.Replace(playerPage, ">240lb<", ">100kg<", 1)
	p, err := New([]byte(body)).Data()
	require.NoError(t, err)
	require.NotNil(t, p.Weight)
	assert.Equal(t, 220, *p.Weight)
}

func TestUnparseableWeight(t *testing.T) {
	body := strings.Replace(playerPage, ">240lb<", ">unknown<", 1)
	core, logs := observer.New(zapcore.WarnLevel)
	p, err := New([]byte(body), page.WithLogger(zap.New(core))).Data()
	require.NoError(t, err)
	assert.Nil(t, p.Weight)
	require.Equal(t, 1, logs.FilterMessage("weight or unit of measure not found").Len())

	js, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(js), `"weight":null`)
	assert.Contains(t, string(js), `"birthday":"1988-09-29"`)

	rows, err := Kind.Flatten(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kevin Durant", "6-10", "", "1988-09-29", "in\u00a0Washington,\u00a0District of Columbia", "us"}, rows[0])
}

func TestMissingBirthday(t *testing.T) {
	body := strings.Replace(playerPage, ` data-birth="1988-09-29"`, "", 1)
	_, err := New([]byte(body)).Data()
	assert.ErrorIs(t, err, record.ErrNoAttr)

	_, err = New([]byte(`<html><body><div id="content"></div></body></html>`)).Data()
	assert.ErrorIs(t, err, record.ErrNoMatch)
}

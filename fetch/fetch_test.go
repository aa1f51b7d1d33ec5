package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dszqbsm/hoopstat/proxy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	var gotUA, gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotCookie = r.Header.Get("Cookie")
		switch r.URL.Path {
		case "/latin1":
			w.Header().Set("Content-Type", "text/html; charset=ISO-8859-1")
			w.Write([]byte("<html><body>Dragi\xe6</body></html>"))
		case "/missing":
			http.NotFound(w, r)
		default:
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte("<html><body>Dončić</body></html>"))
		}
	}))
	defer srv.Close()

	f := New(WithUserAgent("hoopstat-test"), WithCookie("sr_n=1"), WithTimeout(time.Second))

	body, err := f.Get(context.Background(), srv.URL+"/players/d/doncilu01.html")
	require.NoError(t, err)
	assert.Equal(t, "<html><body>Dončić</body></html>", string(body))
	assert.Equal(t, "hoopstat-test", gotUA)
	assert.Equal(t, "sr_n=1", gotCookie)

	body, err = f.Get(context.Background(), srv.URL+"/latin1")
	require.NoError(t, err)
	assert.Equal(t, "<html><body>Dragiæ</body></html>", string(body))

	_, err = f.Get(context.Background(), srv.URL+"/missing")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
}

func TestGetDefaults(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	body, err := New(WithUserAgent("")).Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestGetCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("late"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Get(ctx, srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetThroughProxy(t *testing.T) {
	var proxied []string
	proxySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxied = append(proxied, r.URL.String())
		w.Write([]byte("<html>via proxy</html>"))
	}))
	defer proxySrv.Close()

	p, err := proxy.RoundRobinProxySwitcher(proxySrv.URL)
	require.NoError(t, err)

	body, err := New(WithProxy(p)).Get(context.Background(), "http://www.basketball-reference.com/teams/")
	require.NoError(t, err)
	assert.Equal(t, "<html>via proxy</html>", string(body))
	assert.Equal(t, []string{"http://www.basketball-reference.com/teams/"}, proxied)
}

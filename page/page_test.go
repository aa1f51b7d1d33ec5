package page

import (
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dszqbsm/hoopstat/dom"
	"github.com/dszqbsm/hoopstat/record"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const numbersPage = `<html><body><table id="t">
<tr><td data-stat="n">1</td></tr>
<tr><td data-stat="n">2,000</td></tr>
<tr><td>broken</td></tr>
</table></body></html>`

var numbersSchema = record.Schema{
	Name:   "numbers",
	Fields: []record.Field{{Name: "n", Selector: "td[data-stat=n]", Rule: record.Integer}},
}

func parseNumbers(ctx *Context) ([]int, error) {
	recs, err := ctx.Records("table#t", "tr", record.DefaultClassifier, numbersSchema)
	var out []int
	for _, r := range recs {
		out = append(out, r.Int("n"))
	}
	return out, err
}

type countingBuilder struct {
	calls    int32
	backends []dom.Backend
	mu       sync.Mutex
	err      error
}

func (c *countingBuilder) build(body []byte, backend dom.Backend) (dom.Document, error) {
	atomic.AddInt32(&c.calls, 1)
	c.mu.Lock()
	c.backends = append(c.backends, backend)
	c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	return dom.Parse(body, backend)
}

func (c *countingBuilder) count() int {
	return int(atomic.LoadInt32(&c.calls))
}

var both = []dom.Backend{dom.BackendGoquery, dom.BackendXPath}

func TestDataMemoized(t *testing.T) {
	b := &countingBuilder{}
	p := New("numbers", both, []byte(numbersPage), parseNumbers, WithBuilder(b.build), WithStrict(false))

	first, err1 := p.Data()
	second, err2 := p.Data()

	assert.Equal(t, 1, b.count())
	assert.Empty(t, cmp.Diff(first, second))
	assert.Equal(t, []int{1, 2000}, first)
	require.Error(t, err1)
	assert.Same(t, err1, err2)
	require.Len(t, multierr.Errors(err1), 1)
}

func TestDataStrictErrorCached(t *testing.T) {
	b := &countingBuilder{}
	p := New("numbers", both, []byte(numbersPage), parseNumbers, WithBuilder(b.build))

	data, err := p.Data()
	assert.Nil(t, data)
	var ee *record.ExtractError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "numbers", ee.Page)
	assert.Equal(t, "n", ee.Field)
	assert.Equal(t, 2, ee.Row)

	_, again := p.Data()
	assert.Same(t, err, again)
	assert.Equal(t, 1, b.count())
}

func TestDataConcurrentFirstAccess(t *testing.T) {
	b := &countingBuilder{}
	p := New("numbers", both, []byte(numbersPage), parseNumbers, WithBuilder(b.build), WithStrict(false))

	var wg sync.WaitGroup
	results := make([][]int, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = p.Data()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, b.count())
	for _, r := range results {
		assert.Empty(t, cmp.Diff([]int{1, 2000}, r))
	}
}

func TestBackendSelection(t *testing.T) {
	b := &countingBuilder{}
	p := New("numbers", []dom.Backend{dom.BackendXPath, dom.BackendGoquery}, []byte(numbersPage), parseNumbers,
		WithBuilder(b.build), WithStrict(false))
	_, _ = p.Data()
	assert.Equal(t, dom.BackendXPath, p.Backend())
	assert.Equal(t, []dom.Backend{dom.BackendXPath}, b.backends)

	b = &countingBuilder{}
	p = New("numbers", []dom.Backend{dom.BackendGoquery}, []byte(numbersPage), parseNumbers,
		WithBuilder(b.build), WithBackend(dom.BackendXPath))
	_, err := p.Data()
	assert.ErrorIs(t, err, ErrBackendNotPinned)
	assert.Zero(t, b.count())
}

func TestBuildErrorCached(t *testing.T) {
	boom := errors.New("boom")
	b := &countingBuilder{err: boom}
	core, logs := observer.New(zapcore.WarnLevel)
	p := New("numbers", both, []byte(numbersPage), parseNumbers, WithBuilder(b.build), WithLogger(zap.New(core)))

	_, err := p.Data()
	assert.ErrorIs(t, err, boom)
	_, err = p.Data()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, b.count())
	assert.Zero(t, logs.Len())
}

func TestPanicCachedAsError(t *testing.T) {
	var calls int32
	parse := func(ctx *Context) ([]int, error) {
		atomic.AddInt32(&calls, 1)
		panic("index out of range")
	}
	core, logs := observer.New(zapcore.ErrorLevel)
	p := New("numbers", both, []byte(numbersPage), parse, WithLogger(zap.New(core)))

	_, err := p.Data()
	require.ErrorIs(t, err, ErrPanic)
	assert.Contains(t, err.Error(), "index out of range")

	done := make(chan error, 1)
	go func() {
		_, err := p.Data()
		done <- err
	}()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrPanic)
	case <-time.After(2 * time.Second):
		t.Fatal("Data blocked after a panicking extraction")
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	assert.Equal(t, 1, logs.FilterMessage("page extraction panicked").Len())
}

func TestExtractionFailureLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p := New("numbers", both, []byte(numbersPage), parseNumbers, WithLogger(zap.New(core)), WithStrict(false))
	_, _ = p.Data()
	_, _ = p.Data()
	entries := logs.FilterMessage("page extraction failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "numbers", entries[0].ContextMap()["page"])
	assert.EqualValues(t, 1, entries[0].ContextMap()["errors"])
}

func flattenNumbers(ns []int) [][]string {
	var rows [][]string
	for _, n := range ns {
		rows = append(rows, []string{strconv.Itoa(n)})
	}
	return rows
}

func TestStore(t *testing.T) {
	s := &kindStore{Hash: map[string]*Kind{}}
	k := NewKind("numbers", both, []string{"n"}, parseNumbers, flattenNumbers)
	s.Add(k)

	got, err := s.Get("numbers")
	require.NoError(t, err)
	assert.Same(t, k, got)

	data, err := s.Run("numbers", []byte(numbersPage), WithStrict(false))
	require.Error(t, err)
	assert.Equal(t, []int{1, 2000}, data)

	rows, err := k.Flatten(data)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1"}, {"2000"}}, rows)
	_, err = k.Flatten("not numbers")
	assert.Error(t, err)

	_, err = s.Run("teams", nil)
	assert.ErrorIs(t, err, ErrUnknownKind)

	replacement := NewKind("numbers", []dom.Backend{dom.BackendGoquery}, []string{"n"}, parseNumbers, flattenNumbers)
	s.Add(replacement)
	assert.Len(t, s.List, 1)
	assert.Same(t, replacement, s.Hash["numbers"])
}

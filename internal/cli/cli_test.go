package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/productdesk/internal/api"
	"github.com/studiowebux/productdesk/internal/history"
	"github.com/studiowebux/productdesk/internal/logging"
	"github.com/studiowebux/productdesk/internal/mock"
	"github.com/studiowebux/productdesk/internal/types"
	"gopkg.in/yaml.v3"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

var catalogRoutes = []mock.Route{
	{Method: "GET", Path: "/api/products", Body: `[{"_id":"1","name":"Widget","price":500},{"_id":"2","name":"Lamp","price":1999}]`},
	{Method: "GET", Path: "/api/products/1", Body: `{"_id":"1","name":"Widget","description":"blue","price":500,"quantity":3,"status":"active"}`, Delay: 30},
	{Method: "GET", Path: "/api/products/2", Body: `{"_id":"2","name":"Lamp","description":"desk","price":1999,"quantity":1,"status":"draft"}`},
	{Method: "POST", Path: "/api/products", Status: 201, Body: "created"},
	{Method: "PUT", Path: "/api/products/{id}", Body: "updated"},
	{Method: "DELETE", Path: "/api/products/{id}", Body: ""},
}

type harness struct {
	runner *Runner
	srv    *mock.Server
	out    *bytes.Buffer
	errOut *bytes.Buffer
	store  *history.Manager
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()

	srv := mock.NewServer(&mock.Config{Routes: catalogRoutes, Logging: true}, t.TempDir())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	store, err := history.NewManager(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	client, err := api.NewClient(api.Options{BaseURL: ts.URL, Recorder: store, Logger: logging.Discard()})
	require.NoError(t, err)

	h := &harness{srv: srv, out: &bytes.Buffer{}, errOut: &bytes.Buffer{}, store: store}
	opts.Out = h.out
	opts.Err = h.errOut
	h.runner = NewRunner(client, store, opts)
	h.runner.Pick = func([]types.ShortProduct) (types.ProductID, error) {
		t.Fatal("unexpected picker")
		return "", nil
	}
	return h
}

func TestList_Text(t *testing.T) {
	h := newHarness(t, Options{})

	require.NoError(t, h.runner.List(context.Background()))

	lines := strings.Split(strings.TrimSpace(h.out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1  Widget - $500", lines[0])
	assert.Equal(t, "2  Lamp - $1999", lines[1])
}

func TestList_JSONWithQuery(t *testing.T) {
	h := newHarness(t, Options{Output: "json", Query: "[].name"})

	require.NoError(t, h.runner.List(context.Background()))

	var names []string
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &names))
	assert.Equal(t, []string{"Widget", "Lamp"}, names)
}

func TestList_YAML(t *testing.T) {
	h := newHarness(t, Options{Output: "yaml"})

	require.NoError(t, h.runner.List(context.Background()))

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(h.out.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0]["_id"])
	assert.Equal(t, 1999, got[1]["price"])
}

func TestGet_ManyIDsKeepArgumentOrder(t *testing.T) {
	h := newHarness(t, Options{Output: "json"})

	// id 1 answers slower, it must still come first
	require.NoError(t, h.runner.Get(context.Background(), []types.ProductID{"1", "2"}))

	var got []types.Product
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, types.ProductID("1"), got[0].ID)
	assert.Equal(t, "desk", got[1].Description)
}

func TestGet_TextSingle(t *testing.T) {
	h := newHarness(t, Options{})

	require.NoError(t, h.runner.Get(context.Background(), []types.ProductID{"2"}))

	out := h.out.String()
	assert.Contains(t, out, "Name:")
	assert.Contains(t, out, "Lamp")
	assert.Contains(t, out, "1999")
}

func TestGet_FailureNamesProduct(t *testing.T) {
	h := newHarness(t, Options{})

	err := h.runner.Get(context.Background(), []types.ProductID{"1", "404"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestGet_PicksWhenNoID(t *testing.T) {
	h := newHarness(t, Options{Output: "json", Query: "name"})
	var offered []types.ShortProduct
	h.runner.Pick = func(products []types.ShortProduct) (types.ProductID, error) {
		offered = products
		return "2", nil
	}

	require.NoError(t, h.runner.Get(context.Background(), nil))

	assert.Len(t, offered, 2)
	assert.Equal(t, `"Lamp"`, strings.TrimSpace(h.out.String()))
}

func TestCreate_AssignsIDAndPosts(t *testing.T) {
	h := newHarness(t, Options{})

	p := types.Product{Name: "Cup", Price: types.ParseAmount("12.5abc"), Quantity: types.ParseAmount("4")}
	require.NoError(t, h.runner.Create(context.Background(), p))

	logs := h.srv.GetLogs()
	require.Len(t, logs, 1)
	var sent types.Product
	require.NoError(t, json.Unmarshal([]byte(logs[0].Body), &sent))
	assert.Len(t, sent.ID.String(), 24)
	assert.Equal(t, uint32(0), sent.Price)
	assert.Equal(t, uint32(4), sent.Quantity)

	assert.Equal(t, "created\n", h.out.String())
	assert.Contains(t, h.errOut.String(), "Created product "+sent.ID.String())
}

func TestUpdate_AppliesEditOnFetchedRecord(t *testing.T) {
	h := newHarness(t, Options{})

	err := h.runner.Update(context.Background(), "1", func(p *types.Product) { p.Quantity = 9 })
	require.NoError(t, err)

	var put *mock.RequestLog
	for _, l := range h.srv.GetLogs() {
		l := l
		if l.Method == "PUT" {
			put = &l
		}
	}
	require.NotNil(t, put)
	assert.Equal(t, "/api/products/1", put.Path)

	var sent types.Product
	require.NoError(t, json.Unmarshal([]byte(put.Body), &sent))
	assert.Equal(t, uint32(9), sent.Quantity)
	assert.Equal(t, "blue", sent.Description, "untouched fields keep server values")
}

func TestDelete(t *testing.T) {
	h := newHarness(t, Options{})

	require.NoError(t, h.runner.Delete(context.Background(), "2"))

	assert.Equal(t, 1, h.srv.Count("DELETE", "/api/products/2"))
	assert.Contains(t, h.errOut.String(), "Deleted product 2")
}

func TestHistory_RecordsCalls(t *testing.T) {
	h := newHarness(t, Options{})
	require.NoError(t, h.runner.List(context.Background()))
	require.Error(t, h.runner.Get(context.Background(), []types.ProductID{"404"}))
	h.out.Reset()

	require.NoError(t, h.runner.History(10, false, false))
	out := h.out.String()
	assert.Contains(t, out, "METHOD")
	assert.Contains(t, out, "/api/products/404")
	assert.Contains(t, out, "list")

	h.out.Reset()
	h.runner.opts.Output = "json"
	require.NoError(t, h.runner.History(0, true, false))
	var stats []history.OperationStats
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &stats))
	require.Len(t, stats, 2)
	assert.Equal(t, "get", stats[0].Operation)
	assert.Equal(t, 1, stats[0].Failed)

	require.NoError(t, h.runner.History(0, false, true))
	n, err := h.store.GetCount()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestHistory_Disabled(t *testing.T) {
	r := NewRunner(nil, nil, Options{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	assert.Error(t, r.History(10, false, false))
}

func TestValidateOutput(t *testing.T) {
	for _, f := range []string{"", "text", "json", "yaml"} {
		assert.NoError(t, ValidateOutput(f), f)
	}
	assert.Error(t, ValidateOutput("xml"))
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, assert.AnError)
	assert.Equal(t, "Error: "+assert.AnError.Error()+"\n", buf.String())
}

func TestPrintRequest(t *testing.T) {
	var buf bytes.Buffer
	ts := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	PrintRequest(&buf, ts, "GET", "/api/products", 404, 1500*time.Microsecond)

	assert.Equal(t, "09:30:00 GET    /api/products 404 2ms\n", buf.String())
}

func TestSelector_EnterChoosesHighlightedProduct(t *testing.T) {
	m := newSelector([]types.ShortProduct{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.(selectorModel).Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, types.ProductID("2"), next.(selectorModel).choice)
}

func TestSelector_QuitCancels(t *testing.T) {
	m := newSelector([]types.ShortProduct{{ID: "1", Name: "A"}})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	assert.True(t, next.(selectorModel).quitting)
	assert.Empty(t, next.(selectorModel).choice)
}

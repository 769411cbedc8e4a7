package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor"
	httpAdapter "github.com/aretw0/arbor/pkg/adapters/http"
	"github.com/aretw0/arbor/pkg/dsl"
	"github.com/aretw0/arbor/pkg/registry"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	b := dsl.New()
	b.State("off").On("toggle", "on")
	b.State("on").On("toggle", "off")
	def, err := b.Initial("off").Build()
	require.NoError(t, err)
	toggle, err := arbor.New(def)
	require.NoError(t, err)

	b = dsl.New()
	b.State("a").On("go", "sink")
	b.State("sink").
		Do(func(ctx context.Context, params []any) (string, error) {
			return "", nil
		}).
		On("out", "a")
	def, err = b.Initial("a").Build()
	require.NoError(t, err)
	sink, err := arbor.New(def)
	require.NoError(t, err)

	reg := registry.New()
	reg.Register("toggle", toggle)
	reg.Register("sink", sink)
	return httpAdapter.NewHandler(reg, nil)
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := doRequest(t, newTestHandler(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestListMachines(t *testing.T) {
	rec := doRequest(t, newTestHandler(t), http.MethodGet, "/machines", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"sink", "toggle"}, body["machines"])
}

func TestGetMachineSnapshot(t *testing.T) {
	rec := doRequest(t, newTestHandler(t), http.MethodGet, "/machines/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap httpAdapter.MachineSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "toggle", snap.Name)
	assert.Equal(t, "off", snap.State)
	assert.False(t, snap.Transient)
	assert.False(t, snap.Busy)
}

func TestUnknownMachine(t *testing.T) {
	rec := doRequest(t, newTestHandler(t), http.MethodGet, "/machines/ghost", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReadSymbolMovesMachine(t *testing.T) {
	h := newTestHandler(t)
	rec := doRequest(t, h, http.MethodPost, "/machines/toggle/read", `{"symbol":"toggle"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body httpAdapter.ReadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "on", body.Machine.State)
	assert.Empty(t, body.Failures)
}

func TestReadSymbolRequiresSymbol(t *testing.T) {
	rec := doRequest(t, newTestHandler(t), http.MethodPost, "/machines/toggle/read", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReadSymbolRejectsInvalidBody(t *testing.T) {
	rec := doRequest(t, newTestHandler(t), http.MethodPost, "/machines/toggle/read", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReadSymbolNoTransition(t *testing.T) {
	rec := doRequest(t, newTestHandler(t), http.MethodPost, "/machines/toggle/read", `{"symbol":"ghost"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body httpAdapter.ReadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Failures, 1)
	assert.Equal(t, "no_transition", body.Failures[0].Kind)
	// The machine did not move.
	assert.Equal(t, "off", body.Machine.State)
}

func TestStuckMachineConflicts(t *testing.T) {
	h := newTestHandler(t)

	// First read parks the machine on the transient sink.
	rec := doRequest(t, h, http.MethodPost, "/machines/sink/read", `{"symbol":"go"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body httpAdapter.ReadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Failures, 1)
	assert.Equal(t, "empty_result", body.Failures[0].Kind)
	assert.True(t, body.Machine.Transient)

	// Every later read is a conflict with the terminal condition.
	rec = doRequest(t, h, http.MethodPost, "/machines/sink/read", `{"symbol":"out"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Failures, 1)
	assert.Equal(t, "stuck", body.Failures[0].Kind)
}

func TestGraphJSON(t *testing.T) {
	rec := doRequest(t, newTestHandler(t), http.MethodGet, "/machines/sink/graph", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view httpAdapter.GraphView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "sink", view.Name)
	assert.Equal(t, "a", view.Initial)
	require.Len(t, view.States, 2)
	assert.Equal(t, "a", view.States[0].ID)
	assert.True(t, view.States[1].Transient)
}

func TestGraphMermaid(t *testing.T) {
	rec := doRequest(t, newTestHandler(t), http.MethodGet, "/machines/sink/graph?format=mermaid", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")

	body := rec.Body.String()
	assert.Contains(t, body, "graph TD")
	assert.Contains(t, body, "a((\"a\"))")
	assert.Contains(t, body, "sink[[\"sink\"]]")
	assert.Contains(t, body, "class a current;")
}

package adapter

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/model"
	"yogaday/local-app/internal/session"
	"yogaday/local-app/internal/storage"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func newTestHTTPAdapter(t *testing.T) *HTTPAdapter {
	t.Helper()
	a, err := NewHTTPAdapter(newTestAdapterManager(t), "127.0.0.1:0", log.NewDiscardLogger())
	require.NoError(t, err)
	return a
}

// do sends a request to the router and decodes the JSON response into out
func do(t *testing.T, a *HTTPAdapter, method, path string, body interface{}, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func TestHTTPPing(t *testing.T) {
	a := newTestHTTPAdapter(t)
	var out map[string]string
	assert.Equal(t, http.StatusOK, do(t, a, http.MethodGet, "/ping", nil, &out))
	assert.Equal(t, "pong", out["message"])
}

func TestHTTPAsanaLifecycle(t *testing.T) {
	a := newTestHTTPAdapter(t)

	var created model.Asana
	require.Equal(t, http.StatusCreated, do(t, a, http.MethodPost, "/v1/asanas", nil, &created))
	assert.Equal(t, model.AsanaDefaultName, created.Name)

	var updated model.Asana
	name := "Warrior II"
	code := do(t, a, http.MethodPatch, "/v1/asanas/"+itoa(created.ID), model.AsanaPatch{Name: &name}, &updated)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Warrior II", updated.Name)

	var list []model.Asana
	require.Equal(t, http.StatusOK, do(t, a, http.MethodGet, "/v1/asanas", nil, &list))
	require.Len(t, list, 1)

	empty := " "
	var errBody map[string]string
	code = do(t, a, http.MethodPatch, "/v1/asanas/"+itoa(created.ID), model.AsanaPatch{Name: &empty}, &errBody)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, errBody["error"])

	assert.Equal(t, http.StatusOK, do(t, a, http.MethodDelete, "/v1/asanas/"+itoa(created.ID), nil, nil))
	assert.Equal(t, http.StatusNotFound, do(t, a, http.MethodGet, "/v1/asanas/"+itoa(created.ID), nil, nil))
	assert.Equal(t, http.StatusBadRequest, do(t, a, http.MethodGet, "/v1/asanas/abc", nil, nil))
}

func TestHTTPFlowMembership(t *testing.T) {
	a := newTestHTTPAdapter(t)

	var asana model.Asana
	require.Equal(t, http.StatusCreated, do(t, a, http.MethodPost, "/v1/asanas", nil, &asana))
	var flow model.Flow
	require.Equal(t, http.StatusCreated, do(t, a, http.MethodPost, "/v1/flows", nil, &flow))

	var detail session.FlowDetail
	code := do(t, a, http.MethodPost, "/v1/flows/"+itoa(flow.ID)+"/asanas", map[string]int64{"asanaId": asana.ID}, &detail)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []int64{asana.ID}, detail.Flow.AsanaIDs)

	code = do(t, a, http.MethodDelete, "/v1/flows/"+itoa(flow.ID)+"/asanas/5", nil, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code = do(t, a, http.MethodDelete, "/v1/flows/"+itoa(flow.ID)+"/asanas/0", nil, &detail)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, detail.Flow.AsanaIDs)

	code = do(t, a, http.MethodPost, "/v1/flows/"+itoa(flow.ID)+"/asanas", map[string]int64{"asanaId": 999}, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHTTPTagsAndFilters(t *testing.T) {
	a := newTestHTTPAdapter(t)

	var listing session.TagListing
	require.Equal(t, http.StatusCreated, do(t, a, http.MethodPost, "/v1/tags/asana", map[string]string{"name": "standing"}, &listing))
	assert.Equal(t, []string{"standing"}, listing.Tags)
	assert.Equal(t, http.StatusConflict, do(t, a, http.MethodPost, "/v1/tags/asana", map[string]string{"name": "standing"}, nil))
	assert.Equal(t, http.StatusBadRequest, do(t, a, http.MethodPost, "/v1/tags/planet", map[string]string{"name": "x"}, nil))

	require.Equal(t, http.StatusOK, do(t, a, http.MethodPost, "/v1/filters/asana/toggle", map[string]string{"tag": "standing"}, &listing))
	assert.Equal(t, []string{"standing"}, listing.Selected)

	require.Equal(t, http.StatusOK, do(t, a, http.MethodPut, "/v1/tags/asana/standing", map[string]string{"name": "upright"}, &listing))
	assert.Equal(t, []string{"upright"}, listing.Tags)
	assert.Equal(t, []string{"upright"}, listing.Selected)

	assert.Equal(t, http.StatusPreconditionRequired, do(t, a, http.MethodDelete, "/v1/tags/asana/upright", nil, nil))
	require.Equal(t, http.StatusOK, do(t, a, http.MethodDelete, "/v1/tags/asana/upright?confirm=true", nil, &listing))
	assert.Empty(t, listing.Tags)
	assert.Empty(t, listing.Selected)
	assert.Equal(t, http.StatusNotFound, do(t, a, http.MethodDelete, "/v1/tags/asana/upright?confirm=true", nil, nil))

	var filters []session.TagListing
	require.Equal(t, http.StatusOK, do(t, a, http.MethodGet, "/v1/filters", nil, &filters))
	assert.Len(t, filters, 2)
	assert.Equal(t, http.StatusOK, do(t, a, http.MethodDelete, "/v1/filters/flow", nil, nil))
}

func TestHTTPDrop(t *testing.T) {
	a := newTestHTTPAdapter(t)

	var asana model.Asana
	require.Equal(t, http.StatusCreated, do(t, a, http.MethodPost, "/v1/asanas", nil, &asana))
	var flow model.Flow
	require.Equal(t, http.StatusCreated, do(t, a, http.MethodPost, "/v1/flows", nil, &flow))

	req := session.DropRequest{
		AsanaID: asana.ID,
		Target:  &model.DropTarget{Accepts: model.DropAcceptsAsana, FlowID: flow.ID},
	}
	var mut model.Mutation
	require.Equal(t, http.StatusOK, do(t, a, http.MethodPost, "/v1/drop", req, &mut))
	assert.Equal(t, model.MutationAssign, mut.Kind)

	var detail session.FlowDetail
	require.Equal(t, http.StatusOK, do(t, a, http.MethodGet, "/v1/flows/"+itoa(flow.ID), nil, &detail))
	assert.Equal(t, []int64{asana.ID}, detail.Flow.AsanaIDs)
}

func TestHTTPExportImport(t *testing.T) {
	a := newTestHTTPAdapter(t)

	var asana model.Asana
	require.Equal(t, http.StatusCreated, do(t, a, http.MethodPost, "/v1/asanas", nil, &asana))

	var doc model.ExportDocument
	require.Equal(t, http.StatusOK, do(t, a, http.MethodGet, "/v1/export", nil, &doc))
	require.Len(t, doc.Asanas, 1)
	assert.NotEmpty(t, doc.Checksum)

	tampered := doc
	tampered.Asanas = []model.Asana{{ID: asana.ID, Name: "Changed", Tags: []string{}}}
	assert.Equal(t, http.StatusBadRequest, do(t, a, http.MethodPost, "/v1/import", tampered, nil))

	replacement := model.ExportDocument{
		Asanas: []model.Asana{{ID: 10, Name: "Mountain"}, {ID: 11, Name: "Chair"}},
		Flows:  []model.Flow{{ID: 20, Name: "Morning", AsanaIDs: []int64{10, 11}}},
	}
	var status session.Status
	require.Equal(t, http.StatusOK, do(t, a, http.MethodPost, "/v1/import", replacement, &status))
	assert.Equal(t, 2, status.Asanas)
	assert.Equal(t, 1, status.Flows)

	dup := model.ExportDocument{Asanas: []model.Asana{{ID: 1, Name: "A"}, {ID: 1, Name: "B"}}}
	assert.Equal(t, http.StatusBadRequest, do(t, a, http.MethodPost, "/v1/import", dup, nil))

	var list []model.Asana
	require.Equal(t, http.StatusOK, do(t, a, http.MethodGet, "/v1/asanas?all=true", nil, &list))
	assert.Len(t, list, 2)

	req := httptest.NewRequest(http.MethodPost, "/v1/import", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHTTPSessionHeader(t *testing.T) {
	a := newTestHTTPAdapter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/status", nil)
	req.Header.Set(SessionHeader, "unknown")
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHTTPStartStop(t *testing.T) {
	a := newTestHTTPAdapter(t)
	require.NoError(t, a.AdapterStart())

	resp, err := http.Get("http://" + a.Addr() + "/ping")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, a.AdapterStop())
	assert.Equal(t, "http", a.GetType())
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(storage.ErrChecksumMismatch))
	assert.Equal(t, http.StatusPreconditionRequired, statusFor(session.ErrConfirmationRequired))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}

package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/culturegraph/reconcile/internal/config"
	"github.com/culturegraph/reconcile/internal/domain"
	"github.com/culturegraph/reconcile/internal/domain/match"
	"github.com/culturegraph/reconcile/internal/domain/record"
	"github.com/culturegraph/reconcile/internal/repository/records"
	healthuc "github.com/culturegraph/reconcile/internal/usecase/health"
	reconcileuc "github.com/culturegraph/reconcile/internal/usecase/reconcile"
	suggestuc "github.com/culturegraph/reconcile/internal/usecase/suggest"
)

// --- Mocks ---

type mockReconciler struct {
	gotBatch map[string]match.Query
	results  map[string]reconcileuc.Result
	err      error
}

func (m *mockReconciler) ProcessBatch(_ context.Context, batch map[string]match.Query) (map[string]reconcileuc.Result, error) {
	m.gotBatch = batch
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

type mockSuggester struct {
	entities []match.Candidate
	err      error
}

func (m *mockSuggester) Entities(_ context.Context, _ string, cursor int) ([]match.Candidate, int, error) {
	if m.err != nil {
		return nil, cursor, m.err
	}
	return m.entities, cursor + len(m.entities), nil
}

func (m *mockSuggester) Types(prefix string) []match.TypeRef {
	out := []match.TypeRef{}
	for _, cat := range record.Categories() {
		ref := match.TypeRef{ID: cat.TypeID(), Name: cat.TypeName()}
		if strings.Contains(strings.ToLower(ref.Name), strings.ToLower(prefix)) {
			out = append(out, ref)
		}
	}
	return out
}

func (m *mockSuggester) Properties(_ string) []suggestuc.Property {
	return []suggestuc.Property{{ID: "medium", Name: "Medium/Material"}}
}

func (m *mockSuggester) AllProperties() []suggestuc.Property {
	return []suggestuc.Property{
		{ID: "location", Name: "Location"},
		{ID: "medium", Name: "Medium/Material"},
	}
}

type mockReader struct {
	recs   map[string]record.Record
	counts records.Counts
	err    error
}

func (m *mockReader) RecordByID(_ context.Context, id string) (record.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	rec, ok := m.recs[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return rec, nil
}

func (m *mockReader) Stats(_ context.Context) (records.Counts, error) {
	if m.err != nil {
		return records.Counts{}, m.err
	}
	return m.counts, nil
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report { return m.report }

func testConfig() config.ServiceConfig {
	return config.ServiceConfig{
		Name:            "Museum Cultural Heritage Reconciliation Service",
		BaseURL:         "http://localhost:8080",
		IdentifierSpace: "http://museum-reconciliation.example.org/identifier",
		SchemaSpace:     "http://museum-reconciliation.example.org/schema",
	}
}

func newTestServer(rec *mockReconciler, sug *mockSuggester, rd *mockReader, h *mockHealth) http.Handler {
	if rec == nil {
		rec = &mockReconciler{results: map[string]reconcileuc.Result{}}
	}
	if sug == nil {
		sug = &mockSuggester{}
	}
	if rd == nil {
		rd = &mockReader{recs: map[string]record.Record{}}
	}
	if h == nil {
		h = &mockHealth{report: healthuc.Report{
			Status: healthuc.Healthy,
			Checks: map[string]healthuc.CheckResult{"store": healthuc.CheckOK},
		}}
	}
	s := NewServer(rec, sug, rd, h, testConfig(), zap.NewNop())
	r := chirouter.NewRouter()
	s.Routes(r)
	return r
}

// --- Tests ---

func TestReconcile_BareGetReturnsManifest(t *testing.T) {
	srv := newTestServer(nil, nil, nil, nil)

	req := httptest.NewRequest("GET", "/", http.NoBody)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var m Manifest
	if err := json.Unmarshal(rr.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if len(m.Versions) != 1 || m.Versions[0] != "0.2" {
		t.Errorf("unexpected versions %v", m.Versions)
	}
	if m.Name != "Museum Cultural Heritage Reconciliation Service" {
		t.Errorf("unexpected name %q", m.Name)
	}
	if m.Preview.URL != "http://localhost:8080/preview/{{id}}" || m.Preview.Width != 600 || m.Preview.Height != 400 {
		t.Errorf("unexpected preview def %+v", m.Preview)
	}
	if len(m.DefaultTypes) != 3 || m.DefaultTypes[0].ID != "artifact" {
		t.Errorf("unexpected default types %+v", m.DefaultTypes)
	}
	if m.Suggest.Entity.ServicePath != "/suggest/entity" {
		t.Errorf("unexpected suggest def %+v", m.Suggest)
	}
}

func TestReconcile_PostWithoutQueries(t *testing.T) {
	srv := newTestServer(nil, nil, nil, nil)

	req := httptest.NewRequest("POST", "/", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}

func TestReconcile_FormBatch(t *testing.T) {
	rec := &mockReconciler{results: map[string]reconcileuc.Result{
		"q0": {Candidates: []match.Candidate{{
			ID: "MUSEUM_000001", Name: "Getty Center", Score: 100, Match: true,
			Types: []match.TypeRef{{ID: "museum", Name: "Museum/Institution"}},
		}}},
		"q1": {Candidates: []match.Candidate{}},
	}}
	srv := newTestServer(rec, nil, nil, nil)

	queries := `{"q0":{"query":"getty center","limit":5,"type":"museum"},"q1":{"query":"nothing","types":["person"]}}`
	form := url.Values{"queries": {queries}}
	req := httptest.NewRequest("POST", "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	if rec.gotBatch["q0"].TypeID != "museum" || rec.gotBatch["q0"].Limit != 5 {
		t.Errorf("q0 not decoded: %+v", rec.gotBatch["q0"])
	}
	if rec.gotBatch["q1"].TypeID != "person" {
		t.Errorf("types fallback not applied: %+v", rec.gotBatch["q1"])
	}

	var resp map[string]struct {
		Result []match.Candidate `json:"result"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp["q0"].Result) != 1 || resp["q0"].Result[0].ID != "MUSEUM_000001" {
		t.Errorf("unexpected q0 result: %+v", resp["q0"].Result)
	}
	if resp["q1"].Result == nil || len(resp["q1"].Result) != 0 {
		t.Errorf("q1 should be an empty json array, got %s", rr.Body.String())
	}
}

func TestReconcile_QueryParamBatch(t *testing.T) {
	rec := &mockReconciler{results: map[string]reconcileuc.Result{
		"q0": {Candidates: []match.Candidate{}},
	}}
	srv := newTestServer(rec, nil, nil, nil)

	req := httptest.NewRequest("GET", "/?queries="+url.QueryEscape(`{"q0":{"query":"x"}}`), http.NoBody)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rec.gotBatch["q0"].Text != "x" {
		t.Errorf("query param batch not decoded: %+v", rec.gotBatch)
	}
}

func TestReconcile_MalformedBatch(t *testing.T) {
	srv := newTestServer(nil, nil, nil, nil)

	form := url.Values{"queries": {"{not json"}}
	req := httptest.NewRequest("POST", "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
	var e errorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if e.Code != "bad_request" {
		t.Errorf("unexpected error code %q", e.Code)
	}
}

func TestReconcile_BatchTooLarge(t *testing.T) {
	srv := newTestServer(nil, nil, nil, nil)

	big := make(map[string]queryRequest, maxBatchQueries+1)
	for i := 0; i <= maxBatchQueries; i++ {
		big["q"+string(rune('a'+i%26))+string(rune('0'+i/26))] = queryRequest{Query: "x"}
	}
	raw, _ := json.Marshal(big)
	form := url.Values{"queries": {string(raw)}}
	req := httptest.NewRequest("POST", "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}

func TestReconcile_StoreUnavailable(t *testing.T) {
	rec := &mockReconciler{err: domain.ErrStoreUnavailable}
	srv := newTestServer(rec, nil, nil, nil)

	form := url.Values{"queries": {`{"q0":{"query":"x"}}`}}
	req := httptest.NewRequest("POST", "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rr.Code)
	}
}

func TestStats(t *testing.T) {
	rd := &mockReader{counts: records.Counts{Museums: 2, Artists: 3, Artifacts: 5, Total: 10}}
	srv := newTestServer(nil, nil, rd, nil)

	req := httptest.NewRequest("GET", "/stats", http.NoBody)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var c records.Counts
	if err := json.Unmarshal(rr.Body.Bytes(), &c); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if c.Total != 10 {
		t.Errorf("unexpected stats %+v", c)
	}
}

func TestSuggestEntity(t *testing.T) {
	sug := &mockSuggester{entities: []match.Candidate{
		{ID: "MUSEUM_000001", Name: "Getty Center"},
		{ID: "MUSEUM_000002", Name: "Getty Villa"},
	}}
	srv := newTestServer(nil, sug, nil, nil)

	req := httptest.NewRequest("GET", "/suggest/entity?prefix=getty&cursor=3", http.NoBody)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp suggestEntityResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Result) != 2 || resp.Cursor != 5 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestSuggestEntity_BadCursor(t *testing.T) {
	srv := newTestServer(nil, nil, nil, nil)

	req := httptest.NewRequest("GET", "/suggest/entity?prefix=x&cursor=abc", http.NoBody)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}

func TestSuggestType(t *testing.T) {
	srv := newTestServer(nil, nil, nil, nil)

	req := httptest.NewRequest("GET", "/suggest/type?prefix=museum", http.NoBody)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp struct {
		Result []match.TypeRef `json:"result"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Result) != 1 || resp.Result[0].ID != "museum" {
		t.Errorf("unexpected result %+v", resp.Result)
	}
}

func TestExtend(t *testing.T) {
	srv := newTestServer(nil, nil, nil, nil)

	req := httptest.NewRequest("GET", "/extend", http.NoBody)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp struct {
		Properties []suggestuc.Property `json:"properties"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Properties) != 2 {
		t.Errorf("unexpected properties %+v", resp.Properties)
	}
}

func TestPreview(t *testing.T) {
	rd := &mockReader{recs: map[string]record.Record{
		"MUSEUM_000001": &record.Museum{
			Identifier: "MUSEUM_000001",
			Name:       "Getty Center",
			City:       "Los Angeles",
			State:      "CA",
		},
	}}
	srv := newTestServer(nil, nil, rd, nil)

	req := httptest.NewRequest("GET", "/preview/MUSEUM_000001", http.NoBody)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected html content type, got %q", ct)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Getty Center") || !strings.Contains(body, "Los Angeles") {
		t.Errorf("preview missing entity details: %s", body)
	}
}

func TestPreview_NotFound(t *testing.T) {
	srv := newTestServer(nil, nil, nil, nil)

	req := httptest.NewRequest("GET", "/preview/MUSEUM_999999", http.NoBody)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}

func TestView_SameAsPreview(t *testing.T) {
	rd := &mockReader{recs: map[string]record.Record{
		"ARTIST_000001": &record.Artist{
			Identifier: "ARTIST_000001",
			Name:       "Vincent van Gogh",
			WikiQID:    "Q5582",
		},
	}}
	srv := newTestServer(nil, nil, rd, nil)

	req := httptest.NewRequest("GET", "/view/ARTIST_000001", http.NoBody)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "wikidata.org/wiki/Q5582") {
		t.Errorf("expected wikidata link in view page")
	}
}

func TestFlyout(t *testing.T) {
	rd := &mockReader{recs: map[string]record.Record{
		"ARTIFACT_000001": &record.Artifact{Identifier: "ARTIFACT_000001", Title: "Starry Night"},
	}}
	srv := newTestServer(nil, nil, rd, nil)

	req := httptest.NewRequest("GET", "/flyout?id=ARTIFACT_000001", http.NoBody)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Starry Night") {
		t.Errorf("flyout missing entity details")
	}

	req = httptest.NewRequest("GET", "/flyout", http.NoBody)
	rr = httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("flyout without id should be 400, got %d", rr.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(nil, nil, nil, nil)

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	degraded := &mockHealth{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"store": healthuc.CheckError},
	}}
	srv = newTestServer(nil, nil, nil, degraded)

	rr = httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest("GET", "/health", http.NoBody))
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("degraded health should be 503, got %d", rr.Code)
	}
}

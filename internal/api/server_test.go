package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carmsdata/carmsdw/internal/testutil"
	"github.com/carmsdata/carmsdw/internal/warehouse"
	"github.com/carmsdata/carmsdw/pkg/core"
)

func strp(v string) *string { return &v }

// stubRunner satisfies Runner without a real pipeline.
type stubRunner struct {
	run     *core.Run
	results []core.StageResult
	err     error
}

func (r *stubRunner) Run(context.Context) (*core.Run, []core.StageResult, error) {
	return r.run, r.results, r.err
}

func seedStore(t *testing.T, store *warehouse.Store) {
	t.Helper()
	ctx := context.Background()

	longText := "## Program Highlights\n" + strings.Repeat("Community focused. ", 100)
	require.NoError(t, store.ReplaceGoldProgramProfiles(ctx, []core.GoldProgramProfile{
		{
			ProgramStreamID: 101,
			ProgramName:     strp("Family Medicine - Halifax"),
			DisciplineName:  strp("Family Medicine"),
			Province:        "NS",
			SchoolName:      strp("Dalhousie University"),
			DescriptionText: &longText,
			IsValid:         true,
		},
		{
			ProgramStreamID: 102,
			ProgramName:     strp("Family Medicine - Toronto"),
			DisciplineName:  strp("Family Medicine"),
			Province:        "ON",
			SchoolName:      strp("University of Toronto"),
			IsValid:         true,
		},
		{
			ProgramStreamID: 103,
			ProgramName:     strp("Psychiatry - Downtown"),
			DisciplineName:  strp("Psychiatry"),
			Province:        "ON",
			SchoolName:      strp("University of Toronto"),
			IsValid:         true,
		},
	}))

	require.NoError(t, store.ReplaceSilverDisciplines(ctx, []core.SilverDiscipline{
		{DisciplineID: 1, Discipline: strp("Family Medicine"), IsValid: true},
		{DisciplineID: 2, Discipline: nil, IsValid: false},
	}))

	require.NoError(t, store.ReplaceGoldGeoSummaries(ctx, []core.GoldGeoSummary{
		{Province: "NS", DisciplineName: "Family Medicine", ProgramCount: 1},
		{Province: "ON", DisciplineName: "Family Medicine", ProgramCount: 1},
		{Province: "ON", DisciplineName: "Psychiatry", ProgramCount: 1},
		{Province: core.UnknownProvince, DisciplineName: "Family Medicine", ProgramCount: 4},
	}))
}

func newTestServer(t *testing.T, mutate func(*Config)) http.Handler {
	t.Helper()

	store := testutil.OpenTestStore(t)
	seedStore(t, store)

	cfg := Config{
		Store:  store,
		Runner: &stubRunner{},
		Logger: testutil.NewTestLogger(t),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewServer(cfg).Routes()
}

func doRequest(t *testing.T, h http.Handler, method, target string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = "192.0.2.1:50000"
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, nil)
	rec := doRequest(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "ok", body["status"])
}

func TestListPrograms(t *testing.T) {
	h := newTestServer(t, nil)

	rec := doRequest(t, h, http.MethodGet, "/programs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[ProgramListResponse](t, rec)
	require.Len(t, resp.Items, 3)
	assert.Equal(t, defaultLimit, resp.Limit)
	assert.Nil(t, resp.Total)

	// List views carry a truncated preview, never the full text.
	first := resp.Items[0]
	assert.Equal(t, int64(101), first.ProgramStreamID)
	require.NotNil(t, first.DescriptionPreview)
	assert.True(t, strings.HasSuffix(*first.DescriptionPreview, "..."))
	assert.LessOrEqual(t, len(*first.DescriptionPreview), defaultPreviewChars+3)
	assert.Nil(t, resp.Items[1].DescriptionPreview)
}

func TestMakePreview(t *testing.T) {
	assert.Nil(t, makePreview(nil, 100))
	assert.Nil(t, makePreview(strp("text"), 0))

	short := "short text"
	assert.Equal(t, &short, makePreview(&short, 100))

	trimmed := makePreview(strp("line one \r\n extra"), 10)
	require.NotNil(t, trimmed)
	assert.Equal(t, "line one...", *trimmed)

	// A cut landing inside a multibyte rune backs off to the rune
	// boundary instead of emitting invalid UTF-8.
	accented := strings.Repeat("a", 899) + "é suffix"
	preview := makePreview(&accented, 900)
	require.NotNil(t, preview)
	assert.True(t, utf8.ValidString(*preview))
	assert.Equal(t, strings.Repeat("a", 899)+"...", *preview)
}

func TestListProgramsFilters(t *testing.T) {
	h := newTestServer(t, nil)

	rec := doRequest(t, h, http.MethodGet, "/programs?discipline=psych", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[ProgramListResponse](t, rec)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(103), resp.Items[0].ProgramStreamID)

	rec = doRequest(t, h, http.MethodGet, "/programs?province=ON&include_total=true&limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode[ProgramListResponse](t, rec)
	require.Len(t, resp.Items, 1)
	require.NotNil(t, resp.Total)
	assert.Equal(t, int64(2), *resp.Total)

	rec = doRequest(t, h, http.MethodGet, "/programs?school=dalhousie", nil)
	resp = decode[ProgramListResponse](t, rec)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(101), resp.Items[0].ProgramStreamID)
}

func TestListProgramsValidation(t *testing.T) {
	h := newTestServer(t, nil)

	tests := []struct {
		name   string
		target string
	}{
		{"unknown province code", "/programs?province=XX"},
		{"limit too large", "/programs?limit=9999"},
		{"limit zero", "/programs?limit=0"},
		{"negative offset", "/programs?offset=-1"},
		{"preview chars too large", "/programs?preview_chars=100000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, http.MethodGet, tt.target, nil)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		})
	}
}

func TestListProgramsUnknownProvinceBucket(t *testing.T) {
	h := newTestServer(t, nil)

	// UNKNOWN is queryable even though it is not a real code.
	rec := doRequest(t, h, http.MethodGet, "/programs?province=UNKNOWN", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[ProgramListResponse](t, rec)
	assert.Empty(t, resp.Items)
}

func TestGetProgram(t *testing.T) {
	h := newTestServer(t, nil)

	rec := doRequest(t, h, http.MethodGet, "/programs/101", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[ProgramDetail](t, rec)
	assert.Equal(t, int64(101), detail.ProgramStreamID)
	require.NotNil(t, detail.DescriptionText)
	assert.True(t, strings.HasPrefix(*detail.DescriptionText, "## Program Highlights"))
	assert.Nil(t, detail.DescriptionPreview)

	rec = doRequest(t, h, http.MethodGet, "/programs/999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[errorResponse](t, rec)
	assert.Equal(t, "Program not found", body.Detail)

	rec = doRequest(t, h, http.MethodGet, "/programs/abc", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListDisciplines(t *testing.T) {
	h := newTestServer(t, nil)

	rec := doRequest(t, h, http.MethodGet, "/disciplines", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode[[]DisciplineItem](t, rec)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].DisciplineID)
}

func TestMapData(t *testing.T) {
	h := newTestServer(t, nil)

	rec := doRequest(t, h, http.MethodGet, "/map/data.json", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	points := decode[[]MapPoint](t, rec)

	// The UNKNOWN bucket is excluded despite its larger count; ON (2)
	// comes before NS (1).
	require.Len(t, points, 2)
	assert.Equal(t, "ON", points[0].Province)
	assert.Equal(t, int64(2), points[0].Programs)
	assert.Equal(t, "NS", points[1].Province)
	assert.Equal(t, "Nova Scotia", points[1].Name)
	assert.NotZero(t, points[1].Lat)
}

func TestMapPage(t *testing.T) {
	h := newTestServer(t, nil)

	rec := doRequest(t, h, http.MethodGet, "/map", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "leaflet")
}

func TestPipelineRunEndpoint(t *testing.T) {
	run := &core.Run{ID: "run-1", Status: core.RunStatusCompleted}
	h := newTestServer(t, func(cfg *Config) {
		cfg.Runner = &stubRunner{
			run: run,
			results: []core.StageResult{
				{RunID: "run-1", Stage: "bronze_programs", RowCount: 6},
			},
		}
	})

	rec := doRequest(t, h, http.MethodPost, "/pipeline/run", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[PipelineRunResponse](t, rec)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "run-1", resp.RunID)
	require.Len(t, resp.Stages, 1)
	assert.Equal(t, int64(6), resp.Stages[0].RowCount)
}

func TestPipelineRunEndpointFailure(t *testing.T) {
	h := newTestServer(t, func(cfg *Config) {
		cfg.Runner = &stubRunner{
			run: &core.Run{ID: "run-2", Status: core.RunStatusFailed},
			err: errors.New("stage bronze_programs: source file not found"),
		}
	})

	rec := doRequest(t, h, http.MethodPost, "/pipeline/run", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode[PipelineRunResponse](t, rec)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "run-2", resp.RunID)
	assert.Contains(t, resp.Detail, "source file not found")
}

func TestRequireAPIKey(t *testing.T) {
	h := newTestServer(t, func(cfg *Config) {
		cfg.APIKey = "secret"
	})

	rec := doRequest(t, h, http.MethodGet, "/programs", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/programs", map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/programs", map[string]string{"X-API-Key": "secret"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiterAllow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewRateLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("client"))
	assert.True(t, l.Allow("client"))
	assert.False(t, l.Allow("client"))

	// Each client key has its own budget.
	assert.True(t, l.Allow("other"))

	// Sliding the clock past the window frees the budget.
	now = now.Add(61 * time.Second)
	assert.True(t, l.Allow("client"))
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewRateLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("idle"))
	assert.True(t, l.Allow("active"))

	// Once the window has fully passed, a request from any client
	// sweeps out keys that never came back.
	now = now.Add(61 * time.Second)
	assert.True(t, l.Allow("active"))

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.hits, "idle")
	assert.Contains(t, l.hits, "active")
}

func TestRateLimiterDisabled(t *testing.T) {
	l := NewRateLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow("client"))
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	h := newTestServer(t, func(cfg *Config) {
		cfg.RateLimitRequests = 2
		cfg.RateLimitWindow = time.Minute
	})

	assert.Equal(t, http.StatusOK, doRequest(t, h, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, doRequest(t, h, http.MethodGet, "/health", nil).Code)

	rec := doRequest(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	body := decode[errorResponse](t, rec)
	assert.Contains(t, body.Detail, "Rate limit")
}

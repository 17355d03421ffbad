package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/renobudget/internal/estimate"
	"github.com/theirongolddev/renobudget/internal/logging"
)

func newTestServer(t *testing.T, cfg Config) (*Service, *httptest.Server) {
	t.Helper()
	s := New(cfg)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func postEstimate(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/v1/estimate", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
}

func TestEstimate_OK(t *testing.T) {
	_, ts := newTestServer(t, Config{})

	resp := postEstimate(t, ts, `{"home_value":"$300,000","yearly_income":"90000","project_type":"Kitchen"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Inputs estimate.Inputs `json:"inputs"`
		Tiers  []struct {
			Tier        estimate.Tier `json:"tier"`
			TotalBudget float64       `json:"total_budget"`
			Display     struct {
				UpdatedHomeValue string `json:"updated_home_value"`
				TimeToSave       string `json:"time_to_save"`
			} `json:"display"`
		} `json:"tiers"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	assert.Equal(t, estimate.ProjectKitchen, got.Inputs.ProjectType)
	require.Len(t, got.Tiers, 3)
	assert.Equal(t, estimate.TierLow, got.Tiers[0].Tier)
	assert.InDelta(t, 16500, got.Tiers[0].TotalBudget, 1e-6)
	assert.Equal(t, "$314,850.00", got.Tiers[0].Display.UpdatedHomeValue)
	assert.Equal(t, "11 months", got.Tiers[0].Display.TimeToSave)
}

func TestEstimate_ValidationErrors(t *testing.T) {
	s, ts := newTestServer(t, Config{})

	resp := postEstimate(t, ts, `{"home_value":"1000","yearly_income":"","project_type":"select"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "Home value must be at least $50,000", got.FieldErrors["home_value"])
	assert.Contains(t, got.FieldErrors, "yearly_income")
	assert.Equal(t, "Project type must be selected", got.FieldErrors["project_type"])
	assert.Equal(t, resp.Header.Get(RequestIDHeader), got.RequestID)

	assert.Equal(t, int64(1), s.snapshotStatus().ValidationFailures)
}

func TestEstimate_MalformedBody(t *testing.T) {
	_, ts := newTestServer(t, Config{})

	resp := postEstimate(t, ts, `{"home_value": 300000}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEstimate_InvalidConfigurationIsGeneric(t *testing.T) {
	tables := estimate.DefaultTables()
	tables.ROI = estimate.Table{}

	s, ts := newTestServer(t, Config{Calculator: estimate.NewCalculator(tables)})

	resp := postEstimate(t, ts, `{"home_value":"300000","yearly_income":"90000","project_type":"Deck Addition"}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var got ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, GenericCalculationError, got.Error)
	assert.Empty(t, got.FieldErrors)

	st := s.snapshotStatus()
	assert.Equal(t, int64(1), st.CalcFailures)
	assert.Contains(t, st.LastError, "invalid configuration")
	assert.Positive(t, st.TableGaps)
}

func TestCatalogRoutes(t *testing.T) {
	_, ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/v1/catalog")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rep struct {
		Projects []struct {
			Project string `json:"project"`
		} `json:"projects"`
		Gaps []estimate.Gap `json:"gaps"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
	assert.Len(t, rep.Projects, len(estimate.Catalog))
	assert.Empty(t, rep.Gaps)

	entry, err := http.Get(ts.URL + "/v1/catalog/Kitchen")
	require.NoError(t, err)
	defer entry.Body.Close()
	assert.Equal(t, http.StatusOK, entry.StatusCode)

	missing, err := http.Get(ts.URL + "/v1/catalog/Pool")
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestMethodNotAllowed(t *testing.T) {
	_, ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/v1/estimate")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := New(Config{})
	req := httptest.NewRequest(http.MethodGet, "/v1/status", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	var st Status
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&st))
	assert.Equal(t, len(estimate.Catalog), st.CatalogSize)
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	s := New(Config{Logger: newJSONLogger(&buf)})
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Contains(t, buf.String(), `"msg":"http_request"`)
	assert.Contains(t, buf.String(), `"request_id"`)
	assert.Equal(t, int64(1), s.snapshotStatus().Requests)
}

func TestRecordRingBuffer(t *testing.T) {
	s := New(Config{EventsBuffer: 2})

	s.record(Event{Type: EventEstimate, ProjectType: estimate.ProjectDeck}, nil)
	s.record(Event{Type: EventInvalid}, errors.New("bad input"))
	s.record(Event{Type: EventEstimate, ProjectType: estimate.ProjectSolar}, nil)

	s.mu.RLock()
	defer s.mu.RUnlock()

	require.Len(t, s.events, 2)
	assert.Equal(t, EventInvalid, s.events[0].Type)
	assert.Equal(t, estimate.ProjectSolar, s.events[1].ProjectType)
	assert.NotEqual(t, s.events[0].ID, s.events[1].ID)
	assert.Equal(t, int64(2), s.estimates)
	assert.Equal(t, "bad input", s.lastError)
}

func TestRunShutsDownOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	s := New(Config{Addr: addr})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(6 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func newJSONLogger(buf *bytes.Buffer) *slog.Logger {
	return logging.NewStructuredLogger(buf, slog.LevelInfo)
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nshruti113/attack-map-dashboard/internal/config"
	"github.com/nshruti113/attack-map-dashboard/internal/feed"
	"github.com/nshruti113/attack-map-dashboard/internal/metrics"
	"github.com/nshruti113/attack-map-dashboard/internal/mockdata"
	"github.com/nshruti113/attack-map-dashboard/internal/models"
)

var fixedNow = time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)

type fakeMirror struct {
	mu      sync.Mutex
	attacks []models.Attack
	err     error
}

func (m *fakeMirror) StoreAttack(_ context.Context, a models.Attack) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attacks = append(m.attacks, a)
	return m.err
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Addr: "127.0.0.1:0", Mode: gin.TestMode},
		Generator: config.GeneratorConfig{
			DefaultSeed:    42,
			InitialAttacks: 50,
			MaxAttacks:     100,
		},
		Feed: config.FeedConfig{Capacity: 5, Initial: 3, MinInterval: time.Hour},
	}
}

func newTestServer(t *testing.T, opts ...Option) (*Server, *feed.Feed) {
	t.Helper()
	m, err := metrics.New()
	require.NoError(t, err)

	f := feed.New(
		mockdata.GenerateAttacksAt(3, 42, fixedNow),
		feed.WithCapacity(5),
		feed.WithSource(mockdata.NewStream(7)),
		feed.WithClock(func() time.Time { return fixedNow }),
	)
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(testConfig(), f, m, nil, opts...), f
}

func metricsBody(t *testing.T, s *Server) string {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func get(t *testing.T, s *Server, path string, out any) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestGetAttacks_Defaults(t *testing.T) {
	s, _ := newTestServer(t)

	var body struct {
		Attacks []models.Attack `json:"attacks"`
	}
	rec := get(t, s, "/api/attacks", &body)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, body.Attacks, 50)
	assert.Equal(t, "atk-0", body.Attacks[0].ID)
	assert.Equal(t, "Beijing", body.Attacks[0].Source.City)
	assert.Equal(t, 63953, body.Attacks[0].Port)
	assert.True(t, fixedNow.Add(-2647524*time.Millisecond).Equal(body.Attacks[0].Timestamp))
}

func TestGetAttacks_CountAndSeed(t *testing.T) {
	s, _ := newTestServer(t)

	var body struct {
		Attacks []models.Attack `json:"attacks"`
	}
	get(t, s, "/api/attacks?count=5&seed=99", &body)

	require.Len(t, body.Attacks, 5)
	want := mockdata.GenerateAttacksAt(5, 99, fixedNow)
	for i := range want {
		assert.Equal(t, want[i].ID, body.Attacks[i].ID)
		assert.Equal(t, want[i].Source, body.Attacks[i].Source)
		assert.Equal(t, want[i].Target, body.Attacks[i].Target)
		assert.Equal(t, want[i].Port, body.Attacks[i].Port)
	}
}

func TestGetAttacks_CountBounds(t *testing.T) {
	s, _ := newTestServer(t)

	var capped struct {
		Attacks []models.Attack `json:"attacks"`
	}
	get(t, s, "/api/attacks?count=100000", &capped)
	assert.Len(t, capped.Attacks, 100)

	rec := get(t, s, "/api/attacks?count=-4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"attacks": []}`, rec.Body.String())

	assert.Contains(t, metricsBody(t, s), `attack_dashboard_dataset_requests_total{view="attacks"} 2`)
}

func TestGetAttacks_BadQuery(t *testing.T) {
	s, _ := newTestServer(t)

	for _, path := range []string{"/api/attacks?count=lots", "/api/timeline?seed=abc"} {
		rec := get(t, s, path, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "error", path)
	}
}

func TestGetThreatStatus(t *testing.T) {
	s, _ := newTestServer(t)

	var status models.ThreatStatus
	get(t, s, "/api/threat-status", &status)
	assert.Equal(t, mockdata.GenerateThreatStatus(42), status)

	get(t, s, "/api/threat-status?seed=99", &status)
	assert.Equal(t, mockdata.GenerateThreatStatus(99), status)
}

func TestGetTopCountries(t *testing.T) {
	s, _ := newTestServer(t)

	var body struct {
		Countries []models.CountryAttackStat `json:"countries"`
	}
	get(t, s, "/api/countries/top", &body)
	assert.Equal(t, mockdata.GenerateTopTargetedCountries(42), body.Countries)
}

func TestGetAttackTypeBreakdown(t *testing.T) {
	s, _ := newTestServer(t)

	var body struct {
		Breakdown []models.AttackTypeStat `json:"breakdown"`
	}
	get(t, s, "/api/attack-types/breakdown?seed=7", &body)
	assert.Equal(t, mockdata.GenerateAttackTypeBreakdown(7), body.Breakdown)
}

func TestGetTimeline(t *testing.T) {
	s, _ := newTestServer(t)

	var body struct {
		Timeline []models.TimelinePoint `json:"timeline"`
	}
	get(t, s, "/api/timeline", &body)
	require.Len(t, body.Timeline, 24)
	assert.Equal(t, models.TimelinePoint{Time: "00:00", Attacks: 101, Blocked: 64}, body.Timeline[0])
}

func TestGetSummary(t *testing.T) {
	s, _ := newTestServer(t)

	var summary models.Summary
	get(t, s, "/api/stats/summary", &summary)
	assert.Equal(t, mockdata.GenerateSummary(42), summary)
}

func TestGetDashboard(t *testing.T) {
	s, _ := newTestServer(t)

	var ds models.Dataset
	rec := get(t, s, "/api/dashboard?count=10", &ds)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), ds.Seed)
	assert.Len(t, ds.Attacks, 10)
	assert.Equal(t, mockdata.GenerateTimeline(42), ds.Timeline)
	assert.Equal(t, mockdata.GenerateAttackTypeBreakdown(42), ds.AttackTypes)
	assert.Contains(t, metricsBody(t, s), "attack_dashboard_generated_attacks_total 10")
}

func TestGetFeed(t *testing.T) {
	s, f := newTestServer(t)
	f.Add()

	var body struct {
		Attacks []models.Attack `json:"attacks"`
	}
	get(t, s, "/api/feed", &body)

	require.Len(t, body.Attacks, 4)
	assert.Equal(t, "live-3", body.Attacks[0].ID)
	assert.Equal(t, "atk-0", body.Attacks[1].ID)
}

func TestHealthzAndMetrics(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	get(t, s, "/api/timeline", nil)
	rec = get(t, s, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `attack_dashboard_dataset_requests_total{view="timeline"} 1`)
}

func TestCORS(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/attacks", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLiveAttack_MirrorAndMetrics(t *testing.T) {
	mirror := &fakeMirror{}
	s, f := newTestServer(t, WithMirror(mirror))

	attack := f.Add()

	require.Len(t, mirror.attacks, 1)
	assert.Equal(t, attack.ID, mirror.attacks[0].ID)
	body := metricsBody(t, s)
	assert.Contains(t, body, `attack_dashboard_live_attacks_total{severity="`+string(attack.Severity)+`",type="`+string(attack.Type)+`"} 1`)
	assert.Contains(t, body, "attack_dashboard_feed_mirror_errors_total 0")
}

func TestLiveAttack_MirrorFailureKeepsFeed(t *testing.T) {
	mirror := &fakeMirror{err: errors.New("redis down")}
	s, f := newTestServer(t, WithMirror(mirror))

	f.Add()
	f.Add()

	assert.Len(t, f.Snapshot(), 5)
	assert.Contains(t, metricsBody(t, s), "attack_dashboard_feed_mirror_errors_total 2")
}

func TestWebSocket_SnapshotThenLiveAttacks(t *testing.T) {
	s, f := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var snapshot struct {
		Type    string          `json:"type"`
		Payload []models.Attack `json:"payload"`
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, conn.ReadJSON(&snapshot))
	assert.Equal(t, MessageSnapshot, snapshot.Type)
	assert.Len(t, snapshot.Payload, 3)
	assert.Equal(t, 1, s.hub.Count())

	attack := f.Add()

	var live struct {
		Type    string        `json:"type"`
		Payload models.Attack `json:"payload"`
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, conn.ReadJSON(&live))
	assert.Equal(t, MessageAttack, live.Type)
	assert.Equal(t, attack.ID, live.Payload.ID)

	conn.Close()
	require.Eventually(t, func() bool { return s.hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestRun_StopsOnCancel(t *testing.T) {
	s, _ := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

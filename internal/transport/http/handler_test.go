package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"io.ruvo/notification/internal/application"
	"io.ruvo/notification/internal/domain"
	transporthttp "io.ruvo/notification/internal/transport/http"
)

const secret = "handler-secret"

type stubRepo struct{ rows []domain.Notification }

func (r *stubRepo) Create(context.Context, domain.CreateNotificationInput) (*domain.Notification, error) {
	return nil, nil
}

func (r *stubRepo) ListForUser(context.Context, string, int) ([]domain.Notification, error) {
	return r.rows, nil
}

func (r *stubRepo) PurgeOlderThan(context.Context, int) (int64, error) { return 0, nil }

type memInterests map[string][]string

func (m memInterests) List(_ context.Context, u string) ([]string, error) { return m[u], nil }

func (m memInterests) Save(_ context.Context, u string, in []string) error {
	m[u] = in
	return nil
}

type fixture struct {
	e   *echo.Echo
	svc *application.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	repo := &stubRepo{rows: []domain.Notification{
		{ID: "p1", Title: "Breaking", Category: "Politics", Urgency: domain.UrgencyHigh, Timestamp: now.Add(-2 * time.Hour)},
		{ID: "p2", Title: "Digest", Category: "Food", Urgency: domain.UrgencyLow, Read: true, Timestamp: now.Add(-3 * 24 * time.Hour)},
	}}
	hub := transporthttp.NewHub()
	svc := application.NewService(repo, memInterests{}, hub,
		application.WithClock(func() time.Time { return now }),
		application.WithIDGenerator(func() string { return "gen-1" }),
	)
	h := transporthttp.NewHandler(svc, hub)
	return fixture{e: transporthttp.NewRouter(h, secret), svc: svc}
}

func (f fixture) do(t *testing.T, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

type pageBody struct {
	Filter string           `json:"filter"`
	Counts domain.Counts    `json:"counts"`
	Data   []map[string]any `json:"data"`
}

func decodePage(t *testing.T, rec *httptest.ResponseRecorder) pageBody {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var p pageBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestListNotifications(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/notifications/sync").Code)

	page := decodePage(t, f.do(t, http.MethodGet, "/notifications?filter=unread"))
	assert.Equal(t, "unread", page.Filter)
	assert.Equal(t, domain.Counts{All: 2, Unread: 1, High: 1}, page.Counts)
	require.Len(t, page.Data, 1)
	item := page.Data[0]
	assert.Equal(t, "p1", item["id"])
	assert.Equal(t, "2h ago", item["time_ago"])
	assert.Equal(t, "#FF3B30", item["urgency_color"])
	assert.Equal(t, "alert-circle", item["urgency_icon"])
	assert.Equal(t, "🏛️", item["category_emoji"])
	assert.Equal(t, false, item["deletable"])
	assert.Equal(t, "persisted", item["source"])

	all := decodePage(t, f.do(t, http.MethodGet, "/notifications"))
	require.Len(t, all.Data, 2)
	assert.Equal(t, "3d ago", all.Data[1]["time_ago"])
}

func TestListNotifications_BadFilter(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/notifications?filter=starred").Code)
}

func TestRequiresAuth(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notifications", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	f.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMarkReadAndCounts(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/notifications/sync")

	rec := f.do(t, http.MethodPatch, "/notifications/p1/read")
	require.Equal(t, http.StatusOK, rec.Code)

	var counts domain.Counts
	require.NoError(t, json.Unmarshal(f.do(t, http.MethodGet, "/notifications/counts").Body.Bytes(), &counts))
	assert.Equal(t, domain.Counts{All: 2, Unread: 0, High: 1}, counts)

	// Unknown id is a silent no-op.
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodPatch, "/notifications/nope/read").Code)
}

func TestDelete_PersistedIgnored_GeneratedRemoved(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/notifications/sync")
	sig := domain.Signal{ID: "s1", Title: "Flash deal", Category: "Bonus", UserID: "u1"}
	require.NoError(t, f.svc.Ingest(context.Background(), domain.IngestInput{Signal: &sig}))

	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/notifications/p1").Code)
	assert.Equal(t, 3, f.svc.Counts("u1").All)

	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/notifications/gen-1").Code)
	assert.Equal(t, 2, f.svc.Counts("u1").All)
}

func TestToggleInterest(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/interests/Tech/toggle")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"interests":["Tech"]}`, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/interests/tech/toggle")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"interests":[]}`, rec.Body.String())

	assert.JSONEq(t, `{"interests":[]}`, f.do(t, http.MethodGet, "/interests").Body.String())
}

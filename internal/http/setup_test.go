package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/authors"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/links"
	"github.com/mrlokans/library/internal/paging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testBaseURL = "http://localhost:8080"

// Seeded catalog ids.
const (
	kingID     = "25320c5e-f58a-4b1f-b63a-8ee07a840bdf"
	martinID   = "76053df4-6687-4353-8937-b45556748abe"
	gaimanID   = "412c3012-d891-4f5e-9613-ff7aa63e6bb3"
	shiningID  = "c7ba6add-09c4-45f8-8dd0-eaca221e5d93"
	missingID  = "00000000-0000-4000-8000-000000000001"
	seededSize = 6
)

var testNow = time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)

type testServer struct {
	router *gin.Engine
	db     *database.Database
	audit  *recordingAudit
}

// setupTestServer builds the full router on a sqlite database, seeded with
// the sample catalog when seed is true.
func setupTestServer(t *testing.T, seed bool, mutate ...func(*RouterConfig)) *testServer {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	if seed {
		_, err := db.Seed()
		require.NoError(t, err)
	}

	audit := &recordingAudit{}
	cfg := RouterConfig{
		AuthorStore: authors.NewRepository(db.DB),
		BookStore:   books.NewRepository(db.DB),
		Database:    db,
		BaseURL:     testBaseURL,
		AuditLogger: audit,
		Logger:      zap.NewNop(),
		Now:         func() time.Time { return testNow },
	}
	for _, m := range mutate {
		m(&cfg)
	}

	router, err := NewRouter(cfg)
	require.NoError(t, err)
	return &testServer{router: router, db: db, audit: audit}
}

// do sends a request; headers are name, value pairs.
func (s *testServer) do(method, target, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// hyper sends a request asking for hypermedia.
func (s *testServer) hyper(method, target, body string) *httptest.ResponseRecorder {
	return s.do(method, target, body, "Accept", links.DefaultMediaType)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func paginationHeader(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	raw := w.Header().Get(paging.HeaderName)
	require.NotEmpty(t, raw)
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func linkRels(raw []any) []string {
	rels := make([]string, 0, len(raw))
	for _, l := range raw {
		rels = append(rels, l.(map[string]any)["rel"].(string))
	}
	return rels
}

func findLink(raw []any, rel string) map[string]any {
	for _, l := range raw {
		link := l.(map[string]any)
		if link["rel"] == rel {
			return link
		}
	}
	return nil
}

// --- Mocks ---

type recordingAudit struct {
	mu      sync.Mutex
	actions []string
	payload []any
}

func (a *recordingAudit) record(action string, payload any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
	a.payload = append(a.payload, payload)
}

func (a *recordingAudit) LogCreate(entityType, entityID, description string, payload any) {
	a.record(entityType+"_create", payload)
}

func (a *recordingAudit) LogUpdate(entityType, entityID, action, description string) {
	a.record(entityType+"_"+action, nil)
}

func (a *recordingAudit) LogDelete(entityType, entityID, entityName string) {
	a.record(entityType+"_delete", nil)
}

func (a *recordingAudit) Actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.actions...)
}

var errStoreDown = errors.New("store unavailable")

// failingAuthorStore fails every call.
type failingAuthorStore struct{}

func (failingAuthorStore) List(context.Context, authors.ListParams) ([]entities.Author, int64, error) {
	return nil, 0, errStoreDown
}
func (failingAuthorStore) GetByID(context.Context, uuid.UUID) (*entities.Author, error) {
	return nil, errStoreDown
}
func (failingAuthorStore) GetByIDs(context.Context, []uuid.UUID) ([]entities.Author, error) {
	return nil, errStoreDown
}
func (failingAuthorStore) Exists(context.Context, uuid.UUID) (bool, error) {
	return false, errStoreDown
}
func (failingAuthorStore) Create(context.Context, *entities.Author) error       { return errStoreDown }
func (failingAuthorStore) CreateMany(context.Context, []entities.Author) error  { return errStoreDown }
func (failingAuthorStore) Delete(context.Context, uuid.UUID) error              { return errStoreDown }

type mockTaskQueue struct {
	status backlite.TaskStatus
	err    error
}

func (m *mockTaskQueue) Enqueue(backlite.Task) (string, error) { return "task-1", m.err }

func (m *mockTaskQueue) Status(context.Context, string) (backlite.TaskStatus, error) {
	return m.status, m.err
}

type mockMaintenance struct {
	ids []string
	err error
}

func (m *mockMaintenance) RunNow() ([]string, error) { return m.ids, m.err }

type mockAuditReader struct {
	events []entities.AuditEvent
	total  int64
	err    error

	gotType   string
	gotLimit  int
	gotOffset int
}

func (m *mockAuditReader) GetEvents(entityType string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	m.gotType, m.gotLimit, m.gotOffset = entityType, limit, offset
	return m.events, m.total, m.err
}

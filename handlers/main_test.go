package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/christianErichsen/Baatkompany/config"
	"github.com/christianErichsen/Baatkompany/database"
	"github.com/christianErichsen/Baatkompany/models"
	"github.com/christianErichsen/Baatkompany/utils"
	"github.com/stretchr/testify/require"
)

const testAdminToken = "test-admin-token"

// recordingNotifier captures notification attempts for assertions.
type recordingNotifier struct {
	mu    sync.Mutex
	fail  bool
	calls []models.RepairRequest
	done  chan struct{}
}

func newRecordingNotifier(fail bool) *recordingNotifier {
	return &recordingNotifier{fail: fail, done: make(chan struct{}, 8)}
}

func (n *recordingNotifier) RepairRequestReceived(_ context.Context, req models.RepairRequest) error {
	n.mu.Lock()
	n.calls = append(n.calls, req)
	n.mu.Unlock()
	n.done <- struct{}{}
	if n.fail {
		return errors.New("notifier unavailable")
	}
	return nil
}

func (n *recordingNotifier) waitForCall(t *testing.T) models.RepairRequest {
	t.Helper()
	select {
	case <-n.done:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for notifier dispatch")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[len(n.calls)-1]
}

// MockApplication holds dependencies for handler tests.
type MockApplication struct {
	db       *database.DatabaseService
	logger   *slog.Logger
	notifier models.Notifier
	upload   models.UploadWidget
}

func (a *MockApplication) DB() *database.DatabaseService     { return a.db }
func (a *MockApplication) Logger() *slog.Logger              { return a.logger }
func (a *MockApplication) Notifier() models.Notifier         { return a.notifier }
func (a *MockApplication) AdminToken() string                { return testAdminToken }
func (a *MockApplication) UploadWidget() models.UploadWidget { return a.upload }

// setupTestApp creates the full application stack over a throwaway database.
func setupTestApp(t *testing.T) *MockApplication {
	t.Helper()

	require.NoError(t, LoadTemplates(), "Failed to load templates")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dbPath := filepath.Join(t.TempDir(), "test.db") + "?_journal_mode=WAL&_foreign_keys=on"
	dbService, err := database.InitDB(dbPath, logger)
	require.NoError(t, err, "Failed to initialize test database")

	t.Cleanup(func() {
		dbService.DB.Close()
	})

	return &MockApplication{db: dbService, logger: logger}
}

func postForm(handler http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func adminSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:  utils.AdminSessionCookie,
		Value: utils.NewAdminSession(testAdminToken, config.AdminSessionTTL),
	}
}

func countRows(t *testing.T, app *MockApplication, table string) int {
	t.Helper()
	var n int
	require.NoError(t, app.db.DB.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

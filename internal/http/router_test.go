package api

import (
	"bytes"
	"database/sql"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	intconfig "fleetlog/internal/config"
	"fleetlog/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, env intconfig.Env) (*gin.Engine, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("local store: %v", err)
	}
	r, err := NewRouter(db, store, env, zap.NewNop())
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return r, mock, db
}

func TestHealth(t *testing.T) {
	r, _, _ := newTestRouter(t, intconfig.Env{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing request id header")
	}
}

func TestDashboardRenders(t *testing.T) {
	r, mock, _ := newTestRouter(t, intconfig.Env{})

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM employees").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(3))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM vehicles").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(2))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM routes").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(4))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM daily_trips").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(5))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Active routes") {
		t.Fatalf("dashboard not rendered: %s", w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestExportCSVQuotesCommaField(t *testing.T) {
	r, mock, _ := newTestRouter(t, intconfig.Env{})

	mock.ExpectQuery("FROM vehicles WHERE status = 1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "license_plate", "vehicle_type", "capacity", "fuel_consumption", "documents", "status", "created_at"}).
			AddRow(1, "B1234XY", "Box, chilled", 2500.0, 6.5, "[]", 1, "2024-01-01 08:00:00"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/export/vehicles?format=csv", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "vehicles_") {
		t.Fatalf("unexpected disposition %q", w.Header().Get("Content-Disposition"))
	}
	body := w.Body.Bytes()
	if !bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("missing BOM")
	}
	if !bytes.Contains(body, []byte(`"Box, chilled"`)) {
		t.Fatalf("comma field not quoted: %s", body)
	}
}

func TestUnknownExportRedirectsWithError(t *testing.T) {
	r, _, _ := newTestRouter(t, intconfig.Env{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/export/passengers", nil))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/?error=") {
		t.Fatalf("unexpected redirect %q", loc)
	}
}

func TestCreateTripWithoutRouteIsRejected(t *testing.T) {
	r, mock, _ := newTestRouter(t, intconfig.Env{})

	form := url.Values{"date": {"2024-03-05"}, "driver_name": {"An"}}
	req := httptest.NewRequest(http.MethodPost, "/daily/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/daily?date=2024-03-05&error=") {
		t.Fatalf("unexpected redirect %q", loc)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("nothing should be written: %v", err)
	}
}

func TestCreateTripOnRetiredRouteRollsBack(t *testing.T) {
	r, mock, _ := newTestRouter(t, intconfig.Env{})

	mock.ExpectBegin()
	mock.ExpectQuery("FROM routes WHERE id = \\?").WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "route_code", "route_name", "distance", "monthly_salary", "category", "status", "created_at"}).
			AddRow(2, "NA_001", "North", 40.0, 0.0, "reinforcement", 0, "2024-01-01 08:00:00"))
	mock.ExpectRollback()

	form := url.Values{"date": {"2024-03-05"}, "route_id": {"2"}, "driver_name": {"An"}}
	req := httptest.NewRequest(http.MethodPost, "/daily/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Location"), "error=") {
		t.Fatalf("expected error redirect, got %q", w.Header().Get("Location"))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAPIFuelImportReportsSkippedRows(t *testing.T) {
	r, mock, _ := newTestRouter(t, intconfig.Env{})

	mock.ExpectBegin()
	mock.ExpectQuery("FROM fuel_records WHERE fuel_date").WithArgs("2024-03-05", "B1").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec("INSERT INTO fuel_records").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "fuel.csv")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	_, _ = fw.Write([]byte("date,plate,price,liters\n2024-03-05,B1,19020,50\n2024-03-05,b1,19020,10\n"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/fuel/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	for _, frag := range []string{`"imported":1`, `"skipped":1`, `"duplicates":1`, `"duplicate_in_file"`} {
		if !strings.Contains(w.Body.String(), frag) {
			t.Fatalf("response missing %s: %s", frag, w.Body.String())
		}
	}
}

func TestPagesRequireSignInWhenAuthEnabled(t *testing.T) {
	r, _, _ := newTestRouter(t, intconfig.Env{JWTSecret: "test-secret"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees", nil))
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", w.Code, w.Header().Get("Location"))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/salary", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("login page should be public, got %d", w.Code)
	}
}

func TestMetricsExposed(t *testing.T) {
	r, _, _ := newTestRouter(t, intconfig.Env{})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `fleetlog_http_requests_total{method="GET",route="/api/health",status="200"} 1`) {
		t.Fatalf("request counter missing: %s", w.Body.String())
	}
}

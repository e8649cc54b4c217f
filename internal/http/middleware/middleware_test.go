package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func signed(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "1",
		"username": "admin",
		"role":     "admin",
		"exp":      exp.Unix(),
	})
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func authEngine(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RequireAuth(secret))
	r.GET("/page", func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, u.Username)
	})
	return r
}

func TestRequestIDKeepsIncomingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "abc-123" || w.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("request id not propagated: %q", w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(w.Body.String()) != 36 {
		t.Fatalf("expected generated uuid, got %q", w.Body.String())
	}
}

func TestRequireAuthDisabledWithoutSecret(t *testing.T) {
	w := httptest.NewRecorder()
	authEngine("").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page", nil))
	if w.Code != http.StatusOK || w.Body.String() != "anonymous" {
		t.Fatalf("expected open access, got %d %q", w.Code, w.Body.String())
	}
}

func TestRequireAuthAcceptsCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookie, Value: signed(t, "s3cret", time.Now().Add(time.Hour))})

	w := httptest.NewRecorder()
	authEngine("s3cret").ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "admin" {
		t.Fatalf("expected signed-in user, got %d %q", w.Code, w.Body.String())
	}
}

func TestRequireAuthRejectsExpiredAndForeignTokens(t *testing.T) {
	for name, token := range map[string]string{
		"expired": signed(t, "s3cret", time.Now().Add(-time.Hour)),
		"foreign": signed(t, "other", time.Now().Add(time.Hour)),
	} {
		req := httptest.NewRequest(http.MethodGet, "/page", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		authEngine("s3cret").ServeHTTP(w, req)
		if w.Code != http.StatusSeeOther {
			t.Fatalf("%s: expected redirect, got %d", name, w.Code)
		}
	}
}

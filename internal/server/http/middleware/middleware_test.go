package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/marketplace/internal/domain/model"
	pkgAuth "github.com/polkiloo/marketplace/internal/pkg/auth"
	testhelpers "github.com/polkiloo/marketplace/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestAuthRequired(t *testing.T) {
	router := gin.New()
	router.Use(AuthRequired(testhelpers.TokenParserStub{}))
	router.GET("/", func(c *gin.Context) {})
	resp := serve(router, "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"message"`) {
		t.Fatalf("expected message body, got %q", resp.Body.String())
	}

	router = gin.New()
	router.Use(AuthRequired(testhelpers.TokenParserStub{Err: pkgAuth.ErrInvalidToken}))
	router.GET("/", func(c *gin.Context) {})
	if resp := serve(router, "token"); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", resp.Code)
	}

	router = gin.New()
	router.Use(AuthRequired(testhelpers.TokenParserStub{Err: context.DeadlineExceeded}))
	router.GET("/", func(c *gin.Context) {})
	if resp := serve(router, "token"); resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}

	var stored model.Identity
	router = gin.New()
	router.Use(AuthRequired(testhelpers.TokenParserStub{Identity: model.Identity{UserID: "s1", Role: model.RoleSeller}}))
	router.GET("/", func(c *gin.Context) {
		stored = Identity(c)
		c.Status(http.StatusOK)
	})
	if resp := serve(router, "token"); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if stored.UserID != "s1" || stored.Role != model.RoleSeller {
		t.Fatalf("unexpected identity %+v", stored)
	}
}

func TestRequireRole(t *testing.T) {
	newRouter := func(role model.Role) *gin.Engine {
		router := gin.New()
		router.Use(AuthRequired(testhelpers.TokenParserStub{Identity: model.Identity{UserID: "u1", Role: role}}))
		router.Use(RequireRole(model.RoleSeller))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
		return router
	}

	if resp := serve(newRouter(model.RoleBuyer), "token"); resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for buyer, got %d", resp.Code)
	}
	if resp := serve(newRouter(model.RoleSeller), "token"); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for seller, got %d", resp.Code)
	}
}

func TestIdentityWithoutAuth(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := Identity(c); got.Authenticated() {
		t.Fatalf("expected anonymous identity, got %+v", got)
	}
}

func TestSetAuthCookie(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	SetAuthCookie(c, "token", time.Hour)
	if got := recorder.Header().Get("Authorization"); got != "Bearer token" {
		t.Fatalf("expected auth header, got %q", got)
	}
	result := recorder.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	cookies := result.Cookies()
	if len(cookies) == 0 || cookies[0].Name != authCookieName || cookies[0].Value != "token" {
		t.Fatalf("expected cookie with token, got %+v", cookies)
	}
	if cookies[0].MaxAge != 3600 {
		t.Fatalf("expected max age 3600, got %d", cookies[0].MaxAge)
	}
}

func TestExtractToken(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
	if token := extractToken(c); token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}
	c.Request.Header.Set("Authorization", "Bearer abc")
	if token := extractToken(c); token != "abc" {
		t.Fatalf("expected token from header, got %q", token)
	}
	c.Request.Header.Del("Authorization")
	c.Request.AddCookie(&http.Cookie{Name: authCookieName, Value: "cookie"})
	if token := extractToken(c); token != "cookie" {
		t.Fatalf("expected token from cookie, got %q", token)
	}
}

func TestRequestLogger(t *testing.T) {
	levels := make(map[slog.Level]int)
	handler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.LevelKey {
			levels[a.Value.Any().(slog.Level)]++
		}
		return a
	}})
	logger := slog.New(handler)

	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("db down"))
		c.Status(http.StatusInternalServerError)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))
	if levels[slog.LevelInfo] != 1 || levels[slog.LevelError] != 1 {
		t.Fatalf("expected one info and one error entry, got %v", levels)
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"blogify/internal/core/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type verifierFunc func(string) (string, error)

func (f verifierFunc) VerifyToken(token string) (string, error) { return f(token) }

func newEngine(logger *zap.Logger, v TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(logger), RequestLogger(logger))
	r.GET("/private", JWTAuthMiddleware(v), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("userID"))
	})
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	v := verifierFunc(func(token string) (string, error) {
		switch token {
		case "good":
			return "user-1", nil
		case "old":
			return "", apperror.Unauthenticated("Token expired")
		default:
			return "", apperror.Unauthenticated("Invalid token")
		}
	})
	r := newEngine(zap.NewNop(), v)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid", "Bearer good", http.StatusOK, "user-1"},
		{"lowercase scheme", "bearer good", http.StatusOK, "user-1"},
		{"missing", "", http.StatusUnauthorized, `{"message":"No token, authorization denied"}`},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, `{"message":"No token, authorization denied"}`},
		{"expired", "Bearer old", http.StatusUnauthorized, `{"message":"Token expired"}`},
		{"invalid", "Bearer nope", http.StatusUnauthorized, `{"message":"Invalid token"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestRecoveryAndRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newEngine(zap.New(core), verifierFunc(func(string) (string, error) { return "u", nil }))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Server error"}`, w.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer x")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	entries := logs.FilterMessage("request").All()
	if assert.Len(t, entries, 1, "a panicking handler is logged by recovery only") {
		assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
		assert.Equal(t, "u", entries[0].ContextMap()["userID"])
	}
}

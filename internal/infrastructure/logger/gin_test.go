package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// serveLogged runs one request through a router wrapped in GinMiddleware
// and returns the recorded "HTTP Request" entry.
func serveLogged(t *testing.T, obsLevel zapcore.Level, register func(*gin.Engine), req *http.Request) (*httptest.ResponseRecorder, *observer.LoggedEntry) {
	t.Helper()

	core, recorded := observer.New(obsLevel)
	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	for _, entry := range recorded.All() {
		if entry.Message == "HTTP Request" {
			e := entry
			return w, &e
		}
	}
	return w, nil
}

func fieldByKey(entry *observer.LoggedEntry, key string) (zapcore.Field, bool) {
	for _, f := range entry.Context {
		if f.Key == key {
			return f, true
		}
	}
	return zapcore.Field{}, false
}

func TestGinMiddleware_LogLevels(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		obsLevel  zapcore.Level
		wantLevel zapcore.Level
	}{
		{"2xx logs info", http.StatusOK, zapcore.InfoLevel, zapcore.InfoLevel},
		{"4xx logs warn", http.StatusBadRequest, zapcore.WarnLevel, zapcore.WarnLevel},
		{"5xx logs error", http.StatusInternalServerError, zapcore.ErrorLevel, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/books", nil)
			w, entry := serveLogged(t, tt.obsLevel, func(r *gin.Engine) {
				r.GET("/books", func(c *gin.Context) {
					c.JSON(tt.status, gin.H{})
				})
			}, req)

			assert.Equal(t, tt.status, w.Code)
			require.NotNil(t, entry, "HTTP Request entry should exist")
			assert.Equal(t, tt.wantLevel, entry.Level)
		})
	}
}

func TestGinMiddleware_Fields(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/books?search=dune&page=2", nil)
	req.Header.Set("User-Agent", "booknow-test/1.0")

	_, entry := serveLogged(t, zapcore.InfoLevel, func(r *gin.Engine) {
		r.GET("/books", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{})
		})
	}, req)

	require.NotNil(t, entry)
	for _, key := range []string{"status", "latency", "client_ip", "user_agent", "body_size", "method", "path"} {
		_, ok := fieldByKey(entry, key)
		assert.True(t, ok, "expected field %q", key)
	}

	query, ok := fieldByKey(entry, "query")
	require.True(t, ok, "query should be logged when present")
	assert.Contains(t, query.String, "search=dune")
}

func TestGinMiddleware_RequestID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "req-123")
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/books", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books", nil))

	logs := recorded.All()
	require.NotEmpty(t, logs)
	id, ok := fieldByKey(&logs[0], "request_id")
	require.True(t, ok)
	assert.Equal(t, "req-123", id.String)
}

func TestRecovery(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	logs := recorded.All()
	require.NotEmpty(t, logs)
	assert.Equal(t, "Panic recovered", logs[0].Message)
}

func TestGetGinLogger(t *testing.T) {
	t.Run("returns the request-scoped logger", func(t *testing.T) {
		var got *zap.Logger
		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		serveLogged(t, zapcore.InfoLevel, func(r *gin.Engine) {
			r.GET("/books", func(c *gin.Context) {
				got = GetGinLogger(c)
				c.JSON(http.StatusOK, gin.H{})
			})
		}, req)

		assert.NotNil(t, got)
	})

	t.Run("falls back to nop without middleware", func(t *testing.T) {
		var got *zap.Logger
		router := gin.New()
		router.GET("/books", func(c *gin.Context) {
			got = GetGinLogger(c)
			c.JSON(http.StatusOK, gin.H{})
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books", nil))

		require.NotNil(t, got)
		assert.NotPanics(t, func() { got.Info("noop") })
	})
}

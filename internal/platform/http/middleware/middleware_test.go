package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestRequestID_Generated(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	header := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(header)
	assert.NoError(t, err, "generated request id must be a UUID")
	assert.Equal(t, header, seen)
}

func TestRequestID_Propagated(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name     string
		incoming string
		reuse    bool
	}{
		{name: "incoming id is reused", incoming: "abc-123", reuse: true},
		{name: "oversized id is replaced", incoming: strings.Repeat("x", 200), reuse: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, tt.incoming)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if tt.reuse {
				assert.Equal(t, tt.incoming, w.Header().Get(RequestIDHeader))
			} else {
				assert.NotEqual(t, tt.incoming, w.Header().Get(RequestIDHeader))
				assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
			}
		})
	}
}

func TestAccessLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		status        int
		expectedLevel string
	}{
		{name: "success logs info", status: http.StatusOK, expectedLevel: "INFO"},
		{name: "client error logs warn", status: http.StatusNotFound, expectedLevel: "WARN"},
		{name: "server error logs error", status: http.StatusInternalServerError, expectedLevel: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			r := gin.New()
			r.Use(RequestID(), AccessLog(logger))
			r.GET("/users", func(c *gin.Context) { c.Status(tt.status) })

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			req.Header.Set(RequestIDHeader, "req-1")
			r.ServeHTTP(httptest.NewRecorder(), req)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.expectedLevel, entry["level"])
			assert.Equal(t, "http request", entry["msg"])
			assert.Equal(t, "req-1", entry["request_id"])
			assert.Equal(t, "/users", entry["path"])
			assert.Equal(t, float64(tt.status), entry["status"])
		})
	}
}

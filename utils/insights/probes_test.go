package insights

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProbes(t *testing.T) {
	connected := true
	probes := NewProbes(func() bool { return connected }, 0).(*probesImpl)
	handler := probes.server.Handler

	for _, tt := range []struct {
		path      string
		connected bool
		want      int
	}{
		{path: "/healthz", connected: false, want: http.StatusOK},
		{path: "/readyz", connected: true, want: http.StatusOK},
		{path: "/readyz", connected: false, want: http.StatusServiceUnavailable},
		{path: "/metrics", connected: true, want: http.StatusNotFound},
	} {
		connected = tt.connected
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.want, rec.Code, tt.path)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

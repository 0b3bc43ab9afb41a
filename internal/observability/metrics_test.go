package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"calcpro/internal/testutil"
)

func TestPrometheusHandlerExposesBuildInfo(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := testutil.ExecuteRequest(req, PrometheusHandler())

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
	if !strings.Contains(w.Body.String(), "calcpro_build_info{") {
		t.Fatalf("expected calcpro_build_info in output, got:\n%s", w.Body.String())
	}
}

package calculator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"calcpro/internal/config"
	"calcpro/internal/observability"
	"calcpro/internal/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	observability.Logger = zap.NewNop()
	if err := InitMetrics(); err != nil {
		t.Fatalf("initializing calculator metrics: %v", err)
	}
	r := chi.NewRouter()
	RegisterRoutes(r)
	return r
}

// withSettings applies cfg for the duration of the test.
func withSettings(t *testing.T, cfg config.CalculatorConfig) {
	t.Helper()
	Configure(cfg)
	t.Cleanup(func() { Configure(config.Default().Calculator) })
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]string
	testutil.DecodeJSONBody(t, w.Body, &payload)
	return payload["error"]
}

func TestBinaryOperations(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		path string
		a, b float64
		want float64
	}{
		{path: "/calculator/add", a: 0.1, b: 0.2, want: 0.3},
		{path: "/calculator/subtract", a: 1.00011, b: 0.1, want: 0.90011},
		{path: "/calculator/multiply", a: 0.00011, b: 0.1, want: 0.000011},
		{path: "/calculator/divide", a: 10, b: 4, want: 2.5},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			w := testutil.PostJSON(t, router, tc.path, CalcRequest{A: tc.a, B: tc.b})
			testutil.CheckResponseCode(t, http.StatusOK, w.Code)

			var resp CalcResponse
			testutil.DecodeJSONBody(t, w.Body, &resp)
			if resp.Result != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, resp.Result)
			}
			if resp.A != tc.a || resp.B != tc.b {
				t.Fatalf("expected operands echoed, got a=%v b=%v", resp.A, resp.B)
			}
			if !strings.HasSuffix(tc.path, resp.Operation) {
				t.Fatalf("unexpected operation %q for %s", resp.Operation, tc.path)
			}
		})
	}
}

func TestDivideByZero(t *testing.T) {
	router := newTestRouter(t)

	w := testutil.PostJSON(t, router, "/calculator/divide", CalcRequest{A: 5, B: 0})
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

	if msg := decodeError(t, w); msg != "division by zero is not allowed" {
		t.Fatalf("unexpected error message %q", msg)
	}

	scrape := httptest.NewRecorder()
	observability.PrometheusHandler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(scrape.Body.String(), `calcpro_division_by_zero_total{operation="divide"}`) {
		t.Fatal("expected division by zero counter in Prometheus output")
	}
}

func TestInvalidBody(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/calculator/add", "/calculator/accumulate/add", "/calculator/chain"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{not json"))
			w := testutil.ExecuteRequest(req, router)
			testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
			if msg := decodeError(t, w); msg != "invalid request body" {
				t.Fatalf("unexpected error message %q", msg)
			}
		})
	}
}

func TestAccumulate(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		op     string
		values []float64
		want   float64
		name   string
	}{
		{op: "add", values: []float64{0.1, 0.2, 0.3}, want: 0.6, name: "add"},
		{op: "sub", values: []float64{10, 0.1, 0.2}, want: 9.7, name: "subtract"},
		{op: "multiply", values: []float64{1.1, 1.1, 10}, want: 12.1, name: "multiply"},
		{op: "div", values: []float64{100, 4, 5}, want: 5, name: "divide"},
		{op: "add", values: []float64{7}, want: 7, name: "add"},
	}

	for _, tc := range tests {
		t.Run(tc.op, func(t *testing.T) {
			w := testutil.PostJSON(t, router, "/calculator/accumulate/"+tc.op, AccumulateRequest{Values: tc.values})
			testutil.CheckResponseCode(t, http.StatusOK, w.Code)

			var resp AccumulateResponse
			testutil.DecodeJSONBody(t, w.Body, &resp)
			if resp.Result != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, resp.Result)
			}
			if resp.Operation != tc.name {
				t.Fatalf("expected operation %q, got %q", tc.name, resp.Operation)
			}
			if len(resp.Values) != len(tc.values) {
				t.Fatalf("expected %d values echoed, got %d", len(tc.values), len(resp.Values))
			}
		})
	}
}

func TestAccumulateRejects(t *testing.T) {
	router := newTestRouter(t)
	withSettings(t, config.CalculatorConfig{DefaultPrecision: config.NoPrecision, MaxOperands: 3})

	tests := []struct {
		name    string
		path    string
		values  []float64
		wantMsg string
	}{
		{name: "unknown operator", path: "/calculator/accumulate/pow", values: []float64{1, 2}, wantMsg: "unknown operator"},
		{name: "empty values", path: "/calculator/accumulate/add", values: nil, wantMsg: "no operands to accumulate"},
		{name: "too many values", path: "/calculator/accumulate/add", values: []float64{1, 2, 3, 4}, wantMsg: "too many values"},
		{name: "division by zero", path: "/calculator/accumulate/divide", values: []float64{1, 0}, wantMsg: "division by zero is not allowed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := testutil.PostJSON(t, router, tc.path, AccumulateRequest{Values: tc.values})
			testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
			if msg := decodeError(t, w); !strings.Contains(msg, tc.wantMsg) {
				t.Fatalf("expected error containing %q, got %q", tc.wantMsg, msg)
			}
		})
	}
}

func intPtr(v int) *int { return &v }

func TestChain(t *testing.T) {
	router := newTestRouter(t)

	t.Run("explicit precision", func(t *testing.T) {
		w := testutil.PostJSON(t, router, "/calculator/chain", ChainRequest{
			Precision: intPtr(6),
			Steps:     []ChainStep{{Op: "divide", Values: []float64{10000, 0.00011}}},
		})
		testutil.CheckResponseCode(t, http.StatusOK, w.Code)

		var resp ChainResponse
		testutil.DecodeJSONBody(t, w.Body, &resp)
		if resp.Result != 90909090.909091 {
			t.Fatalf("expected 90909090.909091, got %v", resp.Result)
		}
		if resp.Precision == nil || *resp.Precision != 6 {
			t.Fatalf("expected precision 6 in response, got %v", resp.Precision)
		}
	})

	t.Run("first step starts fresh", func(t *testing.T) {
		w := testutil.PostJSON(t, router, "/calculator/chain", ChainRequest{
			Steps: []ChainStep{
				{Op: "subtract", Values: []float64{5, 2}},
				{Op: "*", Values: []float64{4}},
				{Op: "add", Values: []float64{0.1, 0.2}},
			},
		})
		testutil.CheckResponseCode(t, http.StatusOK, w.Code)

		var resp ChainResponse
		testutil.DecodeJSONBody(t, w.Body, &resp)
		if resp.Result != 12.3 {
			t.Fatalf("expected 12.3, got %v", resp.Result)
		}
		if resp.Precision != nil {
			t.Fatalf("expected no precision, got %d", *resp.Precision)
		}
		if len(resp.Steps) != 3 {
			t.Fatalf("expected 3 step results, got %d", len(resp.Steps))
		}
		want := []ChainResult{
			{Op: "subtract", Result: 3},
			{Op: "multiply", Result: 12},
			{Op: "add", Result: 12.3},
		}
		for i, step := range resp.Steps {
			if step.Op != want[i].Op || step.Result != want[i].Result {
				t.Fatalf("step %d: expected %s=%v, got %s=%v", i, want[i].Op, want[i].Result, step.Op, step.Result)
			}
		}
	})

	t.Run("default precision from settings", func(t *testing.T) {
		withSettings(t, config.CalculatorConfig{DefaultPrecision: 2, MaxOperands: 1000})

		w := testutil.PostJSON(t, router, "/calculator/chain", ChainRequest{
			Steps: []ChainStep{{Op: "add", Values: []float64{0.125}}},
		})
		testutil.CheckResponseCode(t, http.StatusOK, w.Code)

		var resp ChainResponse
		testutil.DecodeJSONBody(t, w.Body, &resp)
		if resp.Result != 0.13 {
			t.Fatalf("expected 0.13, got %v", resp.Result)
		}
	})

	t.Run("negative precision overrides default", func(t *testing.T) {
		withSettings(t, config.CalculatorConfig{DefaultPrecision: 2, MaxOperands: 1000})

		w := testutil.PostJSON(t, router, "/calculator/chain", ChainRequest{
			Precision: intPtr(-1),
			Steps:     []ChainStep{{Op: "add", Values: []float64{0.125}}},
		})
		testutil.CheckResponseCode(t, http.StatusOK, w.Code)

		var resp ChainResponse
		testutil.DecodeJSONBody(t, w.Body, &resp)
		if resp.Result != 0.125 {
			t.Fatalf("expected 0.125, got %v", resp.Result)
		}
	})
}

func TestChainRejects(t *testing.T) {
	router := newTestRouter(t)
	withSettings(t, config.CalculatorConfig{DefaultPrecision: config.NoPrecision, MaxOperands: 4})

	tests := []struct {
		name    string
		req     ChainRequest
		wantMsg string
	}{
		{name: "no steps", req: ChainRequest{}, wantMsg: "no steps provided"},
		{
			name:    "division by zero",
			req:     ChainRequest{Steps: []ChainStep{{Op: "add", Values: []float64{1}}, {Op: "divide", Values: []float64{0}}}},
			wantMsg: "step 1: division by zero is not allowed",
		},
		{
			name:    "unknown operator",
			req:     ChainRequest{Steps: []ChainStep{{Op: "pow", Values: []float64{2}}}},
			wantMsg: "step 0: unknown operator",
		},
		{
			name:    "fresh subtract without operands",
			req:     ChainRequest{Steps: []ChainStep{{Op: "subtract"}}},
			wantMsg: "step 0: no operands to accumulate",
		},
		{
			name:    "too many values",
			req:     ChainRequest{Steps: []ChainStep{{Op: "add", Values: []float64{1, 2, 3}}, {Op: "add", Values: []float64{4, 5}}}},
			wantMsg: "too many values",
		},
		{
			name:    "precision too large",
			req:     ChainRequest{Precision: intPtr(101), Steps: []ChainStep{{Op: "add", Values: []float64{1}}}},
			wantMsg: "precision must not exceed 100",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := testutil.PostJSON(t, router, "/calculator/chain", tc.req)
			testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
			if msg := decodeError(t, w); !strings.HasPrefix(msg, tc.wantMsg) {
				t.Fatalf("expected error starting with %q, got %q", tc.wantMsg, msg)
			}
		})
	}
}

func TestOperationIsLogged(t *testing.T) {
	router := newTestRouter(t)

	core, recorded := observer.New(zap.InfoLevel)
	observability.Logger = zap.New(core)
	t.Cleanup(func() { observability.Logger = zap.NewNop() })

	w := testutil.PostJSON(t, router, "/calculator/multiply", CalcRequest{A: 0.00011, B: 0.1})
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	entries := recorded.FilterMessage("calculator operation completed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one completion log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["operation"] != "multiply" {
		t.Fatalf("expected operation=multiply, got %v", fields["operation"])
	}
	if fields["result"] != 0.000011 {
		t.Fatalf("expected result=0.000011, got %v", fields["result"])
	}
}

func TestErrorIsLoggedWithReason(t *testing.T) {
	router := newTestRouter(t)

	core, recorded := observer.New(zap.ErrorLevel)
	observability.Logger = zap.New(core)
	t.Cleanup(func() { observability.Logger = zap.NewNop() })

	w := testutil.PostJSON(t, router, "/calculator/divide", CalcRequest{A: 1, B: 0})
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("expected one error log, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["reason"]; got != "division_by_zero" {
		t.Fatalf("expected reason division_by_zero, got %v", got)
	}
}

func TestOverflowIsRejected(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		path string
		body any
		want string
	}{
		{name: "multiply", path: "/calculator/multiply", body: CalcRequest{A: 1e308, B: 10}, want: "result overflows float64"},
		{name: "accumulate", path: "/calculator/accumulate/add", body: AccumulateRequest{Values: []float64{1.7e308, 1.7e308}}, want: "result overflows float64"},
		{
			name: "chain",
			path: "/calculator/chain",
			body: ChainRequest{Steps: []ChainStep{{Op: "add", Values: []float64{1e308}}, {Op: "multiply", Values: []float64{10}}}},
			want: "step 1: result overflows float64",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := testutil.PostJSON(t, router, tc.path, tc.body)
			testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
			if msg := decodeError(t, w); msg != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, msg)
			}
		})
	}
}

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveResult(t *testing.T) {
	m := New()

	m.ObserveResult(ResultOK)
	m.ObserveResult(ResultOK)
	m.ObserveResult(ResultMalformed)

	if got := testutil.ToFloat64(m.Payloads.WithLabelValues(ResultOK)); got != 2 {
		t.Fatalf("expected 2 ok payloads, got %v", got)
	}
	if got := testutil.ToFloat64(m.Payloads.WithLabelValues(ResultMalformed)); got != 1 {
		t.Fatalf("expected 1 malformed payload, got %v", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveResult(ResultError)
	m.PayloadSize.Observe(128)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, res.StatusCode)
	}
	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	body := string(data)
	for _, name := range []string{
		`webhook_receiver_payloads_total{result="error"} 1`,
		"webhook_receiver_payload_size_bytes_count 1",
		"go_goroutines",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("expected metrics output to contain %q", name)
		}
	}
}

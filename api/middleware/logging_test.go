package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoggingRecorderForwardsFlush(t *testing.T) {
	handler := Logging(nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		} else {
			t.Fatal("wrapped writer lost the flusher")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/menu", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202 but got %d", rec.Code)
	}
	if !rec.Flushed {
		t.Fatal("flush did not reach the underlying writer")
	}
}

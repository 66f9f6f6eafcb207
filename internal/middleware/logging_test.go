package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

// executeLoggedRequest はロギングミドルウェア越しにリクエストを実行し、
// 出力されたログエントリをデコードして返すヘルパー。
func executeLoggedRequest(t *testing.T, handler http.Handler, withRequestID bool) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	chain := NewLoggingMiddleware(logger)(handler)
	if withRequestID {
		chain = NewRequestIDMiddleware()(chain)
	}

	req := httptest.NewRequest(http.MethodGet, "/activities", nil)
	w := httptest.NewRecorder()
	chain.ServeHTTP(w, req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v (output: %s)", err, buf.String())
	}
	return entry
}

// TestLoggingMiddleware_LogsRequestFields はリクエストログの各フィールドを検証する。
func TestLoggingMiddleware_LogsRequestFields(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	entry := executeLoggedRequest(t, handler, false)

	if entry["msg"] != "http_request" {
		t.Errorf("msg = %v, want %q", entry["msg"], "http_request")
	}
	if entry["method"] != http.MethodGet {
		t.Errorf("method = %v, want %q", entry["method"], http.MethodGet)
	}
	if entry["path"] != "/activities" {
		t.Errorf("path = %v, want %q", entry["path"], "/activities")
	}
	if entry["status"] != float64(http.StatusOK) {
		t.Errorf("status = %v, want %d", entry["status"], http.StatusOK)
	}
	if _, ok := entry["duration_ms"]; !ok {
		t.Error("expected duration_ms field in log entry")
	}
}

// TestLoggingMiddleware_IncludesRequestID はリクエストID付きのログ出力を検証する。
func TestLoggingMiddleware_IncludesRequestID(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	entry := executeLoggedRequest(t, handler, true)

	if id, ok := entry["request_id"].(string); !ok || id == "" {
		t.Errorf("expected non-empty request_id in log entry, got %v", entry["request_id"])
	}
}

// TestLoggingMiddleware_LevelByStatus はステータスコードに応じたログレベルを検証する。
func TestLoggingMiddleware_LevelByStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "200はINFO", status: http.StatusOK, wantLevel: "INFO"},
		{name: "404はWARN", status: http.StatusNotFound, wantLevel: "WARN"},
		{name: "500はERROR", status: http.StatusInternalServerError, wantLevel: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			entry := executeLoggedRequest(t, handler, false)

			if entry["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %q", entry["level"], tt.wantLevel)
			}
		})
	}
}

// TestLoggingMiddleware_ImplicitStatus はWriteHeader未呼び出し時に200が記録されることを検証する。
func TestLoggingMiddleware_ImplicitStatus(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("body without explicit status"))
	})

	entry := executeLoggedRequest(t, handler, false)

	if entry["status"] != float64(http.StatusOK) {
		t.Errorf("status = %v, want %d", entry["status"], http.StatusOK)
	}
}

package backend

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zhubert/tripchat/internal/errors"
	"github.com/zhubert/tripchat/internal/logger"
)

func TestMain(m *testing.M) {
	dir, _ := os.MkdirTemp("", "tripchat-backend-test-*")
	logger.Reset()
	logger.Init(filepath.Join(dir, "test.log"))

	code := m.Run()

	logger.Reset()
	os.RemoveAll(dir)
	os.Exit(code)
}

func newTestClient(url string) *Client {
	c := NewClient(url, "test")
	c.SetTimeout(5 * time.Second)
	return c
}

func TestNewClient(t *testing.T) {
	client := NewClient("", "1.2.3")

	if client.BaseURL != DefaultBaseURL {
		t.Errorf("Expected base URL %s, got %s", DefaultBaseURL, client.BaseURL)
	}
	if client.HTTPClient.Timeout != DefaultTimeout {
		t.Errorf("Expected timeout %v, got %v", DefaultTimeout, client.HTTPClient.Timeout)
	}
	if client.UserAgent != "tripchat/1.2.3" {
		t.Errorf("Expected user agent tripchat/1.2.3, got %s", client.UserAgent)
	}

	trimmed := NewClient("http://example.com/", "dev")
	if trimmed.BaseURL != "http://example.com" {
		t.Errorf("trailing slash should be trimmed, got %s", trimmed.BaseURL)
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantReady bool
		wantErr   bool
		wantKind  errors.Kind
	}{
		{name: "ready", status: http.StatusOK, body: `{"api_ready": true, "version": "1"}`, wantReady: true},
		{name: "not ready", status: http.StatusOK, body: `{"api_ready": false}`, wantReady: false},
		{name: "field missing", status: http.StatusOK, body: `{}`, wantReady: false},
		{name: "server error", status: http.StatusServiceUnavailable, body: `{"api_ready": true}`, wantErr: true, wantKind: errors.KindProtocol},
		{name: "malformed", status: http.StatusOK, body: `not json`, wantErr: true, wantKind: errors.KindDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("Expected GET, got %s", r.Method)
				}
				if r.URL.Path != "/health" {
					t.Errorf("Expected /health, got %s", r.URL.Path)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			ready, err := newTestClient(server.URL).Health(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Health() error = %v, wantErr %v", err, tt.wantErr)
			}
			if ready != tt.wantReady {
				t.Errorf("Health() ready = %v, want %v", ready, tt.wantReady)
			}
			if tt.wantErr && !errors.Is(err, tt.wantKind) {
				t.Errorf("expected kind %v, got %v", tt.wantKind, errors.GetKind(err))
			}
		})
	}
}

func TestHealth_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	ready, err := newTestClient(url).Health(context.Background())
	if ready {
		t.Error("unreachable service cannot be ready")
	}
	if !errors.Is(err, errors.KindNetwork) {
		t.Errorf("expected KindNetwork, got %v", err)
	}
}

func TestHealth_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := newTestClient(server.URL)
	client.HealthTimeout = 50 * time.Millisecond

	_, err := client.Health(context.Background())
	if !errors.Is(err, errors.KindTimeout) {
		t.Errorf("expected KindTimeout, got %v", err)
	}
}

func TestChat_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST method, got %s", r.Method)
		}
		if r.URL.Path != "/chat" {
			t.Errorf("Expected /chat, got %s", r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Expected Accept application/json, got %s", r.Header.Get("Accept"))
		}
		if r.Header.Get("User-Agent") != "tripchat/test" {
			t.Errorf("Expected User-Agent tripchat/test, got %s", r.Header.Get("User-Agent"))
		}

		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req["message"] != "Best time to visit Kyoto?" {
			t.Errorf("unexpected message %q", req["message"])
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"response": "Late March for the cherry blossoms."})
	}))
	defer server.Close()

	reply, err := newTestClient(server.URL).Chat(context.Background(), "Best time to visit Kyoto?")
	if err != nil {
		t.Fatalf("Chat() failed: %v", err)
	}
	if reply != "Late March for the cherry blossoms." {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestChat_EmptyResponseIsValid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": ""}`))
	}))
	defer server.Close()

	reply, err := newTestClient(server.URL).Chat(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Chat() failed: %v", err)
	}
	if reply != "" {
		t.Errorf("expected empty reply, got %q", reply)
	}
}

func TestChat_ErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{name: "detail string", status: http.StatusInternalServerError, body: `{"detail": "Model overloaded"}`, wantDetail: "Model overloaded"},
		{name: "no body", status: http.StatusBadGateway, body: ``, wantDetail: ""},
		{name: "non json", status: http.StatusBadRequest, body: `<html>bad</html>`, wantDetail: ""},
		{name: "structured detail", status: http.StatusUnprocessableEntity, body: `{"detail": [{"loc": ["body"], "msg": "field required"}]}`, wantDetail: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).Chat(context.Background(), "hi")

			var apiErr *APIError
			if !stderrors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %T: %v", err, err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if apiErr.Detail != tt.wantDetail {
				t.Errorf("Detail = %q, want %q", apiErr.Detail, tt.wantDetail)
			}
		})
	}
}

func TestChat_MalformedResponse(t *testing.T) {
	bodies := []string{`not json`, `{}`, `{"response": 42}`, `{"answer": "wrong key"}`}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).Chat(context.Background(), "hi")
			if !errors.Is(err, errors.KindDecode) {
				t.Errorf("expected KindDecode, got %v", err)
			}
		})
	}
}

func TestChat_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(url).Chat(context.Background(), "hi")
	if !errors.Is(err, errors.KindNetwork) {
		t.Errorf("expected KindNetwork, got %v", err)
	}
}

func TestAPIError_Error(t *testing.T) {
	withDetail := &APIError{StatusCode: 500, Detail: "boom"}
	if got := withDetail.Error(); got != "chat service returned HTTP 500: boom" {
		t.Errorf("Error() = %q", got)
	}
	bare := &APIError{StatusCode: 404}
	if got := bare.Error(); got != "chat service returned HTTP 404" {
		t.Errorf("Error() = %q", got)
	}
}

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zhubert/tripchat/internal/backend"
)

func TestAsk(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		status  int
		body    string
		wantOut string
		wantErr string
	}{
		{
			name:    "reply",
			text:    "  best time to visit Kyoto?  ",
			status:  http.StatusOK,
			body:    `{"response": "Late autumn."}`,
			wantOut: "Late autumn.\n",
		},
		{
			name:    "server detail",
			text:    "hi",
			status:  http.StatusTooManyRequests,
			body:    `{"detail": "Rate limit exceeded"}`,
			wantErr: "Rate limit exceeded",
		},
		{
			name:    "malformed",
			text:    "hi",
			status:  http.StatusOK,
			body:    `[]`,
			wantErr: "Invalid response from the chat service",
		},
		{
			name:    "blank",
			text:    "   ",
			wantErr: "message is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var received string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var req struct {
					Message string `json:"message"`
				}
				json.NewDecoder(r.Body).Decode(&req)
				received = req.Message
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			var out bytes.Buffer
			err := ask(context.Background(), &out, backend.NewClient(server.URL, "test"), tt.text)

			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Errorf("ask() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ask() error = %v", err)
			}
			if out.String() != tt.wantOut {
				t.Errorf("output = %q, want %q", out.String(), tt.wantOut)
			}
			if received != "best time to visit Kyoto?" {
				t.Errorf("server received %q", received)
			}
		})
	}
}

package gemini

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestClient_Complete(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		responseBody string
		wantText     string
		wantErr      bool
	}{
		{
			name:         "Success",
			status:       http.StatusOK,
			responseBody: `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"tags\":"},{"text":"[\"shoegaze\"],\"recommendations\":[]}"}]},"finishReason":"STOP"}]}`,
			wantText:     `{"tags":["shoegaze"],"recommendations":[]}`,
		},
		{
			name:         "API error payload",
			status:       http.StatusBadRequest,
			responseBody: `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`,
			wantErr:      true,
		},
		{
			name:         "Server error without body",
			status:       http.StatusInternalServerError,
			responseBody: ``,
			wantErr:      true,
		},
		{
			name:         "No candidates",
			status:       http.StatusOK,
			responseBody: `{"candidates":[]}`,
			wantErr:      true,
		},
		{
			name:         "Blank candidate text",
			status:       http.StatusOK,
			responseBody: `{"candidates":[{"content":{"parts":[{"text":"  "}]}}]}`,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotRequest generateRequest
			var gotKey, gotPath string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotKey = r.Header.Get("x-goog-api-key")
				if r.Method != http.MethodPost {
					w.WriteHeader(http.StatusMethodNotAllowed)
					return
				}
				if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.responseBody))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "secret", "models/gemini-2.5-flash", 5*time.Second)
			text, err := client.Complete(context.Background(), "recommend me something")

			if (err != nil) != tt.wantErr {
				t.Fatalf("expected err=%v, got %v", tt.wantErr, err)
			}
			if gotPath != "/v1beta/models/gemini-2.5-flash:generateContent" {
				t.Fatalf("unexpected path %q", gotPath)
			}
			if gotKey != "secret" {
				t.Fatalf("expected api key header, got %q", gotKey)
			}
			if len(gotRequest.Contents) != 1 || len(gotRequest.Contents[0].Parts) != 1 {
				t.Fatalf("expected a single user part, got %+v", gotRequest.Contents)
			}
			if gotRequest.Contents[0].Parts[0].Text != "recommend me something" {
				t.Fatalf("prompt mismatch: %q", gotRequest.Contents[0].Parts[0].Text)
			}
			if tt.wantErr {
				return
			}
			if text != tt.wantText {
				t.Fatalf("text: got %q, want %q", text, tt.wantText)
			}
		})
	}
}

func TestClient_Complete_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret", "", 50*time.Millisecond)
	if _, err := client.Complete(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected timeout error")
	}
}

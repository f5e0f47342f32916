package server

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/saint0x/ggreview/pkg/log"
	"github.com/saint0x/ggreview/pkg/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "s3cret"

// mockRunner implements Runner
type mockRunner struct {
	calls chan review.PullRequestContext
	err   error
}

func (m *mockRunner) Run(_ context.Context, prc review.PullRequestContext) (*review.Result, error) {
	m.calls <- prc
	if m.err != nil {
		return nil, m.err
	}
	return &review.Result{Posted: true}, nil
}

func setupTestServer(t *testing.T, queueSize int) (*Server, *mockRunner) {
	t.Helper()
	runner := &mockRunner{calls: make(chan review.PullRequestContext, 8)}
	s, err := New(log.New(true), runner, Options{WebhookSecret: testSecret, QueueSize: queueSize})
	require.NoError(t, err)
	return s, runner
}

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func webhookRequest(t *testing.T, event string, payload any, signed bool) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", event)
	if signed {
		req.Header.Set("X-Hub-Signature-256", sign(body))
	}
	return req
}

func pullRequestPayload(action string) map[string]any {
	return map[string]any{
		"action": action,
		"number": 42,
		"repository": map[string]any{
			"name":  "widgets",
			"owner": map[string]any{"login": "octo"},
		},
	}
}

func TestNew(t *testing.T) {
	runner := &mockRunner{}

	_, err := New(nil, runner, Options{WebhookSecret: testSecret})
	assert.Error(t, err)

	_, err = New(log.New(false), nil, Options{WebhookSecret: testSecret})
	assert.Error(t, err)

	_, err = New(log.New(false), runner, Options{})
	assert.Error(t, err)

	s, err := New(log.New(false), runner, Options{WebhookSecret: testSecret})
	require.NoError(t, err)
	assert.Equal(t, "8080", s.port)
	assert.Equal(t, defaultQueueSize, cap(s.queue))
}

func TestWebhookHandling(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		event          string
		payload        any
		signed         bool
		expectedStatus int
		queued         bool
	}{
		{
			name:           "opened pull request",
			method:         http.MethodPost,
			event:          "pull_request",
			payload:        pullRequestPayload("opened"),
			signed:         true,
			expectedStatus: http.StatusAccepted,
			queued:         true,
		},
		{
			name:           "synchronized pull request",
			method:         http.MethodPost,
			event:          "pull_request",
			payload:        pullRequestPayload("synchronize"),
			signed:         true,
			expectedStatus: http.StatusAccepted,
			queued:         true,
		},
		{
			name:           "closed pull request is ignored",
			method:         http.MethodPost,
			event:          "pull_request",
			payload:        pullRequestPayload("closed"),
			signed:         true,
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "other event is ignored",
			method:         http.MethodPost,
			event:          "push",
			payload:        map[string]any{"ref": "refs/heads/main"},
			signed:         true,
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "bad signature",
			method:         http.MethodPost,
			event:          "pull_request",
			payload:        pullRequestPayload("opened"),
			signed:         false,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid method",
			method:         http.MethodGet,
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := setupTestServer(t, 4)

			var req *http.Request
			if tt.method == http.MethodPost {
				req = webhookRequest(t, tt.event, tt.payload, tt.signed)
			} else {
				req = httptest.NewRequest(tt.method, "/webhook", nil)
			}
			w := httptest.NewRecorder()

			s.Handler().ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.queued {
				require.Len(t, s.queue, 1)
				assert.Equal(t, review.PullRequestContext{Owner: "octo", Repo: "widgets", Number: 42}, <-s.queue)
			} else {
				assert.Empty(t, s.queue)
			}
		})
	}
}

func TestWebhookQueueFull(t *testing.T) {
	s, _ := setupTestServer(t, 1)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, webhookRequest(t, "pull_request", pullRequestPayload("opened"), true))
	assert.Equal(t, http.StatusAccepted, w.Code)

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, webhookRequest(t, "pull_request", pullRequestPayload("opened"), true))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestWorkerRunsQueuedReviews(t *testing.T) {
	s, runner := setupTestServer(t, 4)
	runner.err = assert.AnError

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.work(ctx)

	s.queue <- review.PullRequestContext{Owner: "octo", Repo: "widgets", Number: 1}
	s.queue <- review.PullRequestContext{Owner: "octo", Repo: "widgets", Number: 2}

	for _, want := range []int{1, 2} {
		select {
		case prc := <-runner.calls:
			assert.Equal(t, want, prc.Number)
		case <-time.After(2 * time.Second):
			t.Fatalf("review %d was not run", want)
		}
	}
}

func TestHealth(t *testing.T) {
	s, _ := setupTestServer(t, 1)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

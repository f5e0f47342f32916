package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/saint0x/ggreview/pkg/log"
	"github.com/saint0x/ggreview/pkg/review"
)

const defaultQueueSize = 32

// Runner reviews a single pull request
type Runner interface {
	Run(ctx context.Context, prc review.PullRequestContext) (*review.Result, error)
}

// Options configures a Server
type Options struct {
	Port          string
	WebhookSecret string
	QueueSize     int
}

// Server receives pull_request webhooks and reviews them one at a time
type Server struct {
	logger *log.Logger
	runner Runner
	secret []byte
	port   string
	queue  chan review.PullRequestContext
	srv    *http.Server
	mu     sync.Mutex
}

// reviewActions are the pull_request actions that trigger a review
var reviewActions = map[string]bool{
	"opened":      true,
	"synchronize": true,
	"reopened":    true,
}

// New creates a new server instance
func New(logger *log.Logger, runner Runner, opts Options) (*Server, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if runner == nil {
		return nil, fmt.Errorf("review runner is required")
	}
	if opts.WebhookSecret == "" {
		return nil, fmt.Errorf("webhook secret is required")
	}
	if opts.Port == "" {
		opts.Port = "8080"
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}

	return &Server{
		logger: logger,
		runner: runner,
		secret: []byte(opts.WebhookSecret),
		port:   opts.Port,
		queue:  make(chan review.PullRequestContext, opts.QueueSize),
	}, nil
}

// Handler returns the HTTP routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhook", s.handleWebhook)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start serves until ctx is cancelled, then shuts down
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	listener, err := net.Listen("tcp", ":"+s.port)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on port %s: %w", s.port, err)
	}
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.srv
	s.mu.Unlock()

	go s.work(ctx)

	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Server error: %v", err)
		}
	}()

	s.logger.Success("Server is running on port %s", s.port)
	s.logger.Debug("Webhook URL: http://localhost:%s/webhook", s.port)

	<-ctx.Done()
	return s.Stop()
}

// Stop stops the server
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(ctx); err != nil {
			s.logger.Error("Failed to stop server: %v", err)
			return fmt.Errorf("failed to stop server: %w", err)
		}
		s.srv = nil
		s.logger.Success("Server stopped")
	}

	return nil
}

// work drains the queue with a single goroutine so reviews never overlap
func (s *Server) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case prc := <-s.queue:
			s.logger.PR("Reviewing %s/%s#%d", prc.Owner, prc.Repo, prc.Number)
			result, err := s.runner.Run(ctx, prc)
			if err != nil {
				s.logger.Error("Review of %s/%s#%d failed: %v", prc.Owner, prc.Repo, prc.Number, err)
				continue
			}
			if result.Skipped {
				s.logger.Info("Nothing to review in %s/%s#%d", prc.Owner, prc.Repo, prc.Number)
			}
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.logger.Warning("Invalid method %s from %s", r.Method, r.RemoteAddr)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	payload, err := github.ValidatePayload(r, s.secret)
	if err != nil {
		s.logger.Warning("Rejected webhook from %s: %v", r.RemoteAddr, err)
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	event, err := github.ParseWebHook(github.WebHookType(r), payload)
	if err != nil {
		s.logger.Error("Failed to parse webhook: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	prEvent, ok := event.(*github.PullRequestEvent)
	if !ok || !reviewActions[prEvent.GetAction()] {
		s.logger.Debug("Ignoring %s event", github.WebHookType(r))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	prc := review.PullRequestContext{
		Owner:  prEvent.GetRepo().GetOwner().GetLogin(),
		Repo:   prEvent.GetRepo().GetName(),
		Number: prEvent.GetNumber(),
	}

	select {
	case s.queue <- prc:
		s.logger.Debug("Queued %s/%s#%d", prc.Owner, prc.Repo, prc.Number)
		w.WriteHeader(http.StatusAccepted)
	default:
		s.logger.Warning("Review queue full, dropping %s/%s#%d", prc.Owner, prc.Repo, prc.Number)
		http.Error(w, "review queue full", http.StatusServiceUnavailable)
	}
}

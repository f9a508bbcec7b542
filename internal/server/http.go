package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/expo-parsely/engagement-tracker/pkg/common"
	"github.com/expo-parsely/engagement-tracker/pkg/signal"
	"github.com/expo-parsely/engagement-tracker/pkg/status"
)

const (
	maxBatchBytes   = 1 << 20
	wsWriteWait     = 10 * time.Second
	wsCloseWait     = 2 * time.Second
	wsReadLimit     = 512
	wsSubscribeSize = 8
)

// EventDispatcher applies event batches.
type EventDispatcher interface {
	DispatchBatch(ctx context.Context, events []signal.Event) (int, []signal.Result)
}

// StatusSource provides tracker status views.
type StatusSource interface {
	Poll(ctx context.Context) status.View
	Latest() (status.View, bool)
}

// StatusFeed streams polled views.
type StatusFeed interface {
	Subscribe(buffer int) (<-chan status.View, func())
}

// HealthReporter summarizes dependency health.
type HealthReporter interface {
	Report(ctx context.Context) status.Health
}

// HTTPDependencies holds the components behind the HTTP surface.
type HTTPDependencies struct {
	Dispatcher EventDispatcher
	Status     StatusSource
	Feed       StatusFeed
	Health     HealthReporter
}

// Batch is the body of POST /events.
type Batch struct {
	Events []signal.Event `json:"events"`
}

// BatchResponse reports how a batch was applied.
type BatchResponse struct {
	Applied int             `json:"applied"`
	Results []signal.Result `json:"results"`
}

// HTTPServer serves event ingest, status reads and the status stream.
type HTTPServer struct {
	server   *http.Server
	port     int
	deps     HTTPDependencies
	upgrader websocket.Upgrader

	mu      sync.Mutex
	closed  bool
	done    chan struct{}
	streams sync.WaitGroup
}

// NewHTTPServer creates a new HTTP server instance.
func NewHTTPServer(port int, deps HTTPDependencies) *HTTPServer {
	return &HTTPServer{
		port: port,
		deps: deps,
		upgrader: websocket.Upgrader{
			// The overlay connects from device webviews with arbitrary origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		done: make(chan struct{}),
	}
}

// Setup configures routes.
func (s *HTTPServer) Setup() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return nil
}

func (s *HTTPServer) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/events", s.handleEvents)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/status/ws", s.handleStatusStream)
	return mux
}

// Start begins serving HTTP requests.
func (s *HTTPServer) Start(ctx context.Context) error {
	go func() {
		logrus.Infof("HTTP server listening on port %d", s.port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()
	return nil
}

// Shutdown closes open status streams and stops the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down HTTP server...")
	s.closeStreams()

	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return err
		}
	}
	logrus.Info("HTTP server stopped")
	return nil
}

// closeStreams asks every status stream to send a close frame and waits for
// them to return. Hijacked connections are not tracked by http.Server.
func (s *HTTPServer) closeStreams() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.done)
	}
	s.mu.Unlock()
	s.streams.Wait()
}

func (s *HTTPServer) trackStream() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.streams.Add(1)
	return true
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	report := status.Health{Status: status.HealthOK, Checks: map[string]string{}}
	if s.deps.Health != nil {
		report = s.deps.Health.Report(r.Context())
	}

	code := http.StatusOK
	if report.Status != status.HealthOK {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, report)
}

func (s *HTTPServer) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	scope := common.StartScope(r.Context(), "http.events")
	defer scope.Finish()

	var batch Batch
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBatchBytes)).Decode(&batch); err != nil {
		scope.TraceError(err)
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	if len(batch.Events) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	applied, results := s.deps.Dispatcher.DispatchBatch(scope.Ctx, batch.Events)
	scope.SetAttributes("events", len(batch.Events))
	scope.SetAttributes("applied", applied)
	if applied < len(batch.Events) {
		scope.Log.Warnf("applied %d of %d events", applied, len(batch.Events))
	}

	code := http.StatusOK
	if applied == 0 {
		code = http.StatusUnprocessableEntity
	}
	writeJSON(w, code, BatchResponse{Applied: applied, Results: results})
}

func (s *HTTPServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Status.Poll(r.Context()))
}

func (s *HTTPServer) handleStatusStream(w http.ResponseWriter, r *http.Request) {
	// Subscribe before the handshake completes so no view is missed.
	views, cancel := s.deps.Feed.Subscribe(wsSubscribeSize)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		cancel()
		logrus.Warnf("status stream upgrade failed: %v", err)
		return
	}

	if !s.trackStream() {
		cancel()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutdown"),
			time.Now().Add(wsCloseWait))
		conn.Close()
		return
	}
	defer s.streams.Done()
	defer cancel()
	defer conn.Close()

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		conn.SetReadLimit(wsReadLimit)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	write := func(view status.View) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(view)
	}

	if view, ok := s.deps.Status.Latest(); ok {
		if err := write(view); err != nil {
			return
		}
	}

	for {
		select {
		case <-s.done:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutdown"),
				time.Now().Add(wsCloseWait))
			return
		case <-gone:
			return
		case view, ok := <-views:
			if !ok {
				return
			}
			if err := write(view); err != nil {
				logrus.Debugf("status stream closed: %v", err)
				return
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Warnf("failed to write response: %v", err)
	}
}

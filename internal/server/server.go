// Package server exposes the prediction service over HTTP: an interactive
// HTML form, a JSON API, prediction history, and a WebSocket feed that
// streams each successful prediction to connected clients.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"laptop-pricer/internal/artifacts"
	"laptop-pricer/internal/features"
	"laptop-pricer/internal/metrics"
	"laptop-pricer/internal/ml"
	"laptop-pricer/internal/storage"
)

// PredictionEvent is broadcast to WebSocket clients after each successful
// prediction.
type PredictionEvent struct {
	Timestamp    time.Time `json:"timestamp"`
	Company      string    `json:"company"`
	TypeName     string    `json:"type_name"`
	Price        float64   `json:"price"`
	ModelVersion string    `json:"model_version"`
}

// Server wires the artifact bundle, predictor and history store to the
// HTTP surface. The bundle and predictor are read-only after construction,
// so request handling needs no locking beyond the WebSocket client set.
type Server struct {
	bundle    *artifacts.Bundle
	predictor *ml.Predictor
	store     *storage.Store // nil disables history
	metrics   *metrics.Wrapper

	server    *http.Server
	upgrader  websocket.Upgrader
	clients   map[*websocket.Conn]bool
	clientsMu sync.RWMutex
	broadcast chan PredictionEvent
	stop      chan struct{}
	running   bool
	mu        sync.Mutex
}

// New creates the HTTP server on the given port. store may be nil.
func New(bundle *artifacts.Bundle, predictor *ml.Predictor, store *storage.Store, mw *metrics.Wrapper, port int, timeout time.Duration) *Server {
	s := &Server{
		bundle:    bundle,
		predictor: predictor,
		store:     store,
		metrics:   mw,
		upgrader:  websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan PredictionEvent, 64),
		stop:      make(chan struct{}),
	}

	r := mux.NewRouter()
	r.HandleFunc("/", s.handleForm).Methods("GET")
	r.HandleFunc("/predict", s.handleFormPredict).Methods("POST")
	r.HandleFunc("/api/predict", s.handlePredictAPI).Methods("POST")
	r.HandleFunc("/api/options", s.handleOptions).Methods("GET")
	r.HandleFunc("/api/history", s.handleHistory).Methods("GET")
	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	r.HandleFunc("/ws", s.handleWebSocket).Methods("GET")

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
		IdleTimeout:       120 * time.Second,
	}

	return s
}

// Start begins serving HTTP requests and the WebSocket broadcaster.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.running = true
	s.mu.Unlock()

	go s.clientBroadcaster()

	log.Info().Str("addr", s.server.Addr).Msg("starting prediction server")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully and closes all WebSocket clients.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false

	close(s.stop)

	s.clientsMu.Lock()
	for client := range s.clients {
		client.Close()
	}
	s.clients = make(map[*websocket.Conn]bool)
	s.clientsMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// predict runs the full submission path: range validation, assembly,
// schema reordering, inference, then history persistence and broadcast.
// Only the prediction result depends on success of the last two steps;
// history and feed failures are logged, not surfaced.
func (s *Server) predict(spec *features.LaptopSpec) (float64, error) {
	if err := spec.Validate(); err != nil {
		if s.metrics != nil {
			s.metrics.InvalidInputInc()
		}
		return 0, fmt.Errorf("%w: %s", errInvalidInput, err)
	}

	record, err := features.Assemble(spec, s.bundle)
	if err != nil {
		if errors.Is(err, artifacts.ErrUnknownLabel) {
			if s.metrics != nil {
				s.metrics.UnknownLabelInc()
			}
			return 0, fmt.Errorf("%w: %s", errUnknownCategory, err)
		}
		return 0, err
	}

	vector := features.Vectorize(record, s.bundle.Columns)

	price, err := s.predictor.Predict(vector)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	if s.store != nil {
		rec := storage.PredictionRecord{
			Timestamp:    now,
			Spec:         *spec,
			Price:        price,
			ModelVersion: s.predictor.ModelVersion(),
		}
		if err := s.store.StorePrediction(rec); err != nil {
			log.Warn().Err(err).Msg("failed to persist prediction")
			if s.metrics != nil {
				s.metrics.HistoryWriteErrorInc()
			}
		} else if s.metrics != nil {
			s.metrics.HistoryWriteInc()
		}
	}

	event := PredictionEvent{
		Timestamp:    now,
		Company:      spec.Company,
		TypeName:     spec.TypeName,
		Price:        price,
		ModelVersion: s.predictor.ModelVersion(),
	}
	select {
	case s.broadcast <- event:
	default:
		// Feed is best-effort; drop when no one is draining.
	}

	return price, nil
}

// Sentinel errors used by handlers to pick a status code and user message.
var (
	errInvalidInput    = errors.New("invalid input")
	errUnknownCategory = errors.New("unrecognized category")
)

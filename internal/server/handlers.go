package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"laptop-pricer/internal/features"
)

// PredictRequest is the JSON API request body; it mirrors the form fields.
type PredictRequest struct {
	features.LaptopSpec
}

// PredictResponse is the JSON API response for a successful prediction.
type PredictResponse struct {
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	ModelVersion string    `json:"model_version"`
	LatencyMS    float64   `json:"latency_ms"`
	Timestamp    time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handlePredictAPI(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	price, err := s.predict(&req.LaptopSpec)
	if err != nil {
		switch {
		case errors.Is(err, errInvalidInput):
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, errUnknownCategory):
			respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		default:
			// Internal details stay in the log; the client gets a generic message.
			log.Error().Err(err).Msg("prediction failed")
			respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "prediction failed"})
		}
		return
	}

	respondJSON(w, http.StatusOK, PredictResponse{
		Price:        price,
		Currency:     "EUR",
		ModelVersion: s.predictor.ModelVersion(),
		LatencyMS:    float64(time.Since(start).Microseconds()) / 1000.0,
		Timestamp:    time.Now(),
	})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	options := make(map[string][]string, len(features.CategoricalColumns))
	for _, col := range features.CategoricalColumns {
		options[col] = s.bundle.Options(col)
	}
	respondJSON(w, http.StatusOK, options)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "history is not enabled"})
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	records, err := s.store.Recent(limit)
	if err != nil {
		log.Error().Err(err).Msg("history query failed")
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "history query failed"})
		return
	}
	respondJSON(w, http.StatusOK, records)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":        "ok",
		"model_version": s.predictor.ModelVersion(),
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	s.clientsMu.Lock()
	s.clients[conn] = true
	s.clientsMu.Unlock()

	log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("websocket client connected")

	// Reader loop exists only to notice the client going away.
	go func() {
		defer func() {
			s.clientsMu.Lock()
			delete(s.clients, conn)
			s.clientsMu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// clientBroadcaster fans prediction events out to all connected clients.
func (s *Server) clientBroadcaster() {
	for {
		select {
		case event := <-s.broadcast:
			s.broadcastToClients(event)
		case <-s.stop:
			return
		}
	}
}

func (s *Server) broadcastToClients(event PredictionEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	for client := range s.clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Debug().Err(err).Msg("dropping websocket client")
		}
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

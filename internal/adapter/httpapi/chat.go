package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// Chat runs the agent on the posted message and streams every event as a
// server-sent event. The response ends with the run's done or error event.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeJSONError(w, http.StatusBadRequest, "message is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSONError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	log := h.logger.WithFields(map[string]any{
		"session_id": req.SessionID,
		"request_id": middleware.GetReqID(r.Context()),
	})
	log.Info("Chat started")

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	stream := h.runner.Run(r.Context(), message)
	for event := range stream.Events() {
		data, err := json.Marshal(event)
		if err != nil {
			log.Error("Failed to encode event", "error", err)
			continue
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			log.Warn("Client went away", "error", err)
			stream.Stop()
			break
		}
		flusher.Flush()
		if event.IsTerminal() {
			break
		}
	}

	result, err := stream.Wait()
	if err != nil {
		log.Warn("Chat failed", "error", err)
		return
	}
	log.Info("Chat finished", "run_id", result.RunID, "iterations", result.Iterations)
}

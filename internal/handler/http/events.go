package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cmlabs-hris/workflow-erp/internal/handler/http/response"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/jwt"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/sse"
)

const keepaliveInterval = 30 * time.Second

// EventSubscriber is the receive side of the event hub.
type EventSubscriber interface {
	Subscribe(userID string, topics ...sse.Topic) (<-chan sse.Event, func())
}

type EventsHandler interface {
	// Token issues a short-lived token for opening the stream
	Token(w http.ResponseWriter, r *http.Request)
	// Stream pushes profile and logo updates as Server-Sent Events
	Stream(w http.ResponseWriter, r *http.Request)
}

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

type eventsHandlerImpl struct {
	jwtService jwt.Service
	hub        EventSubscriber
}

func NewEventsHandler(jwtService jwt.Service, hub EventSubscriber) EventsHandler {
	return &eventsHandlerImpl{jwtService: jwtService, hub: hub}
}

// Token handles GET /events/token
func (h *eventsHandlerImpl) Token(w http.ResponseWriter, r *http.Request) {
	actor, err := jwt.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(actor.UserID)
	if err != nil {
		slog.Error("Failed to generate SSE token", "error", err)
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, SSETokenResponse{Token: token, ExpiresIn: expiresIn})
}

func parseTopics(raw string) []sse.Topic {
	var topics []sse.Topic
	for _, t := range strings.Split(raw, ",") {
		switch sse.Topic(strings.TrimSpace(t)) {
		case sse.TopicProfileUpdated:
			topics = append(topics, sse.TopicProfileUpdated)
		case sse.TopicLogoUpdated:
			topics = append(topics, sse.TopicLogoUpdated)
		}
	}
	return topics
}

// Stream handles GET /events?token=...
// EventSource cannot send headers, so the token travels in the query.
func (h *eventsHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}
	userID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(userID, parseTopics(r.URL.Query().Get("topics"))...)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"user_id\":%q}\n\n", userID)
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("Failed to encode event", "topic", event.Topic, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Topic, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

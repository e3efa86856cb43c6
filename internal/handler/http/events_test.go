package http

import (
	"bufio"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/workflow-erp/internal/domain/user"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/jwt"
	"github.com/cmlabs-hris/workflow-erp/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsHandler_StreamsLogoUpdates(t *testing.T) {
	jwtService := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp)
	hub := sse.NewHub()
	srv := httptest.NewServer(http.HandlerFunc(NewEventsHandler(jwtService, hub).Stream))
	defer srv.Close()

	token, _, err := jwtService.GenerateSSEToken("user-1")
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "?token=" + token)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	require.True(t, lines.Scan())
	require.Equal(t, "event: connected", lines.Text())

	// subscribed before the connected event was written
	hub.Publish(sse.Event{Topic: sse.TopicProfileUpdated, UserID: "user-2", Data: sse.ProfileUpdated{UserID: "user-2"}})
	hub.Publish(sse.Event{Topic: sse.TopicLogoUpdated, Data: sse.LogoUpdated{Expanded: "/uploads/logos/a.png"}})

	var events []string
	for len(events) < 2 && lines.Scan() {
		if strings.HasPrefix(lines.Text(), "event: ") || (len(events) == 1 && strings.HasPrefix(lines.Text(), "data: ")) {
			events = append(events, lines.Text())
		}
	}
	require.Len(t, events, 2)
	assert.Equal(t, "event: logo_updated", events[0])
	assert.Equal(t, `data: {"expanded":"/uploads/logos/a.png","collapsed":""}`, events[1])
}

func TestEventsHandler_RejectsAccessToken(t *testing.T) {
	jwtService := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp)
	h := NewEventsHandler(jwtService, sse.NewHub())

	rec := httptest.NewRecorder()
	h.Stream(rec, httptest.NewRequest(http.MethodGet, "/api/v1/events?token="+accessToken(t, jwtService, user.RoleEmployee), nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.Stream(rec, httptest.NewRequest(http.MethodGet, "/api/v1/events", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEventsHandler_TokenRequiresActor(t *testing.T) {
	jwtService := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp)
	h := NewEventsHandler(jwtService, sse.NewHub())

	rec := httptest.NewRecorder()
	h.Token(rec, httptest.NewRequest(http.MethodGet, "/api/v1/events/token", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/token", nil)
	req = req.WithContext(jwt.NewContext(req.Context(), user.Actor{UserID: "user-1", Role: user.RoleEmployee}))
	rec = httptest.NewRecorder()
	h.Token(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"expires_in":300`)
}

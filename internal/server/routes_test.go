package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, _ := NewServer(testConfig(), nil)
	t.Cleanup(func() {
		s.Shutdown(context.Background())
	})
	return s
}

func TestHealthEndpoint(t *testing.T) {
	assert := assert.New(t)
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.RegisterRoutes().ServeHTTP(rec, req)

	assert.Equal(http.StatusOK, rec.Code)
	assert.Equal("application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	assert.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal("ok", body["status"])
	assert.NotEmpty(body["timestamp"])
}

func TestRoomsEndpoint(t *testing.T) {
	assert := assert.New(t)
	s := newTestServer(t)

	_, err := s.gameManager.HandlePlayerJoin(newFakeConn("conn-1"), "Alice", "")
	assert.NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
	rec := httptest.NewRecorder()
	s.RegisterRoutes().ServeHTTP(rec, req)

	assert.Equal(http.StatusOK, rec.Code)

	var body RoomListResponse
	assert.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(1, body.TotalRooms)
	assert.Equal(1, body.TotalPlayers)
	assert.Len(body.Rooms, 1)
}

func TestCORSPreflight(t *testing.T) {
	assert := assert.New(t)
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/health", nil)
	rec := httptest.NewRecorder()
	s.RegisterRoutes().ServeHTTP(rec, req)

	assert.Equal(http.StatusNoContent, rec.Code)
	assert.Equal("*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestDispatchPingPong(t *testing.T) {
	s := newTestServer(t)
	conn := newFakeConn("conn-1")

	s.dispatch(conn, ClientMessage{Type: EventPing})

	assert.Equal(t, 1, conn.countOf(EventPong))
}

func TestDispatchUnknownType(t *testing.T) {
	assert := assert.New(t)
	s := newTestServer(t)
	conn := newFakeConn("conn-1")

	s.dispatch(conn, ClientMessage{Type: "bogus"})

	errs := conn.eventsOf(EventError)
	assert.Len(errs, 1)
	assert.Contains(errs[0].Payload.(ErrorMessage).Message, "INVALID_MESSAGE_TYPE")
}

func TestDispatchJoinGame(t *testing.T) {
	assert := assert.New(t)
	s := newTestServer(t)
	conn := newFakeConn("conn-1")

	payload, _ := json.Marshal(JoinGameRequest{PlayerName: "Alice"})
	s.dispatch(conn, ClientMessage{Type: EventJoinGame, Payload: payload})

	joined := conn.eventsOf(EventGameJoined)
	assert.Len(joined, 1)
	result := joined[0].Payload.(*GameJoinedPayload)
	assert.NotEmpty(result.PlayerID)
	assert.Len(result.RoomID, 6)
}

func TestDispatchJoinGameMalformedPayload(t *testing.T) {
	assert := assert.New(t)
	s := newTestServer(t)
	conn := newFakeConn("conn-1")

	s.dispatch(conn, ClientMessage{Type: EventJoinGame, Payload: json.RawMessage(`"not an object"`)})

	errs := conn.eventsOf(EventError)
	assert.Len(errs, 1)
	assert.Contains(errs[0].Payload.(ErrorMessage).Message, "INVALID_PAYLOAD")
}

func TestDispatchRollWithoutJoining(t *testing.T) {
	assert := assert.New(t)
	s := newTestServer(t)
	conn := newFakeConn("conn-1")

	s.dispatch(conn, ClientMessage{Type: EventRequestRoll})

	errs := conn.eventsOf(EventError)
	assert.Len(errs, 1)
	assert.Contains(errs[0].Payload.(ErrorMessage).Message, "NOT_IN_GAME")
}

func TestDispatchLeaveGame(t *testing.T) {
	assert := assert.New(t)
	s := newTestServer(t)
	conn := newFakeConn("conn-1")

	payload, _ := json.Marshal(JoinGameRequest{PlayerName: "Alice"})
	s.dispatch(conn, ClientMessage{Type: EventJoinGame, Payload: payload})
	assert.Equal(1, s.gameManager.RoomCount())

	s.dispatch(conn, ClientMessage{Type: EventLeaveGame})

	assert.Equal(0, s.gameManager.RoomCount())
}

func TestDispatchChatFlow(t *testing.T) {
	assert := assert.New(t)
	s := newTestServer(t)

	c1 := newFakeConn("conn-1")
	c2 := newFakeConn("conn-2")
	join1, _ := json.Marshal(JoinGameRequest{PlayerName: "Alice"})
	join2, _ := json.Marshal(JoinGameRequest{PlayerName: "Bob"})
	s.dispatch(c1, ClientMessage{Type: EventJoinGame, Payload: join1})
	s.dispatch(c2, ClientMessage{Type: EventJoinGame, Payload: join2})
	c2.reset()

	chat, _ := json.Marshal(ChatMessageRequest{Message: "good luck"})
	s.dispatch(c1, ClientMessage{Type: EventChatMessage, Payload: chat})

	msgs := c2.eventsOf(EventChatMessage)
	assert.Len(msgs, 1)
	assert.Equal("good luck", msgs[0].Payload.(ChatMessagePayload).Message)
}

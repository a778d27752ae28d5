package live

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestBroadcastReachesRoomMembersOnly(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := hub.NewClient(conn, r.URL.Query().Get("room"))
		hub.Register <- client
		go client.WritePump()
		go client.ReadPump()
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	inRoom, _, err := websocket.DefaultDialer.Dial(wsURL+"?room="+MatchRoom(7), nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer inRoom.Close()
	other, _, err := websocket.DefaultDialer.Dial(wsURL+"?room="+MatchRoom(8), nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer other.Close()

	waitFor(t, func() bool { return hub.RoomSize(MatchRoom(7)) == 1 && hub.RoomSize(MatchRoom(8)) == 1 })

	hub.BroadcastToRoom(MatchRoom(7), WebSocketMessage{Type: MessageMatchUpdated, Payload: map[string]int{"id": 7}})

	inRoom.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := inRoom.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var msg struct {
		Type   string `json:"type"`
		RoomID string `json:"room_id"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("bad message %s: %v", data, err)
	}
	if msg.Type != MessageMatchUpdated || msg.RoomID != "match_7" {
		t.Fatalf("unexpected message %+v", msg)
	}

	other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	if _, _, err := other.ReadMessage(); err == nil {
		t.Fatal("client of another room received the broadcast")
	}
}

func TestRoomNames(t *testing.T) {
	if MatchRoom(3) != "match_3" {
		t.Fatalf("expected match_3, got %s", MatchRoom(3))
	}
	if UserRoom(12) != "user_12" {
		t.Fatalf("expected user_12, got %s", UserRoom(12))
	}
}

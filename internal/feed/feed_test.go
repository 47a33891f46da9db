package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/RE4CT-SC/388-Client/internal/hotkey"
	"github.com/RE4CT-SC/388-Client/internal/remote"
	"github.com/RE4CT-SC/388-Client/internal/session"
	"github.com/gorilla/websocket"
)

type stubAPI struct{}

func (stubAPI) Activate(ctx context.Context) (string, error)          { return "granted", nil }
func (stubAPI) Trigger(ctx context.Context) (remote.Outcome, error)   { return remote.OutcomeNone, nil }
func (stubAPI) Deactivate(ctx context.Context) error                  { return nil }
func (stubAPI) Status(ctx context.Context) bool                       { return true }

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	return msg
}

func TestSnapshotOnConnectAndEventFanout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bind := hotkey.Token("btn:middle")
	tokens := make(chan hotkey.Token)
	ctrl := session.New(stubAPI{}, bind, tokens)
	go ctrl.Run(ctx)

	b := NewBroadcaster(ctrl, bind)
	go b.Run(ctx)

	mux := http.NewServeMux()
	NewServer(b).SetupRoutes(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	conn := dial(t, srv)

	snap := readMessage(t, conn)
	if snap.Type != "snapshot" || snap.State != "inactive" || snap.Keybind != "Mouse Middle" {
		t.Errorf("snapshot = %+v", snap)
	}

	tokens <- bind
	ev := readMessage(t, conn)
	if ev.Type != "event" || ev.Event != "activated" || ev.State != "activated" {
		t.Errorf("event = %+v", ev)
	}
}

func TestStatusEndpoint(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bind := hotkey.Token("ctrl+w")
	ctrl := session.New(stubAPI{}, bind, make(chan hotkey.Token))
	go ctrl.Run(ctx)

	mux := http.NewServeMux()
	NewServer(NewBroadcaster(ctrl, bind)).SetupRoutes(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	if err != nil {
		t.Fatalf("GET /status: %v", err)
	}
	defer resp.Body.Close()

	var payload StatusPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.State != "inactive" || payload.Keybind != "Ctrl + W" {
		t.Errorf("status = %+v", payload)
	}
}

func TestDisconnectedClientRemoved(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bind := hotkey.Token("btn:middle")
	ctrl := session.New(stubAPI{}, bind, make(chan hotkey.Token))
	go ctrl.Run(ctx)

	b := NewBroadcaster(ctrl, bind)

	mux := http.NewServeMux()
	NewServer(b).SetupRoutes(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	conn := dial(t, srv)
	deadline := time.Now().Add(time.Second)
	for b.ClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	conn.Close()
	deadline = time.Now().Add(time.Second)
	for b.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("closed client still registered, count=%d", b.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

package wormhole

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/websocket"
)

func dialHub(t *testing.T, srv *httptest.Server, steadID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?stead=" + steadID
	conn, err := websocket.Dial(url, "", srv.URL)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForSessions(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Sessions() != want {
		if time.Now().After(deadline) {
			t.Fatalf("sessions=%d, want %d", hub.Sessions(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readNote(t *testing.T, conn *websocket.Conn) Note {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var note Note
	if err := json.NewDecoder(conn).Decode(&note); err != nil {
		t.Fatalf("read note: %v", err)
	}
	return note
}

func TestHubSendsToSubscribedStead(t *testing.T) {
	hub := NewHub()
	mux := httptest.NewServer(hub.Handler())
	defer mux.Close()

	conn := dialHub(t, mux, "stead-1")
	waitForSessions(t, hub, 1)

	hub.Send(Note{Kind: NoteYieldResult, SteadID: "stead-1", XP: 5, Items: []string{"Warp Powder"}})

	note := readNote(t, conn)
	if note.Kind != NoteYieldResult || note.XP != 5 || len(note.Items) != 1 {
		t.Fatalf("note=%+v", note)
	}
}

func TestHubRoutesBySteadID(t *testing.T) {
	hub := NewHub()
	mux := httptest.NewServer(hub.Handler())
	defer mux.Close()

	mine := dialHub(t, mux, "stead-1")
	theirs := dialHub(t, mux, "stead-2")
	waitForSessions(t, hub, 2)

	hub.Send(Note{Kind: NoteLevelUp, SteadID: "stead-2", Title: "Sapling"})

	note := readNote(t, theirs)
	if note.SteadID != "stead-2" || note.Title != "Sapling" {
		t.Fatalf("note=%+v", note)
	}

	// the other stead's connection stays quiet
	mine.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var stray Note
	if err := json.NewDecoder(mine).Decode(&stray); err == nil {
		t.Fatalf("stead-1 received someone else's note: %+v", stray)
	}
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	mux := httptest.NewServer(hub.Handler())
	defer mux.Close()

	a := dialHub(t, mux, "stead-1")
	b := dialHub(t, mux, "stead-2")
	waitForSessions(t, hub, 2)

	hub.Broadcast(Note{Kind: NoteRubEffect, SteadID: "everyone", Detail: "server restarting"})

	for _, conn := range []*websocket.Conn{a, b} {
		note := readNote(t, conn)
		if note.Detail != "server restarting" {
			t.Fatalf("note=%+v", note)
		}
	}
}

func TestHubDropsSessionsOnDisconnect(t *testing.T) {
	hub := NewHub()
	mux := httptest.NewServer(hub.Handler())
	defer mux.Close()

	conn := dialHub(t, mux, "stead-1")
	waitForSessions(t, hub, 1)

	conn.Close()
	waitForSessions(t, hub, 0)
}

package web

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/msto2/bid-tool/live"
)

// readSSEEvent reads frames until the next data line and decodes it.
func readSSEEvent(t *testing.T, scanner *bufio.Scanner) live.Event {
	t.Helper()
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev live.Event
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev); err != nil {
			t.Fatalf("error decoding event '%s': %v", line, err)
		}
		return ev
	}
	t.Fatalf("stream ended without an event: %v", scanner.Err())
	return live.Event{}
}

func TestSSEHandler(t *testing.T) {
	ts := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/events", ts.s.URL), nil)
	if err != nil {
		t.Fatalf("error creating request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("error opening event stream: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type: %s", ct)
	}

	scanner := bufio.NewScanner(resp.Body)

	// The first frame acknowledges the connection.
	ev := readSSEEvent(t, scanner)
	if ev.Type != live.EventConnected {
		t.Fatalf("expected a '%s' event, got '%s'", live.EventConnected, ev.Type)
	}

	// A successful bid shows up as a new_bid frame.
	post := ts.postBid(t, validBid())
	post.Body.Close()

	ev = readSSEEvent(t, scanner)
	if ev.Type != live.EventNewBid {
		t.Errorf("expected a '%s' event, got '%s'", live.EventNewBid, ev.Type)
	}
	if ev.Message != "Mighty Ducks has placed a bid" {
		t.Errorf("unexpected message: '%s'", ev.Message)
	}
}

func TestSSEHandler_disconnectRemovesViewer(t *testing.T) {
	ts := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/events", ts.s.URL), nil)
	if err != nil {
		t.Fatalf("error creating request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("error opening event stream: %v", err)
	}
	defer resp.Body.Close()

	// Wait for the connected frame so we know the subscription registered.
	readSSEEvent(t, bufio.NewScanner(resp.Body))
	if ts.hub.ViewerCount() != 1 {
		t.Fatalf("expected 1 viewer, got %d", ts.hub.ViewerCount())
	}

	cancel()

	deadline := time.Now().Add(5 * time.Second)
	for ts.hub.ViewerCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("viewer was not removed after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWSHandler(t *testing.T) {
	ts := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.s.URL, "http") + "/api/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("error dialing websocket: %v", err)
	}
	if resp != nil {
		defer resp.Body.Close()
	}
	defer conn.Close()

	var ev live.Event
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("error reading connected event: %v", err)
	}
	if ev.Type != live.EventConnected {
		t.Fatalf("expected a '%s' event, got '%s'", live.EventConnected, ev.Type)
	}

	post := ts.postBid(t, validBid())
	post.Body.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("error reading bid event: %v", err)
	}
	if ev.Type != live.EventNewBid {
		t.Errorf("expected a '%s' event, got '%s'", live.EventNewBid, ev.Type)
	}
}

package loghub

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func receive(t *testing.T, ch chan []byte) []byte {
	t.Helper()
	select {
	case line := <-ch:
		return line
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for a broadcast line")
		return nil
	}
}

func TestBroadcastReachesAllClients(t *testing.T) {
	h := NewHub()
	defer h.Close()

	a := &Client{hub: h, send: make(chan []byte, 4)}
	b := &Client{hub: h, send: make(chan []byte, 4)}
	h.RegisterClient(a)
	h.RegisterClient(b)

	h.Broadcast([]byte("line one"))

	if got := string(receive(t, a.send)); got != "line one" {
		t.Errorf("Client a got %q", got)
	}
	if got := string(receive(t, b.send)); got != "line one" {
		t.Errorf("Client b got %q", got)
	}
}

func TestUnregisteredClientStopsReceiving(t *testing.T) {
	h := NewHub()
	defer h.Close()

	c := &Client{hub: h, send: make(chan []byte, 4)}
	h.RegisterClient(c)
	h.UnregisterClient(c)

	h.Broadcast([]byte("after unregister"))

	select {
	case line, ok := <-c.send:
		if ok {
			t.Errorf("Expected a closed channel, got %q", string(line))
		}
	case <-time.After(time.Second):
		t.Fatal("Expected the send channel to be closed")
	}
}

func TestSlowClientIsDropped(t *testing.T) {
	h := NewHub()
	defer h.Close()

	// a full unbuffered-ish channel simulates a stalled writer
	slow := &Client{hub: h, send: make(chan []byte, 1)}
	h.RegisterClient(slow)

	h.Broadcast([]byte("fills the buffer"))
	h.Broadcast([]byte("overflows"))

	// the first line arrives, then the channel is closed by the drop
	if got := string(receive(t, slow.send)); got != "fills the buffer" {
		t.Errorf("Got %q", got)
	}

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-slow.send:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("Expected the slow client to be dropped")
		}
	}
}

func TestHookBroadcastsFormattedEntries(t *testing.T) {
	h := NewHub()
	defer h.Close()

	c := &Client{hub: h, send: make(chan []byte, 4)}
	h.RegisterClient(c)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(NewHook(h))

	logger.Warn("something noteworthy")

	line := string(receive(t, c.send))
	for _, want := range []string{"something noteworthy", "warning"} {
		if !strings.Contains(line, want) {
			t.Errorf("Expected line to contain %q, got %q", want, line)
		}
	}
}

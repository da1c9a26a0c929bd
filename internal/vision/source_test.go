package vision

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/lox/handcricket/internal/game"
	"github.com/lox/handcricket/internal/server"
)

// fakeDetector serves a websocket that plays the given messages and then
// holds the connection open
func fakeDetector(t *testing.T, messages []*server.Message) string {
	t.Helper()
	upgrader := websocket.Upgrader{}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, msg := range messages {
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(ts.Close)

	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func mustMessage(t *testing.T, mt server.MessageType, data interface{}) *server.Message {
	t.Helper()
	msg, err := server.NewMessage(mt, data)
	require.NoError(t, err)
	return msg
}

func TestRemoteSource_ReceivesReadings(t *testing.T) {
	url := fakeDetector(t, []*server.Message{
		mustMessage(t, server.MessageTypeGestureReading, server.GestureReadingData{Fingers: 4, Confidence: 0.8}),
	})

	src := NewRemoteSource(url, time.Second, log.New(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go src.Run(ctx)

	require.Eventually(t, func() bool {
		return src.Current() == game.GestureValue(4)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRemoteSource_IgnoresOtherMessageTypes(t *testing.T) {
	url := fakeDetector(t, []*server.Message{
		mustMessage(t, server.MessageTypePhaseChanged, server.PhaseChangedData{Phase: "ready"}),
		mustMessage(t, server.MessageTypeGestureReading, server.GestureReadingData{Fingers: 2}),
	})

	src := NewRemoteSource(url, time.Second, log.New(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go src.Run(ctx)

	require.Eventually(t, func() bool {
		return src.Current() == game.GestureValue(2)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRemoteSource_UnknownWhileDisconnected(t *testing.T) {
	src := NewRemoteSource("ws://127.0.0.1:1/feed", time.Second, log.New(io.Discard))
	require.Equal(t, game.GestureUnknown, src.Current())
}

func TestRemoteSource_ReadingsExpire(t *testing.T) {
	src := NewRemoteSource("ws://unused", 50*time.Millisecond, log.New(io.Discard))

	src.store(3)
	require.Equal(t, game.GestureValue(3), src.Current())

	time.Sleep(80 * time.Millisecond)
	require.Equal(t, game.GestureUnknown, src.Current())
}

func TestRemoteSource_OutOfRangeIsUnknown(t *testing.T) {
	src := NewRemoteSource("ws://unused", time.Second, log.New(io.Discard))

	src.store(-1)
	require.Equal(t, game.GestureUnknown, src.Current())

	src.store(9)
	require.Equal(t, game.GestureUnknown, src.Current())
}

package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/lox/handcricket/internal/game"
	"github.com/lox/handcricket/internal/matchid"
	"github.com/lox/handcricket/internal/randutil"
)

func findFreePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().String()
}

func startGateway(t *testing.T) (*Server, string) {
	t.Helper()

	logger := log.New(io.Discard)
	s := NewServer(logger, Options{
		Match:     game.DefaultConfig(),
		FrameRate: 120,
	}, randutil.New(1), quartz.NewReal())

	addr := findFreePort(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, addr) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("gateway did not shut down")
		}
	})

	return s, addr
}

func dialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	var conn *websocket.Conn
	var err error
	for i := 0; i < 100; i++ {
		conn, _, err = websocket.DefaultDialer.Dial(url, nil)
		if err == nil {
			t.Cleanup(func() { conn.Close() })
			return conn
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("failed to dial %s: %v", url, err)
	return nil
}

func TestGateway_SpectatorSnapshotAndControl(t *testing.T) {
	s, addr := startGateway(t)
	conn := dialWS(t, "ws://"+addr+"/watch")

	// the first message is always the state snapshot
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, MessageTypeStateSnapshot, msg.Type)

	var snap StateSnapshotData
	require.NoError(t, json.Unmarshal(msg.Data, &snap))
	require.Equal(t, "menu", snap.Phase)
	require.Equal(t, s.MatchID(), snap.MatchID)
	require.NoError(t, matchid.Validate(snap.MatchID))

	// a start control begins the match and events start flowing
	control, err := NewMessage(MessageTypeControl, ControlData{Signal: "start"})
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(control))

	for {
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == MessageTypePhaseChanged {
			break
		}
	}

	var phase PhaseChangedData
	require.NoError(t, json.Unmarshal(msg.Data, &phase))
	require.Equal(t, "ready", phase.Phase)
	require.Equal(t, 1, phase.Innings)
	require.Equal(t, 1, phase.Round)
}

func TestGateway_VisionFeedsReadingCache(t *testing.T) {
	s, addr := startGateway(t)
	conn := dialWS(t, "ws://"+addr+"/vision")

	reading, err := NewMessage(MessageTypeGestureReading, GestureReadingData{Fingers: 3, Confidence: 0.9})
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(reading))

	require.Eventually(t, func() bool {
		return s.cache.Current() == game.GestureValue(3)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestGateway_MalformedControlGetsError(t *testing.T) {
	_, addr := startGateway(t)
	conn := dialWS(t, "ws://"+addr+"/watch")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg)) // snapshot

	bad := &Message{Type: MessageTypeControl, Data: json.RawMessage(`"not an object"`), Timestamp: time.Now()}
	require.NoError(t, conn.WriteJSON(bad))

	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, MessageTypeError, msg.Type)

	var errData ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &errData))
	require.Equal(t, "bad_control", errData.Code)
}

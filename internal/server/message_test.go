package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/handcricket/internal/game"
)

func TestParseSignal(t *testing.T) {
	require.Equal(t, game.SignalStart, ParseSignal("start"))
	require.Equal(t, game.SignalRestart, ParseSignal("restart"))
	require.Equal(t, game.SignalQuit, ParseSignal("quit"))
	require.Equal(t, game.SignalNone, ParseSignal("pause"))
	require.Equal(t, game.SignalNone, ParseSignal(""))
}

func TestMessageFromEvent_PhaseChanged(t *testing.T) {
	msg, err := MessageFromEvent(game.NewPhaseChangedEvent(game.Capture, 5, 1, 2))
	require.NoError(t, err)
	require.Equal(t, MessageTypePhaseChanged, msg.Type)
	require.False(t, msg.Timestamp.IsZero())

	var data PhaseChangedData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	require.Equal(t, "capture", data.Phase)
	require.Equal(t, 5, data.Tick)
	require.Equal(t, 1, data.Innings)
	require.Equal(t, 2, data.Round)
}

func TestMessageFromEvent_RoundResolved(t *testing.T) {
	outcome := game.RoundOutcome{Kind: game.RunsScored, BattingRuns: 4, BowlerMove: 2}
	msg, err := MessageFromEvent(game.NewRoundResolvedEvent(outcome, game.ComputerSide, 9, 2, 3))
	require.NoError(t, err)
	require.Equal(t, MessageTypeRoundResolved, msg.Type)

	var data RoundResolvedData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	require.Equal(t, "runs_scored", data.Outcome.Kind)
	require.Equal(t, 4, data.Outcome.BattingRuns)
	require.Equal(t, 2, data.Outcome.BowlerMove)
	require.Equal(t, "computer", data.BattingSide)
	require.Equal(t, 9, data.RunningTotal)
}

func TestMessageFromEvent_InningsConcluded(t *testing.T) {
	target := 12
	state := game.InningsState{
		BattingSide: game.ComputerSide,
		Runs:        13,
		Target:      &target,
		Rounds:      4,
	}
	msg, err := MessageFromEvent(game.NewInningsConcludedEvent(2, state))
	require.NoError(t, err)

	var data InningsConcludedData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	require.Equal(t, 2, data.Innings)
	require.Equal(t, 13, data.Runs)
	require.False(t, data.IsOut)
	require.NotNil(t, data.Target)
	require.Equal(t, 12, *data.Target)
}

func TestMessageFromEvent_MatchConcluded(t *testing.T) {
	msg, err := MessageFromEvent(game.NewMatchConcludedEvent(game.PlayerWin, 6, 0))
	require.NoError(t, err)

	var data MatchConcludedData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	require.Equal(t, "player_win", data.Result)
	require.Equal(t, 6, data.PlayerRuns)
	require.Zero(t, data.ComputerRuns)
}

func TestSnapshotMessage(t *testing.T) {
	target := 5
	snap := game.MatchSnapshot{
		Phase:        game.Innings2,
		ClockTick:    7,
		ClockPhase:   game.Capture,
		Innings:      2,
		Round:        3,
		PlayerRuns:   5,
		ComputerRuns: 2,
		Target:       &target,
		BattingSide:  game.ComputerSide,
	}

	msg, err := SnapshotMessage("0123456789abcdefghjk", snap)
	require.NoError(t, err)
	require.Equal(t, MessageTypeStateSnapshot, msg.Type)

	var data StateSnapshotData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	require.Equal(t, "0123456789abcdefghjk", data.MatchID)
	require.Equal(t, "innings_2", data.Phase)
	require.Equal(t, "capture", data.ClockPhase)
	require.Equal(t, 5, data.PlayerRuns)
	require.Equal(t, 2, data.ComputerRuns)
	require.Equal(t, 5, *data.Target)
	require.Equal(t, "computer", data.BattingSide)
	require.Equal(t, "none", data.Result)
}

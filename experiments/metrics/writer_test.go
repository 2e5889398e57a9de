package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	t.Run("files are complete when write returns", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "run")
		require.NoError(t, err)

		require.NoError(t, w.WriteAgentConfigs([]AgentConfig{
			{ID: 0, Policy: "greedy"},
			{ID: 1, Policy: "weighted", Temperature: 0.5, Seed: 7},
		}))
		require.NoError(t, w.WriteMoveRecords([]MoveRecord{
			{Game: 3, MoveMetric: MoveMetric{Step: 1, Team: "ONE", Move: "place", Captured: 1}},
		}))

		agents := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Len(t, agents, 3)
		require.Equal(t, []string{"1", "weighted", "0.5", "7"}, agents[2])

		moves := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, moves, 2)
		require.Equal(t, "3", moves[1][0])
	})

	t.Run("missing directory is reported", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "gone")
		require.NoError(t, err)
		require.NoError(t, os.RemoveAll(w.Dir()))

		require.Error(t, w.WriteGameRecords([]GameRecord{{ID: 1}}))
	})
}

package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"
)

func moveRecords() []MoveRecord {
	return []MoveRecord{
		{Game: 1, MoveMetric: MoveMetric{Step: 1, Player: "mcts", Move: "d3", SearchMetric: SearchMetric{
			Variant: "mcts", Budget: time.Second, Duration: 1001 * time.Millisecond, Episodes: 120, FullPlayouts: 120,
		}}},
		{Game: 1, MoveMetric: MoveMetric{Step: 2, Player: "mcts-mr", Move: "c3", SearchMetric: SearchMetric{
			Variant: "mcts-mr", Budget: time.Second, Duration: time.Second, Episodes: 80, FullPlayouts: 60,
			MinimaxCalls: 80, MinimaxSolved: 20, RootSolved: true,
		}}},
	}
}

func TestFormatTally(t *testing.T) {
	tests := []struct {
		name  string
		tally map[string]int
		want  string
	}{
		{name: "empty", tally: map[string]int{}, want: "{}"},
		{name: "single label", tally: map[string]int{"mcts": 3}, want: "{'mcts': 3}"},
		{name: "sorted labels", tally: map[string]int{"mcts-mr": 40, "Draw": 5, "mcts": 55}, want: "{'Draw': 5, 'mcts': 55, 'mcts-mr': 40}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatTally(tt.tally))
		})
	}
}

func TestWriter(t *testing.T) {
	t.Run("writing a summary named after the experiment", func(t *testing.T) {
		writer, err := NewWriter(t.TempDir())
		require.NoError(t, err)

		err = writer.WriteSummary("Othello - mcts vs mcts-mr-1", map[string]int{"mcts": 2, "mcts-mr": 1})
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(writer.Dir(), "Othello - mcts vs mcts-mr-1"))
		require.NoError(t, err)
		require.Equal(t, "{'mcts': 2, 'mcts-mr': 1}", string(content))
	})

	t.Run("writing a full result", func(t *testing.T) {
		writer, err := NewWriter(t.TempDir())
		require.NoError(t, err)
		configs := []AgentConfig{NewAgentConfig("mcts"), NewAgentConfig("mcts-mr")}
		games := []GameRecord{{ID: 1, Agent1: 1, Agent2: 2, GameMetric: GameMetric{StartingAgent: "mcts", Winner: "Draw", TotalMoves: 2}}}

		err = writer.WriteResult("a/b", configs, map[string]int{"Draw": 1}, games, moveRecords())
		require.NoError(t, err)

		dir := filepath.Join(writer.Dir(), "records", "a_b")
		for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv", "move_records.parquet"} {
			require.FileExists(t, filepath.Join(dir, name))
		}
		require.FileExists(t, filepath.Join(writer.Dir(), "a_b"), "Summary should not contain path separators")

		content, err := os.ReadFile(filepath.Join(dir, "game_records.csv"))
		require.NoError(t, err)
		require.Contains(t, string(content), "id,agent1,agent2,starting_agent,winner")
		require.Contains(t, string(content), "1,1,2,mcts,Draw")
	})
}

func TestWriteMoveArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moves.parquet")

	err := WriteMoveArchive(path, "Othello - mcts vs mcts-mr-1", moveRecords())
	require.NoError(t, err)

	rows, err := parquet.ReadFile[MoveRow](path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, MoveRow{
		Experiment:    "Othello - mcts vs mcts-mr-1",
		Game:          1,
		Step:          2,
		Player:        "mcts-mr",
		Move:          "c3",
		Variant:       "mcts-mr",
		BudgetMs:      1000,
		DurationMs:    1000,
		Episodes:      80,
		FullPlayouts:  60,
		MinimaxCalls:  80,
		MinimaxSolved: 20,
		RootSolved:    true,
	}, rows[1])
	require.Equal(t, int64(1001), rows[0].DurationMs)
	require.NoFileExists(t, path+".tmp")
}

package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// MoveRow is the archived form of a MoveRecord
type MoveRow struct {
	Experiment    string `parquet:"experiment,dict"`
	Game          int32  `parquet:"game"`
	Step          int32  `parquet:"step"`
	Player        string `parquet:"player,dict"`
	Move          string `parquet:"move,dict"`
	Variant       string `parquet:"variant,dict"`
	BudgetMs      int64  `parquet:"budget_ms"`
	DurationMs    int64  `parquet:"duration_ms"`
	Episodes      int32  `parquet:"episodes"`
	FullPlayouts  int32  `parquet:"full_playouts"`
	MinimaxCalls  int32  `parquet:"minimax_calls"`
	MinimaxSolved int32  `parquet:"minimax_solved"`
	RootSolved    bool   `parquet:"root_solved"`
}

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of dir named by the current timestamp
func NewWriter(dir string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

// WriteResult stores everything known about one finished experiment: its
// tally as a one-line summary, its agents, games and moves
func (w *Writer) WriteResult(name string, configs []AgentConfig, tally map[string]int, games []GameRecord, moves []MoveRecord) error {
	if err := w.WriteSummary(name, tally); err != nil {
		return err
	}

	dir := filepath.Join(w.baseDir, "records", slug(name))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := writeAgentConfigs(filepath.Join(dir, "agent_configs.csv"), configs); err != nil {
		return err
	}
	if err := writeGameRecords(filepath.Join(dir, "game_records.csv"), games); err != nil {
		return err
	}
	if err := writeMoveRecords(filepath.Join(dir, "move_records.csv"), moves); err != nil {
		return err
	}
	return WriteMoveArchive(filepath.Join(dir, "move_records.parquet"), name, moves)
}

// WriteSummary writes the tally of an experiment to a file named after it
func (w *Writer) WriteSummary(name string, tally map[string]int) error {
	path := filepath.Join(w.baseDir, strings.ReplaceAll(name, string(os.PathSeparator), "_"))
	err := os.WriteFile(path, []byte(FormatTally(tally)), 0644)
	if err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// FormatTally renders a tally as {'label': count, ...} with sorted labels
func FormatTally(tally map[string]int) string {
	labels := make([]string, 0, len(tally))
	for label := range tally {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var b strings.Builder
	b.WriteByte('{')
	for i, label := range labels {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "'%s': %d", label, tally[label])
	}
	b.WriteByte('}')
	return b.String()
}

func writeAgentConfigs(path string, configs []AgentConfig) error {
	header := []string{"id", "name", "duration", "episodes", "c", "depth", "visits"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Name,
			config.Duration.String(),
			strconv.Itoa(config.Episodes),
			strconv.FormatFloat(config.C, 'g', -1, 64),
			strconv.Itoa(config.Depth),
			strconv.Itoa(config.Visits),
		})
	}
	if err := writeCSV(path, header, rows); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	return nil
}

func writeGameRecords(path string, records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_agent", "winner", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.StartingAgent,
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	if err := writeCSV(path, header, rows); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	return nil
}

func writeMoveRecords(path string, records []MoveRecord) error {
	header := []string{"game", "step", "player", "move", "variant", "duration", "episodes", "full_playouts", "minimax_calls", "minimax_solved", "root_solved"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			record.Move,
			record.Variant,
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.FullPlayouts),
			strconv.Itoa(record.MinimaxCalls),
			strconv.Itoa(record.MinimaxSolved),
			strconv.FormatBool(record.RootSolved),
		})
	}
	if err := writeCSV(path, header, rows); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	return nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}

// WriteMoveArchive writes move records to a zstd compressed parquet file
func WriteMoveArchive(path, experiment string, records []MoveRecord) error {
	rows := make([]MoveRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, MoveRow{
			Experiment:    experiment,
			Game:          int32(record.Game),
			Step:          int32(record.Step),
			Player:        record.Player,
			Move:          record.Move,
			Variant:       record.Variant,
			BudgetMs:      record.Budget.Milliseconds(),
			DurationMs:    record.Duration.Milliseconds(),
			Episodes:      int32(record.Episodes),
			FullPlayouts:  int32(record.FullPlayouts),
			MinimaxCalls:  int32(record.MinimaxCalls),
			MinimaxSolved: int32(record.MinimaxSolved),
			RootSolved:    record.RootSolved,
		})
	}

	// Write to a temp file and rename atomically
	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "move_record_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write move archive: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename move archive: %w", err)
	}
	return nil
}

func slug(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, name)
}

// Package stats collects execution statistics for a run of the engine:
// per-instruction counts, branch outcomes, memory traffic, and a hot-path
// of the most frequently executed program-counter words. The engine
// itself records nothing; the host loop calls back into this package
// after every tick (spec.md §5: the engine is a pure state machine).
package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// MnemonicCount pairs an instruction mnemonic with its execution count.
type MnemonicCount struct {
	Mnemonic string
	Count    uint64
}

// HotPathEntry pairs a program-counter word index with its execution count.
type HotPathEntry struct {
	PCWord uint32
	Count  uint64
}

// Statistics accumulates counters over a run. The zero value is disabled
// and has nil maps; Start allocates the maps, and NewStatistics returns an
// enabled tracker with the maps already allocated.
type Statistics struct {
	Enabled bool

	TotalInstructions  uint64
	ExecutionTime      time.Duration
	InstructionsPerSec float64

	InstructionCounts map[string]uint64

	BranchCount      uint64
	BranchTakenCount uint64

	HotPath map[uint32]uint64

	MemoryReads  uint64
	MemoryWrites uint64
	BytesRead    uint64
	BytesWritten uint64

	startTime time.Time
}

// NewStatistics returns an enabled, empty statistics tracker.
func NewStatistics() *Statistics {
	s := &Statistics{Enabled: true}
	s.reset()
	return s
}

func (s *Statistics) reset() {
	s.InstructionCounts = make(map[string]uint64)
	s.HotPath = make(map[uint32]uint64)
}

// Start resets all counters and begins timing.
func (s *Statistics) Start() {
	s.startTime = time.Now()
	s.TotalInstructions = 0
	s.BranchCount = 0
	s.BranchTakenCount = 0
	s.MemoryReads = 0
	s.MemoryWrites = 0
	s.BytesRead = 0
	s.BytesWritten = 0
	s.reset()
}

// RecordInstruction records one executed instruction at the given
// program-counter word index.
func (s *Statistics) RecordInstruction(mnemonic string, pcWord uint32) {
	if !s.Enabled {
		return
	}
	s.TotalInstructions++
	s.InstructionCounts[mnemonic]++
	s.HotPath[pcWord]++
}

// RecordBranch records a conditional branch's outcome.
func (s *Statistics) RecordBranch(taken bool) {
	if !s.Enabled {
		return
	}
	s.BranchCount++
	if taken {
		s.BranchTakenCount++
	}
}

// RecordMemoryRead records a completed memory read of the given size.
func (s *Statistics) RecordMemoryRead(bytes uint64) {
	if !s.Enabled {
		return
	}
	s.MemoryReads++
	s.BytesRead += bytes
}

// RecordMemoryWrite records a completed memory write of the given size.
func (s *Statistics) RecordMemoryWrite(bytes uint64) {
	if !s.Enabled {
		return
	}
	s.MemoryWrites++
	s.BytesWritten += bytes
}

// Finalize stops the clock and derives InstructionsPerSec.
func (s *Statistics) Finalize() {
	s.ExecutionTime = time.Since(s.startTime)
	if s.ExecutionTime.Seconds() > 0 {
		s.InstructionsPerSec = float64(s.TotalInstructions) / s.ExecutionTime.Seconds()
	}
}

// TopInstructions returns the n most frequently executed mnemonics, most
// frequent first. n <= 0 returns all of them.
func (s *Statistics) TopInstructions(n int) []MnemonicCount {
	out := make([]MnemonicCount, 0, len(s.InstructionCounts))
	for mnemonic, count := range s.InstructionCounts {
		out = append(out, MnemonicCount{Mnemonic: mnemonic, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if n > 0 && n < len(out) {
		return out[:n]
	}
	return out
}

// TopHotPath returns the n most frequently executed program-counter words,
// most frequent first. n <= 0 returns all of them.
func (s *Statistics) TopHotPath(n int) []HotPathEntry {
	out := make([]HotPathEntry, 0, len(s.HotPath))
	for pc, count := range s.HotPath {
		out = append(out, HotPathEntry{PCWord: pc, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if n > 0 && n < len(out) {
		return out[:n]
	}
	return out
}

// WriteJSON writes the statistics as indented JSON.
func (s *Statistics) WriteJSON(w io.Writer) error {
	s.Finalize()

	data := map[string]any{
		"total_instructions":   s.TotalInstructions,
		"execution_time_ms":    s.ExecutionTime.Milliseconds(),
		"instructions_per_sec": s.InstructionsPerSec,
		"branch_count":         s.BranchCount,
		"branch_taken":         s.BranchTakenCount,
		"memory_reads":         s.MemoryReads,
		"memory_writes":        s.MemoryWrites,
		"bytes_read":           s.BytesRead,
		"bytes_written":        s.BytesWritten,
		"top_instructions":     s.TopInstructions(20),
		"hot_path":             s.TopHotPath(20),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// WriteCSV writes a summary table followed by the full instruction
// breakdown.
func (s *Statistics) WriteCSV(w io.Writer) error {
	s.Finalize()

	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"Metric", "Value"}); err != nil {
		return err
	}

	rows := [][]string{
		{"Total Instructions", fmt.Sprintf("%d", s.TotalInstructions)},
		{"Execution Time (ms)", fmt.Sprintf("%d", s.ExecutionTime.Milliseconds())},
		{"Instructions/Sec", fmt.Sprintf("%.2f", s.InstructionsPerSec)},
		{"Branch Count", fmt.Sprintf("%d", s.BranchCount)},
		{"Branch Taken", fmt.Sprintf("%d", s.BranchTakenCount)},
		{"Memory Reads", fmt.Sprintf("%d", s.MemoryReads)},
		{"Memory Writes", fmt.Sprintf("%d", s.MemoryWrites)},
		{"Bytes Read", fmt.Sprintf("%d", s.BytesRead)},
		{"Bytes Written", fmt.Sprintf("%d", s.BytesWritten)},
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	if err := cw.Write([]string{}); err != nil {
		return err
	}
	if err := cw.Write([]string{"Instruction", "Count"}); err != nil {
		return err
	}
	for _, stat := range s.TopInstructions(0) {
		if err := cw.Write([]string{stat.Mnemonic, fmt.Sprintf("%d", stat.Count)}); err != nil {
			return err
		}
	}
	return nil
}

// String renders a human-readable text summary, the default format.
func (s *Statistics) String() string {
	s.Finalize()

	var sb strings.Builder
	sb.WriteString("Execution Statistics\n")
	sb.WriteString("=====================\n\n")
	fmt.Fprintf(&sb, "Total Instructions:  %d\n", s.TotalInstructions)
	fmt.Fprintf(&sb, "Execution Time:      %v\n", s.ExecutionTime)
	fmt.Fprintf(&sb, "Instructions/Sec:    %.2f\n\n", s.InstructionsPerSec)
	fmt.Fprintf(&sb, "Branch Count:        %d\n", s.BranchCount)
	fmt.Fprintf(&sb, "Branches Taken:      %d\n\n", s.BranchTakenCount)
	fmt.Fprintf(&sb, "Memory Reads:        %d (%d bytes)\n", s.MemoryReads, s.BytesRead)
	fmt.Fprintf(&sb, "Memory Writes:       %d (%d bytes)\n\n", s.MemoryWrites, s.BytesWritten)

	sb.WriteString("Top Instructions:\n")
	for i, stat := range s.TopInstructions(10) {
		pct := float64(stat.Count) / float64(s.TotalInstructions) * 100
		fmt.Fprintf(&sb, "  %2d. %-8s %8d (%.1f%%)\n", i+1, stat.Mnemonic, stat.Count, pct)
	}
	return sb.String()
}

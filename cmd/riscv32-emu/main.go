// Command riscv32-emu runs a raw RV32I/M program image to completion and
// prints a post-mortem summary, or serves the inspector API (-api-server).
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rv32emu/api"
	"rv32emu/config"
	"rv32emu/engine"
	"rv32emu/loader"
	"rv32emu/stats"
	"rv32emu/trace"
)

const defaultImage = "tests/count.bin"

func main() {
	var (
		maxCycles   = flag.Uint64("max-cycles", 0, "maximum ticks before a forced stop (0 = use config/default)")
		configPath  = flag.String("config", "", "path to config.toml (default: XDG config dir)")
		enableTrace = flag.Bool("trace", false, "record a register-change trace")
		enableStats = flag.Bool("stats", false, "collect execution statistics")
		statsFormat = flag.String("stats-format", "text", "statistics output format: text, json, csv")
		apiServer   = flag.Bool("api-server", false, "serve the inspector HTTP API instead of running an image")
		apiPort     = flag.Int("port", 8090, "inspector API port (used with -api-server)")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	if *apiServer || cfg.Inspector.Enable {
		port := *apiPort
		if !flagWasSet("port") && cfg.Inspector.Port != 0 {
			port = cfg.Inspector.Port
		}
		runAPIServer(port)
		return
	}

	imagePath := defaultImage
	if flag.NArg() > 0 {
		imagePath = flag.Arg(0)
	} else if cfg.Execution.DefaultImage != "" {
		imagePath = cfg.Execution.DefaultImage
	}

	budget := cfg.Execution.MaxCycles
	if *maxCycles > 0 {
		budget = *maxCycles
	}

	e := engine.New()
	if err := loader.LoadFile(e, imagePath); err != nil {
		fmt.Fprintf(os.Stderr, "error loading image: %v\n", err)
		os.Exit(1)
	}

	tracing := *enableTrace || cfg.Trace.Enabled
	regTrace := trace.NewRegisterTrace(cfg.Trace.Capacity)
	regTrace.Enabled = tracing

	statistics := stats.NewStatistics()
	statistics.Enabled = *enableStats || cfg.Statistics.Enabled
	statistics.Start()

	format := *statsFormat
	if !flagWasSet("stats-format") && cfg.Statistics.Format != "" {
		format = cfg.Statistics.Format
	}

	start := time.Now()
	cycles := run(e, budget, regTrace, statistics)
	elapsed := time.Since(start)

	printSummary(e, cycles, elapsed)

	if statistics.Enabled {
		if err := writeStats(os.Stdout, statistics, format); err != nil {
			fmt.Fprintf(os.Stderr, "error writing statistics: %v\n", err)
		}
	}

	os.Exit(0)
}

// run executes ticks until the engine stops or budget is exhausted,
// diffing register state into regTrace and feeding statistics — the
// engine itself records neither (spec.md §5). It returns the number of
// ticks executed, counted unconditionally (spec.md §6's instruction count
// and derived rate are host output independent of -stats).
func run(e *engine.Engine, budget uint64, regTrace *trace.RegisterTrace, statistics *stats.Statistics) uint64 {
	var cycle uint64
	for budget == 0 || cycle < budget {
		if !e.Status().Running() {
			break
		}

		before := e.Registers
		pcWord := e.PC
		word, _ := e.Memory.ReadWord(pcWord * 4)
		e.Tick()
		cycle++

		if regTrace.Enabled {
			for i, after := range e.Registers {
				if after != before[i] {
					regTrace.Record(trace.RegisterChange{
						Cycle: cycle, PCWord: pcWord, Register: i,
						OldValue: before[i], NewValue: after,
					})
				}
			}
		}

		if statistics.Enabled {
			statistics.RecordInstruction(fmt.Sprintf("0x%02X", compositeOpcode(word)), pcWord)
			recordMemoryAndBranch(statistics, word, pcWord, e.PC)
		}
	}
	return cycle
}

// compositeOpcode derives the dispatch-key label for statistics from a raw
// instruction word; the engine does not expose mnemonics (spec.md has
// none — only the composite opcode key).
func compositeOpcode(word uint32) uint8 {
	opcode5 := (word >> 2) & 0x1F
	funct3 := (word >> 12) & 0x7
	return uint8((opcode5 << 3) | funct3)
}

// recordMemoryAndBranch classifies the instruction just executed — branch
// taken/not-taken, or a load/store's byte width — from its primary opcode
// and funct3, and the PC delta the tick produced.
func recordMemoryAndBranch(statistics *stats.Statistics, word uint32, pcBefore, pcAfter uint32) {
	opcode5 := (word >> 2) & 0x1F
	funct3 := (word >> 12) & 0x7

	switch opcode5 {
	case engine.OpcodeBranch:
		statistics.RecordBranch(pcAfter != pcBefore+1)
	case engine.OpcodeLoad:
		statistics.RecordMemoryRead(loadStoreWidth(funct3))
	case engine.OpcodeStore:
		statistics.RecordMemoryWrite(loadStoreWidth(funct3))
	}
}

// loadStoreWidth returns the byte width of a load/store funct3 selector.
// The load and store families share the same 0/1/2 encoding for byte/
// halfword/word, so one helper covers both (engine/constants.go).
func loadStoreWidth(funct3 uint32) uint64 {
	switch funct3 {
	case engine.Funct3LB, engine.Funct3LBU: // == Funct3SB
		return 1
	case engine.Funct3LH, engine.Funct3LHU: // == Funct3SH
		return 2
	default: // Funct3LW == Funct3SW
		return 4
	}
}

// printSummary prints the termination reason, instruction count, elapsed
// time, derived rate, and x1..x31 in hex and signed decimal (spec.md §6,
// verbatim format; x0 is hardwired and omitted).
func printSummary(e *engine.Engine, cycles uint64, elapsed time.Duration) {
	var rate float64
	if elapsed.Seconds() > 0 {
		rate = float64(cycles) / elapsed.Seconds()
	}

	status := e.Status()
	fmt.Printf("Execution stopped: %s\n", status)
	fmt.Printf("Instructions executed: %d\n", cycles)
	fmt.Printf("Elapsed: %d ms\n", elapsed.Milliseconds())
	fmt.Printf("Rate: %.2f instructions/sec\n\n", rate)

	for i := 1; i < engine.RegisterCount; i++ {
		v := e.Registers[i]
		fmt.Printf("x%-2d = 0x%08X  (%d)\n", i, v, int32(v))
	}
}

func writeStats(w *os.File, statistics *stats.Statistics, format string) error {
	switch format {
	case "json":
		return statistics.WriteJSON(w)
	case "csv":
		return statistics.WriteCSV(w)
	default:
		_, err := fmt.Fprint(w, statistics.String())
		return err
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// flagWasSet reports whether the named flag was explicitly passed on the
// command line, so config.toml only overrides flags the user did not
// pass.
func flagWasSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func runAPIServer(port int) {
	server := api.NewServer(port)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "inspector API error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-sigChan
	fmt.Println("\nshutting down inspector API...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error during shutdown: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("inspector API stopped")
}

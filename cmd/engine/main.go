package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/quantive/matching-engine/config"
	"github.com/quantive/matching-engine/internal/command"
	"github.com/quantive/matching-engine/internal/logger"
	"github.com/quantive/matching-engine/internal/matching"
	"github.com/quantive/matching-engine/internal/storage/memory"
	"github.com/quantive/matching-engine/internal/types"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	tape := memory.NewInMemoryTradeTape(cfg.Engine.TradeHistorySize)
	engine := matching.NewEngineWithTape(tape, log)
	defer func() {
		if err := engine.Close(); err != nil {
			log.Error("failed to close engine", zap.Error(err))
		}
	}()

	log.Info("matching engine started",
		zap.Int("trade_history_size", cfg.Engine.TradeHistorySize))

	run(engine, log, os.Stdin, os.Stdout)
}

// run reads commands line by line until END or EOF. Each command is matched
// to completion before the next line is read; END dumps the resting book to
// out and stops.
func run(engine *matching.Engine, log *zap.Logger, in *os.File, out *os.File) {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, err := command.Parse(line)
		if err != nil {
			log.Warn("rejected input line", zap.String("line", line), zap.Error(err))
			continue
		}

		switch cmd.Action {
		case types.SubmitAction:
			if _, err := engine.Submit(cmd); err != nil {
				log.Warn("order rejected", zap.String("order_id", cmd.ID), zap.Error(err))
			}
		case types.CancelAction:
			// NotFound is already logged by the engine; nothing else to do
			_ = engine.Cancel(cmd.ID)
		case types.EndAction:
			buys, sells := engine.Snapshot()
			fmt.Fprint(out, renderBook(buys, sells))
			return
		}
	}

	if err := scanner.Err(); err != nil {
		log.Error("input error", zap.Error(err))
	}
}

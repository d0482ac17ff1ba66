package main

import (
	"fmt"
	"log"
	"os"

	"github.com/park285/chess-rules/internal/adapter/chesspresenter"
	"github.com/park285/chess-rules/internal/chess"
	appcfg "github.com/park285/chess-rules/internal/config"
	"github.com/park285/chess-rules/internal/crosscheck"
	"github.com/park285/chess-rules/internal/msgcat"
	"github.com/park285/chess-rules/internal/obslog"
	"go.uber.org/zap"
)

func main() {
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = obslog.L().Sync() }()

	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	catalog, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		log.Fatalf("message catalog error: %v", err)
	}
	formatter := chesspresenter.NewFormatter(catalog)
	presenter := chesspresenter.NewPresenter(formatter, func(message string) error {
		_, err := fmt.Fprintln(os.Stdout, message)
		return err
	})

	gs, err := loadGame(cfg.SnapshotPath)
	if err != nil {
		log.Fatalf("load game: %s", formatter.Error(err, ""))
	}

	for _, spec := range cfg.Moves {
		move, err := toMove(spec)
		if err != nil {
			_ = presenter.Rejected(err, spec.From)
			os.Exit(1)
		}
		if err := gs.ApplyMove(move); err != nil {
			obslog.L().Warn("rulescheck_move_failed",
				zap.String("from", spec.From),
				zap.String("to", spec.To),
				zap.Error(err),
			)
			_ = presenter.Rejected(err, spec.From)
			os.Exit(1)
		}
	}

	if err := presenter.Report(gs, cfg.ShowAll); err != nil {
		log.Fatalf("report error: %v", err)
	}

	if cfg.CrossCheck {
		mismatches, err := crosscheck.Compare(gs)
		fmt.Println(formatter.CrossCheck(mismatches, err))
		if len(mismatches) > 0 {
			os.Exit(2)
		}
	}
}

func loadGame(path string) (*chess.GameState, error) {
	if path == "" {
		return chess.NewGame(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	return chess.LoadSnapshotYAML(raw)
}

func toMove(spec appcfg.MoveSpec) (chess.Move, error) {
	from, err := chess.ParsePosition(spec.From)
	if err != nil {
		return chess.Move{}, err
	}
	to, err := chess.ParsePosition(spec.To)
	if err != nil {
		return chess.Move{}, err
	}
	m := chess.Move{From: from, To: to}
	if spec.Promotion != "" {
		if m.Promotion, err = chess.ParsePieceType(spec.Promotion); err != nil {
			return chess.Move{}, fmt.Errorf("%v: %w", err, chess.ErrInvalidPromotion)
		}
	}
	return m, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AppConfig drives cmd/rulescheck.
type AppConfig struct {
	SnapshotPath string
	Moves        []MoveSpec
	MessagesDir  string
	CrossCheck   bool
	ShowAll      bool
}

// MoveSpec is one entry of RULES_MOVES, e.g. "e2-e4" or "a7-a8=Q".
type MoveSpec struct {
	From      string
	To        string
	Promotion string
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		CrossCheck: false,
		ShowAll:    true,
	}

	cfg.SnapshotPath = strings.TrimSpace(os.Getenv("RULES_SNAPSHOT"))
	cfg.MessagesDir = strings.TrimSpace(os.Getenv("RULES_MESSAGES_DIR"))

	if v := strings.TrimSpace(os.Getenv("RULES_CROSSCHECK")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.CrossCheck = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("RULES_SHOW_ALL")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ShowAll = b
		}
	}

	if v := strings.TrimSpace(os.Getenv("RULES_MOVES")); v != "" {
		moves, err := ParseMoves(v)
		if err != nil {
			return nil, err
		}
		cfg.Moves = moves
	}

	return cfg, nil
}

// ParseMoves splits a comma separated move list. Squares are validated later
// by the engine; only the shape is checked here.
func ParseMoves(raw string) ([]MoveSpec, error) {
	var out []MoveSpec
	for _, part := range strings.Split(raw, ",") {
		s := strings.TrimSpace(part)
		if s == "" {
			continue
		}
		var promo string
		if i := strings.IndexByte(s, '='); i >= 0 {
			promo = strings.TrimSpace(s[i+1:])
			s = strings.TrimSpace(s[:i])
			if promo == "" {
				return nil, fmt.Errorf("move %q: empty promotion", part)
			}
		}
		from, to, ok := strings.Cut(s, "-")
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if !ok || len(from) != 2 || len(to) != 2 {
			return nil, fmt.Errorf("move %q: want from-to like e2-e4", part)
		}
		out = append(out, MoveSpec{From: from, To: to, Promotion: promo})
	}
	return out, nil
}

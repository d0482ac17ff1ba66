package chesspresenter

import (
	"errors"
	"strings"

	"github.com/park285/chess-rules/internal/crosscheck"
	"github.com/park285/chess-rules/internal/msgcat"
	"github.com/park285/chess-rules/pkg/chessdto"
)

// Formatter renders DTOs into plain text using the message catalog.
type Formatter struct {
	catalog *msgcat.Catalog
}

func NewFormatter(catalog *msgcat.Catalog) *Formatter {
	return &Formatter{catalog: catalog}
}

func (f *Formatter) render(key string, data map[string]any, fallback string) string {
	if f == nil || f.catalog == nil {
		return fallback
	}
	return f.catalog.RenderOr(key, data, fallback)
}

func (f *Formatter) Status(v chessdto.StatusView) string {
	data := map[string]any{
		"Turn":   titleColor(v.Turn),
		"Winner": titleColor(v.Winner),
		"Loser":  titleColor(opponent(v.Winner)),
	}
	switch v.Status {
	case "WIN":
		if v.WinReason == "resignation" {
			return f.render("status.resignation", data, v.Status)
		}
		return f.render("status.checkmate", data, v.Status)
	case "DRAW":
		return f.render("status."+v.DrawReason, data, v.Status)
	}
	if v.InCheck {
		return f.render("status.in_check", data, v.Status)
	}
	return f.render("status.in_progress", data, v.Status)
}

func (f *Formatter) Destinations(d chessdto.Destinations) string {
	if len(d.To) == 0 {
		return f.render("destinations.none", map[string]any{"From": d.From}, d.From)
	}
	joined := strings.Join(d.To, " ")
	return f.render("destinations.list", map[string]any{"From": d.From, "To": joined}, d.From+": "+joined)
}

// Error renders err for a user. from fills templates that name the square.
func (f *Formatter) Error(err error, from string) string {
	de := ToDomainError(err)
	if de == nil {
		return ""
	}
	return f.render("error."+de.Code, map[string]any{"From": from}, de.Error())
}

// CrossCheck renders the outcome of crosscheck.Compare, one line per mismatch.
func (f *Formatter) CrossCheck(mismatches []crosscheck.Mismatch, err error) string {
	if errors.Is(err, crosscheck.ErrPawnsPresent) {
		return f.render("crosscheck.skipped", nil, "cross-check skipped")
	}
	if err != nil {
		return f.Error(err, "")
	}
	if len(mismatches) == 0 {
		return f.render("crosscheck.ok", nil, "cross-check ok")
	}
	lines := make([]string, 0, len(mismatches))
	for _, m := range mismatches {
		lines = append(lines, f.render("crosscheck.mismatch", map[string]any{
			"From":      m.From,
			"Engine":    strings.Join(m.Engine, " "),
			"Reference": strings.Join(m.Reference, " "),
		}, "cross-check mismatch on "+m.From))
	}
	return strings.Join(lines, "\n")
}

func titleColor(c string) string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(c[:1]) + c[1:]
}

func opponent(c string) string {
	switch c {
	case "white":
		return "black"
	case "black":
		return "white"
	}
	return ""
}

package chesspresenter

import (
	"strings"

	"github.com/park285/chess-rules/internal/chess"
)

// Presenter delivers formatted reports without coupling to the output sink.
type Presenter struct {
	formatter   *Formatter
	sendMessage func(message string) error
}

func NewPresenter(formatter *Formatter, sendMessage func(message string) error) *Presenter {
	return &Presenter{
		formatter:   formatter,
		sendMessage: sendMessage,
	}
}

func (p *Presenter) send(message string) error {
	if text := strings.TrimSpace(message); text == "" || p.sendMessage == nil {
		return nil
	}
	return p.sendMessage(message)
}

// Report sends the board, the status line and, when showAll is set, the legal
// destinations of every piece belonging to the side to move.
func (p *Presenter) Report(gs *chess.GameState, showAll bool) error {
	if p == nil || gs == nil {
		return nil
	}
	if err := p.send(gs.Board().String()); err != nil {
		return err
	}
	if err := p.send(p.formatter.Status(ToStatusView(gs))); err != nil {
		return err
	}

	turn, ok := gs.Turn()
	if !showAll || !ok {
		return nil
	}
	moves, err := gs.AllLegalMoves(turn)
	if err != nil {
		return p.send(p.formatter.Error(err, ""))
	}
	origins := make([]chess.Position, 0, len(moves))
	for from := range moves {
		origins = append(origins, from)
	}
	chess.SortPositions(origins)
	for _, from := range origins {
		if err := p.send(p.formatter.Destinations(ToDestinations(from, moves[from]))); err != nil {
			return err
		}
	}
	return nil
}

// Rejected reports a move the engine refused.
func (p *Presenter) Rejected(err error, from string) error {
	if p == nil {
		return nil
	}
	return p.send(p.formatter.Error(err, from))
}

package chessdto

// Snapshot is the portable form of a game position. Squares use algebraic
// coordinates ("e1"); colors are "white"/"black"; types are full names or
// SAN letters.
type Snapshot struct {
	Turn       string       `yaml:"turn" json:"turn"`
	Status     string       `yaml:"status,omitempty" json:"status,omitempty"`
	Winner     string       `yaml:"winner,omitempty" json:"winner,omitempty"`
	WinReason  string       `yaml:"win_reason,omitempty" json:"win_reason,omitempty"`
	DrawReason string       `yaml:"draw_reason,omitempty" json:"draw_reason,omitempty"`
	Pieces     []PieceSpec  `yaml:"pieces" json:"pieces"`
	History    []MoveRecord `yaml:"history,omitempty" json:"history,omitempty"`
	// Positions carries the repetition counters keyed by the engine's
	// position key. Optional.
	Positions map[string]int `yaml:"positions,omitempty" json:"positions,omitempty"`
}

type PieceSpec struct {
	Square    string `yaml:"square" json:"square"`
	Color     string `yaml:"color" json:"color"`
	Type      string `yaml:"type" json:"type"`
	Moved     bool   `yaml:"moved,omitempty" json:"moved,omitempty"`
	MoveCount int    `yaml:"move_count,omitempty" json:"move_count,omitempty"`
	ID        string `yaml:"id,omitempty" json:"id,omitempty"`
}

type MoveRecord struct {
	Piece     string `yaml:"piece" json:"piece"`
	From      string `yaml:"from" json:"from"`
	To        string `yaml:"to" json:"to"`
	Captured  string `yaml:"captured,omitempty" json:"captured,omitempty"`
	Promotion string `yaml:"promotion,omitempty" json:"promotion,omitempty"`
	Castle    bool   `yaml:"castle,omitempty" json:"castle,omitempty"`
}

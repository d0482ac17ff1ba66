package chessdto

// Destinations lists the legal targets of one origin square.
type Destinations struct {
	From string   `json:"from"`
	To   []string `json:"to"`
}

// StatusView is the caller-facing summary of a game.
type StatusView struct {
	Status     string `json:"status"`
	Turn       string `json:"turn,omitempty"`
	InCheck    bool   `json:"in_check"`
	Winner     string `json:"winner,omitempty"`
	WinReason  string `json:"win_reason,omitempty"`
	DrawReason string `json:"draw_reason,omitempty"`
	Moves      int    `json:"moves"`
	Repetition int    `json:"repetition"`
}

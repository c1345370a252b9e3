package protocol

// NewGameReq asks for a freshly dealt game
type NewGameReq struct {
	GameID string `json:"game_id,omitempty"`
	Seed   *int64 `json:"seed,omitempty"`
}

// MoveReq asks for cards to be moved between two locations.
// CardIndex -1 means the top card only.
type MoveReq struct {
	From      string `json:"from_location"`
	To        string `json:"to_location"`
	CardIndex *int   `json:"card_index,omitempty"`
}

// FlipReq asks for the top card of a tableau column to be turned face up
type FlipReq struct {
	Column int `json:"column"`
}

// Response is the envelope for every API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo describes why a request failed
type ErrorInfo struct {
	Code   ErrCode `json:"code"`
	Reason string  `json:"reason,omitempty"`
}

// ErrCode classifies failures on the wire
type ErrCode string

const (
	InvalidLocation ErrCode = "invalid_location"
	IllegalMove     ErrCode = "illegal_move"
	EmptySource     ErrCode = "empty_source"
	GameOver        ErrCode = "game_over"
	UnknownGame     ErrCode = "unknown_game"
	GameExists      ErrCode = "game_exists"
	SavingDisabled  ErrCode = "saving_disabled"
	BadRequest      ErrCode = "bad_request"
	Internal        ErrCode = "internal"
)

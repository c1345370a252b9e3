package protocol

import "time"

// CardState is the wire form of a card
type CardState struct {
	Rank   int    `json:"rank"`
	Suit   string `json:"suit"`
	FaceUp bool   `json:"face_up"`
}

// GameState is the snapshot of a game consumed by renderers
type GameState struct {
	GameID      string                 `json:"game_id"`
	Tableau     [][]CardState          `json:"tableau"`
	Foundations map[string][]CardState `json:"foundations"`
	Waste       []CardState            `json:"waste"`
	StockCount  int                    `json:"stock_count"`
	MovesCount  int                    `json:"moves_count"`
	GameWon     bool                   `json:"game_won"`
	Stage       string                 `json:"stage"`
}

// SavedGame is the complete persisted form of a game.
// Unlike GameState it carries the stock's contents.
type SavedGame struct {
	GameID      string                 `json:"game_id"`
	CreatedAt   time.Time              `json:"created_at"`
	Stock       []CardState            `json:"stock"`
	Waste       []CardState            `json:"waste"`
	Tableau     [][]CardState          `json:"tableau"`
	Foundations map[string][]CardState `json:"foundations"`
	MovesCount  int                    `json:"moves_count"`
	GameWon     bool                   `json:"game_won"`
	SavedAt     time.Time              `json:"saved_at,omitempty"`
}

// GameSummary is a list entry for a saved game
type GameSummary struct {
	GameID     string    `json:"game_id"`
	MovesCount int       `json:"moves_count"`
	GameWon    bool      `json:"game_won"`
	SavedAt    time.Time `json:"saved_at"`
}

// Statistics aggregates every saved game
type Statistics struct {
	TotalGames   int     `json:"total_games"`
	WonGames     int     `json:"won_games"`
	LostGames    int     `json:"lost_games"`
	WinRate      float64 `json:"win_rate"`
	TotalMoves   int     `json:"total_moves"`
	AverageMoves float64 `json:"average_moves"`
}

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/minaorangina/klondike/game"
	"github.com/minaorangina/klondike/protocol"
)

var ErrCorruptDatabase = errors.New("saved games file is unreadable")

// Metadata describes the saved games file
type Metadata struct {
	CreatedAt    time.Time `json:"created_at"`
	LastModified time.Time `json:"last_modified"`
	TotalGames   int       `json:"total_games"`
}

type database struct {
	Games    map[string]protocol.SavedGame `json:"games"`
	Metadata Metadata                      `json:"metadata"`
}

// SaveStore keeps finished and unfinished games between sessions
type SaveStore interface {
	Save(data protocol.SavedGame) error
	Load(gameID string) (protocol.SavedGame, error)
	List() []protocol.GameSummary
	Exists(gameID string) bool
	Delete(gameID string) error
	Clear() error
	Statistics() protocol.Statistics
	Metadata() Metadata
}

// FileStore is a SaveStore backed by a single JSON file.
// Every change rewrites the whole file.
type FileStore struct {
	path string
	now  func() time.Time

	mu   sync.RWMutex
	data database
}

// NewFileStore opens the saved games file at path, starting empty if it does not exist yet
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, now: time.Now}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		now := s.now()
		s.data = database{
			Games:    map[string]protocol.SavedGame{},
			Metadata: Metadata{CreatedAt: now, LastModified: now},
		}
		return s, nil

	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptDatabase, path, err)
	}
	if s.data.Games == nil {
		s.data.Games = map[string]protocol.SavedGame{}
	}

	log.Printf("loaded %d saved games from %s", len(s.data.Games), path)
	return s, nil
}

func (s *FileStore) Path() string {
	return s.path
}

// Save stores the game under its id, replacing any earlier save
func (s *FileStore) Save(data protocol.SavedGame) error {
	if data.GameID == "" {
		return fmt.Errorf("%w: missing game id", game.ErrCorruptGame)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data.SavedAt = s.now()
	games := s.copyGames()
	games[data.GameID] = data

	return s.commit(games)
}

func (s *FileStore) Load(gameID string) (protocol.SavedGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data.Games[gameID]
	if !ok {
		return protocol.SavedGame{}, fmt.Errorf("%w: %s", ErrUnknownGameID, gameID)
	}

	return data, nil
}

func (s *FileStore) Exists(gameID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.data.Games[gameID]
	return ok
}

// List summarises every saved game, most recently saved first
func (s *FileStore) List() []protocol.GameSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]protocol.GameSummary, 0, len(s.data.Games))
	for id, data := range s.data.Games {
		summaries = append(summaries, protocol.GameSummary{
			GameID:     id,
			MovesCount: data.MovesCount,
			GameWon:    data.GameWon,
			SavedAt:    data.SavedAt,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].SavedAt.Equal(summaries[j].SavedAt) {
			return summaries[i].SavedAt.After(summaries[j].SavedAt)
		}
		return summaries[i].GameID < summaries[j].GameID
	})

	return summaries
}

func (s *FileStore) Delete(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.Games[gameID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGameID, gameID)
	}

	games := s.copyGames()
	delete(games, gameID)

	return s.commit(games)
}

// Clear deletes every saved game
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(map[string]protocol.SavedGame{})
}

func (s *FileStore) Statistics() protocol.Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats protocol.Statistics
	for _, data := range s.data.Games {
		stats.TotalGames++
		if data.GameWon {
			stats.WonGames++
		}
		stats.TotalMoves += data.MovesCount
	}
	stats.LostGames = stats.TotalGames - stats.WonGames

	if stats.TotalGames > 0 {
		stats.WinRate = float64(stats.WonGames) / float64(stats.TotalGames) * 100
		stats.AverageMoves = math.Round(float64(stats.TotalMoves)/float64(stats.TotalGames)*100) / 100
	}

	return stats
}

func (s *FileStore) Metadata() Metadata {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.data.Metadata
}

// Export writes one saved game to its own file
func (s *FileStore) Export(gameID, path string) error {
	data, err := s.Load(gameID)
	if err != nil {
		return err
	}

	return writeJSON(path, data)
}

// Import reads a game written by Export and saves it.
// An empty gameID keeps the id in the file.
func (s *FileStore) Import(path, gameID string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	var data protocol.SavedGame
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", game.ErrCorruptGame, path, err)
	}

	if gameID == "" {
		gameID = data.GameID
	}
	if gameID == "" {
		gameID = "imported_" + strconv.FormatInt(s.now().Unix(), 10)
	}
	data.GameID = gameID

	if _, err := game.Deserialize(data); err != nil {
		return "", err
	}

	if err := s.Save(data); err != nil {
		return "", err
	}
	return gameID, nil
}

// Backup copies the whole database to path
func (s *FileStore) Backup(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return writeJSON(path, s.data)
}

func (s *FileStore) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return fmt.Sprintf("FileStore(path=%s, games=%d)", s.path, len(s.data.Games))
}

func (s *FileStore) copyGames() map[string]protocol.SavedGame {
	games := make(map[string]protocol.SavedGame, len(s.data.Games)+1)
	for id, data := range s.data.Games {
		games[id] = data
	}
	return games
}

// commit writes games to disk and only then makes them the store's contents.
// It must be called with the write lock held.
func (s *FileStore) commit(games map[string]protocol.SavedGame) error {
	next := database{Games: games, Metadata: s.data.Metadata}
	next.Metadata.LastModified = s.now()
	next.Metadata.TotalGames = len(games)

	if err := writeJSON(s.path, next); err != nil {
		return err
	}

	s.data = next
	return nil
}

// writeJSON replaces path atomically
func writeJSON(path string, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

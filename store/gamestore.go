package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/minaorangina/klondike/engine"
)

var (
	ErrUnknownGameID = errors.New("unknown game ID")
	ErrGameExists    = errors.New("game already exists")
)

// GameStore holds the games currently being played
type GameStore interface {
	FindGame(gameID string) engine.GameEngine
	AddGame(game engine.GameEngine) error
	ReplaceGame(game engine.GameEngine)
	RemoveGame(gameID string) error
	GameIDs() []string
}

// InMemoryGameStore maps game id to game engine
type InMemoryGameStore struct {
	mu    sync.RWMutex
	Games map[string]engine.GameEngine
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		Games: map[string]engine.GameEngine{},
	}
}

func (s *InMemoryGameStore) FindGame(ID string) engine.GameEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.Games[ID]
	if !ok {
		return nil
	}

	return game
}

func (s *InMemoryGameStore) AddGame(game engine.GameEngine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.Games[game.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrGameExists, game.ID())
	}

	s.Games[game.ID()] = game
	return nil
}

// ReplaceGame stores game, closing any engine already held under its id
func (s *InMemoryGameStore) ReplaceGame(game engine.GameEngine) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, exists := s.Games[game.ID()]; exists && old != game {
		old.Close()
	}

	s.Games[game.ID()] = game
}

// RemoveGame closes the game's engine and forgets it
func (s *InMemoryGameStore) RemoveGame(ID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.Games[ID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGameID, ID)
	}

	game.Close()
	delete(s.Games, ID)
	return nil
}

func (s *InMemoryGameStore) GameIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.Games))
	for id := range s.Games {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

package cli

import (
	"errors"
	"testing"

	"github.com/minaorangina/klondike/deck"
	"github.com/minaorangina/klondike/game"
	utils "github.com/minaorangina/klondike/internal"
)

func TestParseCommand(t *testing.T) {
	tt := []struct {
		name  string
		input string
		want  Command
	}{
		{"empty line shows the board", "", Command{Kind: Show}},
		{"draw", "draw", Command{Kind: Draw, Index: game.TopCard}},
		{"draw shorthand", " D ", Command{Kind: Draw, Index: game.TopCard}},
		{"move top card", "move waste tableau_3", Command{Kind: Move, From: game.WasteLocation(), To: game.TableauLocation(3), Index: game.TopCard}},
		{"move with shorthands", "m w fh", Command{Kind: Move, From: game.WasteLocation(), To: game.FoundationLocation(deck.Hearts), Index: game.TopCard}},
		{"move a run", "m t0 t6 2", Command{Kind: Move, From: game.TableauLocation(0), To: game.TableauLocation(6), Index: 2}},
		{"move to foundation by name", "move t2 foundation_spades", Command{Kind: Move, From: game.TableauLocation(2), To: game.FoundationLocation(deck.Spades), Index: game.TopCard}},
		{"flip", "flip 4", Command{Kind: Flip, Column: 4, Index: game.TopCard}},
		{"flip shorthand", "f t4", Command{Kind: Flip, Column: 4, Index: game.TopCard}},
		{"save", "save", Command{Kind: Save, Index: game.TopCard}},
		{"help", "?", Command{Kind: Help, Index: game.TopCard}},
		{"quit", "q", Command{Kind: Quit, Index: game.TopCard}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCommand(tc.input)
			utils.AssertNoError(t, err)
			if got != tc.want {
				utils.TableFailureMessage(t, tc.name, got, tc.want)
			}
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	tt := []struct {
		name  string
		input string
		want  error
	}{
		{"unknown command", "shuffle", ErrUnknownCommand},
		{"move without a destination", "move w", ErrBadArguments},
		{"move with too many arguments", "move w t1 1 2", ErrBadArguments},
		{"move with a bad index", "move t0 t1 top", ErrBadArguments},
		{"flip without a column", "flip", ErrBadArguments},
		{"flip with a bad column", "flip x", ErrBadArguments},
		{"draw with arguments", "draw 3", ErrBadArguments},
		{"unknown pile", "move w t9", game.ErrInvalidLocation},
		{"unknown foundation", "move w fx", game.ErrInvalidLocation},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCommand(tc.input)
			if !errors.Is(err, tc.want) {
				utils.TableFailureMessage(t, tc.name, err, tc.want)
			}
		})
	}
}

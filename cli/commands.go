package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/minaorangina/klondike/deck"
	"github.com/minaorangina/klondike/game"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArguments   = errors.New("bad arguments")
)

type CommandKind int

const (
	Draw CommandKind = iota
	Move
	Flip
	Show
	Save
	Help
	Quit
)

// Command is one parsed line of input
type Command struct {
	Kind   CommandKind
	From   game.Location
	To     game.Location
	Index  int
	Column int
}

var commandNames = map[string]CommandKind{
	"draw": Draw, "d": Draw,
	"move": Move, "m": Move,
	"flip": Flip, "f": Flip,
	"show": Show,
	"save": Save,
	"help": Help, "h": Help, "?": Help,
	"quit": Quit, "q": Quit, "exit": Quit,
}

// ParseCommand reads commands such as "draw", "move w t3" or "move tableau_0 tableau_4 2"
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{Kind: Show}, nil
	}

	kind, ok := commandNames[fields[0]]
	if !ok {
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, fields[0])
	}
	args := fields[1:]
	cmd := Command{Kind: kind, Index: game.TopCard}

	switch kind {
	case Move:
		if len(args) < 2 || len(args) > 3 {
			return Command{}, fmt.Errorf("%w: move needs a source, a destination and optionally a card index", ErrBadArguments)
		}

		var err error
		if cmd.From, err = parseLocation(args[0]); err != nil {
			return Command{}, err
		}
		if cmd.To, err = parseLocation(args[1]); err != nil {
			return Command{}, err
		}
		if len(args) == 3 {
			if cmd.Index, err = strconv.Atoi(args[2]); err != nil {
				return Command{}, fmt.Errorf("%w: card index %q is not a number", ErrBadArguments, args[2])
			}
		}

	case Flip:
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%w: flip needs a column", ErrBadArguments)
		}

		column, err := strconv.Atoi(strings.TrimPrefix(args[0], "t"))
		if err != nil {
			return Command{}, fmt.Errorf("%w: column %q is not a number", ErrBadArguments, args[0])
		}
		cmd.Column = column

	default:
		if len(args) != 0 {
			return Command{}, fmt.Errorf("%w: %s takes no arguments", ErrBadArguments, fields[0])
		}
	}

	return cmd, nil
}

var suitShorthands = map[byte]deck.Suit{
	'c': deck.Clubs,
	'd': deck.Diamonds,
	'h': deck.Hearts,
	's': deck.Spades,
}

// parseLocation accepts the wire names plus the shorthands s, w, t0-t6 and fc, fd, fh, fs
func parseLocation(arg string) (game.Location, error) {
	switch {
	case arg == "s":
		return game.StockLocation(), nil
	case arg == "w":
		return game.WasteLocation(), nil
	case len(arg) == 2 && arg[0] == 't' && arg[1] >= '0' && arg[1] <= '9':
		return game.ParseLocation("tableau_" + arg[1:])
	case len(arg) == 2 && arg[0] == 'f':
		if suit, ok := suitShorthands[arg[1]]; ok {
			return game.FoundationLocation(suit), nil
		}
	}

	return game.ParseLocation(arg)
}

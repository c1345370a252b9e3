package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/minaorangina/klondike/deck"
)

// LocationKind says which kind of pile a Location points at
type LocationKind int

const (
	StockLoc LocationKind = iota
	WasteLoc
	TableauLoc
	FoundationLoc
)

// Location identifies a single pile in the game.
// Column is only meaningful for tableau locations and Suit for foundations.
type Location struct {
	Kind   LocationKind
	Column int
	Suit   deck.Suit
}

func StockLocation() Location {
	return Location{Kind: StockLoc}
}

func WasteLocation() Location {
	return Location{Kind: WasteLoc}
}

func TableauLocation(column int) Location {
	return Location{Kind: TableauLoc, Column: column}
}

func FoundationLocation(suit deck.Suit) Location {
	return Location{Kind: FoundationLoc, Suit: suit}
}

// ParseLocation reads identifiers of the form stock, waste, tableau_0..6
// and foundation_<suit>
func ParseLocation(s string) (Location, error) {
	switch s {
	case "stock":
		return StockLocation(), nil
	case "waste":
		return WasteLocation(), nil
	}

	if rest, ok := strings.CutPrefix(s, "tableau_"); ok {
		if len(rest) != 1 || rest[0] < '0' || rest[0] > '9' {
			return Location{}, invalidLocation("%q", s)
		}
		column, _ := strconv.Atoi(rest)
		loc := TableauLocation(column)
		if !loc.valid() {
			return Location{}, invalidLocation("%q", s)
		}
		return loc, nil
	}

	if rest, ok := strings.CutPrefix(s, "foundation_"); ok {
		suit, err := deck.ParseSuit(rest)
		if err != nil || rest != suit.ID() {
			return Location{}, invalidLocation("%q", s)
		}
		return FoundationLocation(suit), nil
	}

	return Location{}, invalidLocation("%q", s)
}

func (l Location) valid() bool {
	switch l.Kind {
	case StockLoc, WasteLoc:
		return true
	case TableauLoc:
		return l.Column >= 0 && l.Column < NumColumns
	case FoundationLoc:
		return l.Suit.ID() != ""
	}
	return false
}

// Equals reports whether both locations name the same pile
func (l Location) Equals(other Location) bool {
	if l.Kind != other.Kind {
		return false
	}
	switch l.Kind {
	case TableauLoc:
		return l.Column == other.Column
	case FoundationLoc:
		return l.Suit == other.Suit
	}
	return true
}

func (l Location) String() string {
	switch l.Kind {
	case StockLoc:
		return "stock"
	case WasteLoc:
		return "waste"
	case TableauLoc:
		return fmt.Sprintf("tableau_%d", l.Column)
	case FoundationLoc:
		return "foundation_" + l.Suit.ID()
	}
	return fmt.Sprintf("location(%d)", int(l.Kind))
}

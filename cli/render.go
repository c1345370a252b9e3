package cli

import (
	"fmt"
	"strings"

	"github.com/minaorangina/klondike/deck"
	"github.com/minaorangina/klondike/protocol"
	"github.com/pterm/pterm"
)

const hiddenCard = "[??]"

func renderCard(c protocol.CardState) string {
	if !c.FaceUp {
		return pterm.FgDarkGray.Sprint(hiddenCard)
	}

	suit, err := deck.ParseSuit(c.Suit)
	if err != nil {
		return "[" + c.Suit + "]"
	}

	text := fmt.Sprintf("[%s%s]", deck.Rank(c.Rank).Symbol(), suit.Symbol())
	if suit.Color() == deck.Red {
		return pterm.FgRed.Sprint(text)
	}
	return pterm.FgLightWhite.Sprint(text)
}

func renderTop(cards []protocol.CardState) string {
	if len(cards) == 0 {
		return "[  ]"
	}
	return renderCard(cards[len(cards)-1])
}

// RenderState draws the board: stock, waste and foundations on top, then the seven columns
func RenderState(state protocol.GameState) string {
	var b strings.Builder

	stock := "[  ]"
	if state.StockCount > 0 {
		stock = pterm.FgDarkGray.Sprint(hiddenCard)
	}
	fmt.Fprintf(&b, "stock %s (%d)   waste %s (%d)\n", stock, state.StockCount, renderTop(state.Waste), len(state.Waste))

	for _, suit := range deck.Suits {
		fmt.Fprintf(&b, "%s %s  ", suit.Symbol(), renderTop(state.Foundations[suit.ID()]))
	}
	b.WriteString("\n\n")

	depth := 0
	for _, column := range state.Tableau {
		if len(column) > depth {
			depth = len(column)
		}
	}

	for i := range state.Tableau {
		fmt.Fprintf(&b, " t%d   ", i)
	}
	b.WriteString("\n")
	for row := 0; row < depth; row++ {
		for _, column := range state.Tableau {
			if row < len(column) {
				b.WriteString(renderCard(column[row]))
			} else {
				b.WriteString("    ")
			}
			b.WriteString("  ")
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nmoves: %s\n", pterm.LightCyan(state.MovesCount))
	return b.String()
}

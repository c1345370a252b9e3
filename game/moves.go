package game

import "fmt"

// DrawFromStock turns the next stock card onto the waste.
// When the stock is empty the waste is turned back over into the stock.
func (g *Game) DrawFromStock() error {
	switch {
	case !g.stock.IsEmpty():
		c := g.stock.takeFront()
		g.waste.push(c.Turned(true))

	case !g.waste.IsEmpty():
		recycled := g.waste.takeFrom(0)
		for i := len(recycled) - 1; i >= 0; i-- {
			g.stock.push(recycled[i].Turned(false))
		}

	default:
		return emptySource(StockLocation())
	}

	g.finishMove()
	return nil
}

// MoveCard moves the card at cardIndex in from, and every card above it, onto to.
// cardIndex TopCard (-1) moves only the top card.
func (g *Game) MoveCard(from, to Location, cardIndex int) error {
	m := Move{From: from, To: to, Index: cardIndex}
	if err := g.Validate(m); err != nil {
		return err
	}

	g.apply(m)
	return nil
}

// FlipTableau turns the top card of a column face up.
// It is not counted as a move.
func (g *Game) FlipTableau(column int) error {
	loc := TableauLocation(column)
	if !loc.valid() {
		return invalidLocation("%s", loc)
	}

	p := g.tableau[column]
	top, ok := p.Top()
	if !ok {
		return emptySource(loc)
	}
	if top.FaceUp() {
		return illegal(NothingToFlip, "top card of %s is already face up", loc)
	}

	p.turnTop(true)
	return nil
}

// apply performs a validated move
func (g *Game) apply(m Move) {
	start, err := g.check(m)
	if err != nil {
		panic(fmt.Sprintf("applying unchecked move %s -> %s: %v", m.From, m.To, err))
	}

	unit := g.pile(m.From).takeFrom(start)
	g.pile(m.To).push(unit...)

	g.finishMove()
}

func (g *Game) finishMove() {
	g.movesCount++
	g.settle()
}

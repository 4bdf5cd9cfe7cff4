package deck

import (
	"testing"

	"github.com/lox/richup/internal/board"
)

// seqRand returns 0, 1, 2, ... modulo n.
type seqRand struct {
	n int
}

func (r *seqRand) IntN(n int) int {
	v := r.n % n
	r.n++
	return v
}

func TestDecksAreNonEmpty(t *testing.T) {
	for _, d := range []*Deck{Surprise(), Treasure()} {
		if d.Size() == 0 {
			t.Errorf("%s deck is empty", d.Name())
		}
	}
}

func TestDrawIsDeterministicAndNeverConsumes(t *testing.T) {
	d := Surprise()
	rng := &seqRand{}
	for i := 0; i < d.Size()*2; i++ {
		card := d.Draw(rng)
		want := d.Cards()[i%d.Size()]
		if card != want {
			t.Fatalf("draw %d = %q, want %q", i, card.Name, want.Name)
		}
	}
	if d.Size() != len(d.Cards()) {
		t.Errorf("deck shrank to %d cards", len(d.Cards()))
	}
}

// A relocation that lands on another draw tile would trigger a second draw
// mid-resolution, so no Move card may point at one.
func TestMoveDestinationsAvoidDrawTiles(t *testing.T) {
	tiles := board.Tiles()
	for _, d := range []*Deck{Surprise(), Treasure()} {
		for _, card := range d.Cards() {
			if card.Effect != Move {
				continue
			}
			if card.Destination < 0 || card.Destination >= board.Size {
				t.Errorf("%s: %q destination %d is off the board", d.Name(), card.Name, card.Destination)
				continue
			}
			switch tiles[card.Destination].Type {
			case board.Surprise, board.Treasure:
				t.Errorf("%s: %q relocates onto draw tile %d", d.Name(), card.Name, card.Destination)
			}
		}
	}
}

func TestEachPlayerIsAMoneyEffect(t *testing.T) {
	for _, d := range []*Deck{Surprise(), Treasure()} {
		for _, card := range d.Cards() {
			if card.EachPlayer && card.Effect != Money {
				t.Errorf("%s: %q sets EachPlayer on a %s effect", d.Name(), card.Name, card.Effect)
			}
		}
	}
}

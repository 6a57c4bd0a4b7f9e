package core

import (
	"math/rand/v2"
	"strings"
)

// Symbol is one entry of the tile alphabet.
type Symbol uint8

const (
	SymbolStar Symbol = iota
	SymbolClub
	SymbolDiamond
	SymbolSpade
	SymbolHeart
	SymbolSun
	SymbolUmbrella
	SymbolNote
	SymbolCount // Sentinel value for iteration
)

// StarSymbol is the symbol counted towards the booster.
const StarSymbol = SymbolStar

var symbolNames = [SymbolCount]string{
	"star", "club", "diamond", "spade", "heart", "sun", "umbrella", "note",
}

var symbolGlyphs = [SymbolCount]rune{
	'★', '♣', '♦', '♠', '♥', '☀', '☂', '♫',
}

// String returns the name of the symbol.
func (s Symbol) String() string {
	if s >= SymbolCount {
		return "unknown"
	}
	return symbolNames[s]
}

// Glyph returns the display character for the symbol.
func (s Symbol) Glyph() rune {
	if s >= SymbolCount {
		return '?'
	}
	return symbolGlyphs[s]
}

// ParseSymbol converts a name to a Symbol.
func ParseSymbol(name string) (Symbol, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range symbolNames {
		if n == name {
			return Symbol(i), true
		}
	}
	return 0, false
}

// Alphabet is the number of symbols in play, always starting at SymbolStar.
// A board with Alphabet(5) only ever rolls star, club, diamond, spade and heart.
type Alphabet int

// DefaultAlphabet uses every symbol.
const DefaultAlphabet = Alphabet(SymbolCount)

// MinAlphabet is the smallest alphabet that still lets a board settle.
const MinAlphabet = Alphabet(3)

// Valid reports whether the alphabet size is usable.
func (a Alphabet) Valid() bool {
	return a >= MinAlphabet && a <= DefaultAlphabet
}

// Roll draws a uniformly random symbol from the alphabet.
func (a Alphabet) Roll(rng Source) Symbol {
	return Symbol(rng.IntN(int(a)))
}

// Symbols returns every symbol in the alphabet.
func (a Alphabet) Symbols() []Symbol {
	out := make([]Symbol, 0, int(a))
	for i := 0; i < int(a); i++ {
		out = append(out, Symbol(i))
	}
	return out
}

// Source is the random source threaded through board generation and refills.
// *rand.Rand from math/rand/v2 satisfies it; tests plug in scripted sources.
type Source interface {
	IntN(n int) int
}

// NewSource returns the PCG source used for a seed. Equal seeds give equal
// games.
func NewSource(seed int64) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

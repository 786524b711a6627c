// ABOUTME: DTMF symbol alphabet and frequency table
// ABOUTME: Resolves keypad characters to symbols and their frequency pairs
package dtmf

import (
	"errors"
	"fmt"
)

// Symbol is a keypad key, indexed 0-15
type Symbol uint8

// Symbols that are not decimal digits
const (
	SymbolA     Symbol = 10
	SymbolB     Symbol = 11
	SymbolC     Symbol = 12
	SymbolD     Symbol = 13
	SymbolStar  Symbol = 14
	SymbolPound Symbol = 15

	// NumSymbols is the size of the alphabet
	NumSymbols = 16
)

const symbolRunes = "0123456789ABCD*#"

// Pair is the low (row) and high (column) frequency of a key, in hertz
type Pair struct {
	Low  float64
	High float64
}

// LowGroup holds the row frequencies, top to bottom
var LowGroup = [4]float64{697, 770, 852, 941}

// HighGroup holds the column frequencies, left to right
var HighGroup = [4]float64{1209, 1336, 1477, 1633}

// Keypad is the standard 4x4 layout; Keypad[row][col] sounds LowGroup[row] + HighGroup[col]
var Keypad = [4][4]Symbol{
	{1, 2, 3, SymbolA},
	{4, 5, 6, SymbolB},
	{7, 8, 9, SymbolC},
	{SymbolStar, 0, SymbolPound, SymbolD},
}

var pairs = [NumSymbols]Pair{
	{941, 1336}, // 0
	{697, 1209}, // 1
	{697, 1336}, // 2
	{697, 1477}, // 3
	{770, 1209}, // 4
	{770, 1336}, // 5
	{770, 1477}, // 6
	{852, 1209}, // 7
	{852, 1336}, // 8
	{852, 1477}, // 9
	{697, 1633}, // A
	{770, 1633}, // B
	{852, 1633}, // C
	{941, 1633}, // D
	{941, 1209}, // *
	{941, 1477}, // #
}

// ErrInvalidSymbol matches any *InvalidSymbolError via errors.Is
var ErrInvalidSymbol = errors.New("invalid symbol")

// InvalidSymbolError reports a character outside 0-9, A-D, * and #
type InvalidSymbolError struct {
	Rune rune
	// Position is the rune offset within the parsed input, or -1
	Position int
}

func (e *InvalidSymbolError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("invalid symbol %q (supported: 0-9, A-D, *, #)", e.Rune)
	}
	return fmt.Sprintf("invalid symbol %q at position %d (supported: 0-9, A-D, *, #)", e.Rune, e.Position)
}

// Is reports whether target is ErrInvalidSymbol
func (e *InvalidSymbolError) Is(target error) bool {
	return target == ErrInvalidSymbol
}

// Resolve maps a keypad character to its symbol. Letters are case-insensitive.
func Resolve(r rune) (Symbol, error) {
	switch {
	case r >= '0' && r <= '9':
		return Symbol(r - '0'), nil
	case r >= 'A' && r <= 'D':
		return SymbolA + Symbol(r-'A'), nil
	case r >= 'a' && r <= 'd':
		return SymbolA + Symbol(r-'a'), nil
	case r == '*':
		return SymbolStar, nil
	case r == '#':
		return SymbolPound, nil
	}
	return 0, &InvalidSymbolError{Rune: r, Position: -1}
}

// ParseSequence resolves every character of s, failing on the first invalid one
func ParseSequence(s string) ([]Symbol, error) {
	symbols := make([]Symbol, 0, len(s))
	pos := 0
	for _, r := range s {
		sym, err := Resolve(r)
		if err != nil {
			return nil, &InvalidSymbolError{Rune: r, Position: pos}
		}
		symbols = append(symbols, sym)
		pos++
	}
	return symbols, nil
}

// Alphabet returns all symbols in index order
func Alphabet() []Symbol {
	symbols := make([]Symbol, NumSymbols)
	for i := range symbols {
		symbols[i] = Symbol(i)
	}
	return symbols
}

// Valid reports whether s is inside the alphabet
func (s Symbol) Valid() bool {
	return s < NumSymbols
}

// Rune returns the keypad character for s
func (s Symbol) Rune() rune {
	if !s.Valid() {
		return '?'
	}
	return rune(symbolRunes[s])
}

func (s Symbol) String() string {
	return string(s.Rune())
}

// Pair returns the frequency pair for s. Invalid symbols yield the zero Pair.
func (s Symbol) Pair() Pair {
	if !s.Valid() {
		return Pair{}
	}
	return pairs[s]
}

// FormatSequence renders symbols back into keypad characters
func FormatSequence(symbols []Symbol) string {
	buf := make([]byte, len(symbols))
	for i, s := range symbols {
		buf[i] = byte(s.Rune())
	}
	return string(buf)
}

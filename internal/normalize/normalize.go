// Package normalize canonicalizes submitted items so that duplicates can be
// detected regardless of case, accents, punctuation or spacing.
package normalize

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MinLetters is the minimum number of letters an item must contain.
const MinLetters = 2

var (
	ErrTooFewLetters = errors.New("too few letters")
	ErrInvalid       = errors.New("invalid item text")
)

// Result is the outcome of normalizing a single raw item.
type Result struct {
	Display    string
	Normalized string
	Valid      bool
	Err        error
}

// keep reports whether a rune survives canonicalization.
func keep(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r)
}

// Normalize trims raw for display and derives the comparison key.
//
// The key is built by decomposing (NFD), dropping everything that is not a
// letter, digit or whitespace (combining accents included), lowercasing and
// collapsing whitespace runs. "Spider-Man" and "spiderman" share a key.
func Normalize(raw string) Result {
	display := strings.TrimSpace(raw)

	letters := 0
	for _, r := range display {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if letters < MinLetters {
		return Result{Display: display, Err: ErrTooFewLetters}
	}

	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.Predicate(func(r rune) bool { return !keep(r) })),
		cases.Lower(language.Und),
	)
	stripped, _, err := transform.String(t, display)
	if err != nil {
		return Result{Display: display, Err: ErrInvalid}
	}

	key := strings.Join(strings.Fields(stripped), " ")
	if key == "" {
		return Result{Display: display, Err: ErrInvalid}
	}

	return Result{Display: display, Normalized: key, Valid: true}
}

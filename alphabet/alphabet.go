// Package alphabet holds the alphabets the digital houses ship with and the
// normalisation applied to author-supplied targets.
package alphabet

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/casitadigital/casita/codec"
	"github.com/casitadigital/casita/errors"
)

const (
	// LettersSymbols is the single-letter house alphabet: space, the Spanish
	// capitals and four punctuation marks.
	LettersSymbols = " ABCDEFGHIJKLMNÑOPQRSTUVWXYZ.,!?"

	// WordSymbols is the word house alphabet. '?' marks a letter the learner
	// has not found yet.
	WordSymbols = "ABCDEFGHIJKLMNOPQRSTUVWXYZÑ?"

	Placeholder = '?'
)

var (
	Letters = codec.MustNew([]rune(LettersSymbols))
	Word    = codec.MustNew([]rune(WordSymbols))
)

var byName = map[string]*codec.Codec{
	"letters": Letters,
	"word":    Word,
}

// Lookup returns a built-in alphabet by name.
func Lookup(name string) (*codec.Codec, error) {
	c, ok := byName[strings.ToLower(name)]
	if !ok {
		return nil, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Value(name).
			Detail("unknown alphabet %q (known: %s)", name, strings.Join(Names(), ", ")).
			Build()
	}
	return c, nil
}

// Names lists the built-in alphabet names in sorted order.
func Names() []string {
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Normalize composes s to NFC and upper-cases it, so "niño" typed with a
// combining tilde still spells "NIÑO".
func Normalize(s string) string {
	return strings.ToUpper(norm.NFC.String(s))
}

// Mask replaces every unaccented capital letter with Placeholder. It gives
// the initial face of a word house whose learner has found nothing yet.
func Mask(word string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return Placeholder
		}
		return r
	}, word)
}

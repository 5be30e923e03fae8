// Package codec converts between fixed-width bit vectors and symbols of an
// ordered alphabet.
//
// Every symbol occupies the same number of bits, the smallest width w with
// 2^w ≥ len(alphabet). A bank of w binary switches therefore always spells
// exactly one symbol, and a word of n symbols is n·w switches:
//
//	alphabet  " ABCDEFGHIJKLMNÑOPQRSTUVWXYZ.,!?"   (32 symbols, width 5)
//	'J'       index 10                              01010
//	"HOLA"    8, 16, 12, 1                          01000 10000 01100 00001
//
// # Out-of-range indices
//
// A width-w vector can name indices up to 2^w-1, which may exceed the
// alphabet. Those indices decode to the codec's sentinel rune rather than an
// error, since a learner passes through them while toggling switches. The
// sentinel defaults to DefaultSentinel and is never an alphabet symbol.
//
// # Errors
//
// Encoding a symbol that is not in the alphabet returns an
// errors.KindInvalidSymbol error. Decoding a vector with non-binary digits,
// or a single-character vector of the wrong length, returns an
// errors.KindInvalidBitVector error.
//
// A Codec is immutable after New and safe for concurrent use.
package codec

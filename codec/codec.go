package codec

import (
	"math/bits"
	"strconv"
	"strings"

	"github.com/casitadigital/casita/errors"
)

// DefaultSentinel is returned for indices past the end of the alphabet.
const DefaultSentinel = '_'

// BitWidth returns the number of bits needed to index an alphabet of the
// given size, i.e. ceil(log2(size)). Sizes below 2 need no bits at all.
func BitWidth(size int) int {
	if size <= 1 {
		return 0
	}
	return bits.Len(uint(size - 1))
}

// Codec maps bit vectors to symbols of a fixed alphabet and back.
type Codec struct {
	index    map[rune]int
	symbols  []rune
	width    int
	sentinel rune
}

// Option configures a Codec.
type Option func(*Codec)

// WithSentinel sets the rune returned for out-of-range indices.
func WithSentinel(r rune) Option {
	return func(c *Codec) {
		c.sentinel = r
	}
}

// New creates a codec over symbols. The alphabet must be non-empty, its
// symbols unique, and the sentinel must not be one of them.
func New(symbols []rune, opts ...Option) (*Codec, error) {
	if len(symbols) == 0 {
		return nil, errors.InvalidAlphabet("alphabet is empty")
	}

	c := &Codec{
		symbols:  make([]rune, len(symbols)),
		index:    make(map[rune]int, len(symbols)),
		width:    BitWidth(len(symbols)),
		sentinel: DefaultSentinel,
	}
	copy(c.symbols, symbols)

	for _, opt := range opts {
		opt(c)
	}

	for i, r := range c.symbols {
		if prev, dup := c.index[r]; dup {
			return nil, errors.New(errors.PhaseAlphabet, errors.KindInvalidAlphabet).
				Path(strconv.Itoa(i)).
				Value(r).
				Detail("symbol %q repeats index %d", r, prev).
				Build()
		}
		c.index[r] = i
	}

	if _, clash := c.index[c.sentinel]; clash {
		return nil, errors.New(errors.PhaseAlphabet, errors.KindInvalidAlphabet).
			Value(c.sentinel).
			Detail("sentinel %q is an alphabet symbol", c.sentinel).
			Build()
	}

	return c, nil
}

// MustNew is like New but panics on error. It is meant for package-level
// alphabets known to be valid.
func MustNew(symbols []rune, opts ...Option) *Codec {
	c, err := New(symbols, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// BitWidth returns the number of bits per symbol.
func (c *Codec) BitWidth() int {
	return c.width
}

// Size returns the number of symbols in the alphabet.
func (c *Codec) Size() int {
	return len(c.symbols)
}

// Alphabet returns a copy of the alphabet in index order.
func (c *Codec) Alphabet() []rune {
	out := make([]rune, len(c.symbols))
	copy(out, c.symbols)
	return out
}

// Sentinel returns the rune used for out-of-range indices.
func (c *Codec) Sentinel() rune {
	return c.sentinel
}

// Contains reports whether r is an alphabet symbol.
func (c *Codec) Contains(r rune) bool {
	_, ok := c.index[r]
	return ok
}

// Index returns the unsigned value of a single-symbol vector, most
// significant bit first. The result may exceed the alphabet.
func (c *Codec) Index(bits string) (int, error) {
	if len(bits) != c.width {
		return 0, errors.InvalidBitVector(errors.PhaseDecode, nil, bits,
			"want "+strconv.Itoa(c.width)+" bits, got "+strconv.Itoa(len(bits)))
	}
	if pos := nonBinary(bits); pos >= 0 {
		return 0, errors.InvalidBitVector(errors.PhaseDecode, []string{strconv.Itoa(pos)}, bits, "non-binary digit")
	}
	return value(bits), nil
}

// DecodeChar decodes a single-symbol vector. Indices past the end of the
// alphabet yield the sentinel.
func (c *Codec) DecodeChar(bits string) (rune, error) {
	idx, err := c.Index(bits)
	if err != nil {
		return 0, err
	}
	return c.symbol(idx), nil
}

// EncodeChar returns the left zero-padded vector for symbol.
func (c *Codec) EncodeChar(symbol rune) (string, error) {
	idx, ok := c.index[symbol]
	if !ok {
		return "", errors.InvalidSymbol(errors.PhaseEncode, nil, symbol)
	}
	var b strings.Builder
	b.Grow(c.width)
	c.writeIndex(&b, idx)
	return b.String(), nil
}

// DecodeWord splits bits into BitWidth chunks and decodes each one. A
// trailing chunk shorter than BitWidth cannot spell a symbol and is dropped.
func (c *Codec) DecodeWord(bits string) (string, error) {
	chunks, err := c.Chunks(bits)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, chunk := range chunks {
		b.WriteRune(c.symbol(value(chunk)))
	}
	return b.String(), nil
}

// EncodeWord concatenates the vectors of every rune of word.
func (c *Codec) EncodeWord(word string) (string, error) {
	var b strings.Builder
	b.Grow(len(word) * c.width)
	i := 0
	for _, r := range word {
		idx, ok := c.index[r]
		if !ok {
			return "", errors.InvalidSymbol(errors.PhaseEncode, []string{"word", strconv.Itoa(i)}, r)
		}
		c.writeIndex(&b, idx)
		i++
	}
	return b.String(), nil
}

// Chunks splits a word vector into full single-symbol vectors, dropping a
// trailing partial chunk. With a zero-width alphabet only the empty vector
// is accepted.
func (c *Codec) Chunks(bits string) ([]string, error) {
	if pos := nonBinary(bits); pos >= 0 {
		return nil, errors.InvalidBitVector(errors.PhaseDecode, []string{strconv.Itoa(pos)}, bits, "non-binary digit")
	}
	if c.width == 0 {
		if bits != "" {
			return nil, errors.InvalidBitVector(errors.PhaseDecode, nil, bits, "zero-width alphabet")
		}
		return nil, nil
	}
	n := len(bits) / c.width
	chunks := make([]string, n)
	for i := range chunks {
		chunks[i] = bits[i*c.width : (i+1)*c.width]
	}
	return chunks, nil
}

func (c *Codec) symbol(idx int) rune {
	if idx < len(c.symbols) {
		return c.symbols[idx]
	}
	return c.sentinel
}

func (c *Codec) writeIndex(b *strings.Builder, idx int) {
	for shift := c.width - 1; shift >= 0; shift-- {
		if idx>>shift&1 == 1 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
}

// nonBinary returns the byte offset of the first digit other than '0' or
// '1', or -1.
func nonBinary(bits string) int {
	for i := 0; i < len(bits); i++ {
		if bits[i] != '0' && bits[i] != '1' {
			return i
		}
	}
	return -1
}

func value(bits string) int {
	v := 0
	for i := 0; i < len(bits); i++ {
		v = v<<1 | int(bits[i]-'0')
	}
	return v
}

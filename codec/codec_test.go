package codec_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casitadigital/casita/alphabet"
	"github.com/casitadigital/casita/codec"
	cerrors "github.com/casitadigital/casita/errors"
)

var (
	errInvalidSymbol    = &cerrors.Error{Phase: cerrors.PhaseEncode, Kind: cerrors.KindInvalidSymbol}
	errInvalidBitVector = &cerrors.Error{Phase: cerrors.PhaseDecode, Kind: cerrors.KindInvalidBitVector}
	errInvalidAlphabet  = &cerrors.Error{Phase: cerrors.PhaseAlphabet, Kind: cerrors.KindInvalidAlphabet}
)

// symbols returns an alphabet of n distinct runes starting at 'a'.
func symbols(n int) []rune {
	out := make([]rune, n)
	for i := range out {
		out[i] = rune('a' + i)
	}
	return out
}

func TestBitWidth(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{8, 3},
		{9, 4},
		{28, 5},
		{29, 5},
		{32, 5},
		{33, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, codec.BitWidth(tt.size), "size %d", tt.size)
	}
}

func TestNew(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := codec.New(nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errInvalidAlphabet))
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := codec.New([]rune("ABCA"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errInvalidAlphabet))
		assert.Contains(t, err.Error(), "at 3")
	})

	t.Run("sentinel clash", func(t *testing.T) {
		_, err := codec.New([]rune("AB_"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errInvalidAlphabet))

		c, err := codec.New([]rune("AB_"), codec.WithSentinel('#'))
		require.NoError(t, err)
		assert.Equal(t, '#', c.Sentinel())
	})

	t.Run("copies input", func(t *testing.T) {
		in := []rune("XYZ")
		c, err := codec.New(in)
		require.NoError(t, err)
		in[0] = 'Q'
		assert.Equal(t, []rune("XYZ"), c.Alphabet())

		out := c.Alphabet()
		out[1] = 'Q'
		assert.Equal(t, []rune("XYZ"), c.Alphabet())
	})

	t.Run("MustNew panics", func(t *testing.T) {
		assert.Panics(t, func() { codec.MustNew(nil) })
	})
}

func TestCharRoundTrip(t *testing.T) {
	for _, c := range []*codec.Codec{alphabet.Letters, alphabet.Word, codec.MustNew(symbols(29)), codec.MustNew(symbols(2))} {
		for _, s := range c.Alphabet() {
			bits, err := c.EncodeChar(s)
			require.NoError(t, err)
			require.Len(t, bits, c.BitWidth())

			got, err := c.DecodeChar(bits)
			require.NoError(t, err)
			assert.Equal(t, s, got)
		}
	}
}

func TestEncodeChar(t *testing.T) {
	bits, err := alphabet.Letters.EncodeChar('J')
	require.NoError(t, err)
	assert.Equal(t, "01010", bits)

	c := codec.MustNew(symbols(29))
	bits, err = c.EncodeChar('d')
	require.NoError(t, err)
	assert.Equal(t, "00011", bits)

	_, err = alphabet.Letters.EncodeChar('j')
	require.Error(t, err)
	assert.True(t, errors.Is(err, errInvalidSymbol))

	var se *cerrors.Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 'j', se.Value)
}

func TestDecodeChar(t *testing.T) {
	got, err := alphabet.Letters.DecodeChar("01010")
	require.NoError(t, err)
	assert.Equal(t, 'J', got)

	got, err = alphabet.Letters.DecodeChar("00000")
	require.NoError(t, err)
	assert.Equal(t, ' ', got)

	got, err = alphabet.Letters.DecodeChar("11111")
	require.NoError(t, err)
	assert.Equal(t, '?', got)
}

func TestDecodeChar_OutOfRange(t *testing.T) {
	c := codec.MustNew(symbols(29))

	idx, err := c.Index("11110")
	require.NoError(t, err)
	assert.Equal(t, 30, idx)

	got, err := c.DecodeChar("11110")
	require.NoError(t, err)
	assert.Equal(t, codec.DefaultSentinel, got)
	assert.False(t, c.Contains(got))

	got, err = c.DecodeChar("11100")
	require.NoError(t, err)
	assert.Equal(t, 'a'+28, got)

	custom := codec.MustNew(symbols(29), codec.WithSentinel('·'))
	got, err = custom.DecodeChar("11111")
	require.NoError(t, err)
	assert.Equal(t, '·', got)
}

func TestDecodeChar_Malformed(t *testing.T) {
	tests := []struct {
		name string
		bits string
	}{
		{"empty", ""},
		{"short", "0101"},
		{"long", "010100"},
		{"non-binary", "01210"},
		{"letters", "abcde"},
		{"spaces", "0 101"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := alphabet.Letters.DecodeChar(tt.bits)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errInvalidBitVector))
		})
	}
}

func TestWordRoundTrip(t *testing.T) {
	words := []string{"CASA", "", "A", "ÑANDU?", "ZZZZZZZZ", "PERRO"}
	for _, w := range words {
		t.Run(w, func(t *testing.T) {
			bits, err := alphabet.Word.EncodeWord(w)
			require.NoError(t, err)
			assert.Len(t, bits, len([]rune(w))*5)

			got, err := alphabet.Word.DecodeWord(bits)
			require.NoError(t, err)
			assert.Equal(t, w, got)
		})
	}

	bits, err := alphabet.Letters.EncodeWord("HOLA, MUNDO!")
	require.NoError(t, err)
	got, err := alphabet.Letters.DecodeWord(bits)
	require.NoError(t, err)
	assert.Equal(t, "HOLA, MUNDO!", got)
}

func TestEncodeWord(t *testing.T) {
	bits, err := alphabet.Letters.EncodeWord("HOLA")
	require.NoError(t, err)
	assert.Equal(t, "01000"+"10000"+"01100"+"00001", bits)

	_, err = alphabet.Word.EncodeWord("CASa")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errInvalidSymbol))
	assert.Contains(t, err.Error(), "word.3")

	// positions count runes, not bytes
	_, err = alphabet.Word.EncodeWord("ÑAx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word.2")
}

func TestDecodeWord(t *testing.T) {
	t.Run("drops partial chunk", func(t *testing.T) {
		got, err := alphabet.Word.DecodeWord("00010" + "000")
		require.NoError(t, err)
		assert.Equal(t, "C", got)

		got, err = alphabet.Word.DecodeWord("0001")
		require.NoError(t, err)
		assert.Equal(t, "", got)
	})

	t.Run("sentinel per chunk", func(t *testing.T) {
		got, err := alphabet.Word.DecodeWord("00010" + "11111" + "00000")
		require.NoError(t, err)
		assert.Equal(t, "C_A", got)
	})

	t.Run("non-binary", func(t *testing.T) {
		_, err := alphabet.Word.DecodeWord("00010x1111")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errInvalidBitVector))
		assert.Contains(t, err.Error(), "at 5")
	})

	t.Run("non-binary in dropped tail", func(t *testing.T) {
		_, err := alphabet.Word.DecodeWord("000102")
		assert.True(t, errors.Is(err, errInvalidBitVector))
	})
}

func TestZeroWidth(t *testing.T) {
	c := codec.MustNew([]rune("A"))
	assert.Equal(t, 0, c.BitWidth())

	got, err := c.DecodeChar("")
	require.NoError(t, err)
	assert.Equal(t, 'A', got)

	bits, err := c.EncodeWord("AAA")
	require.NoError(t, err)
	assert.Equal(t, "", bits)

	word, err := c.DecodeWord("")
	require.NoError(t, err)
	assert.Equal(t, "", word)

	_, err = c.DecodeWord("0")
	assert.True(t, errors.Is(err, errInvalidBitVector))
}

func TestChunks(t *testing.T) {
	chunks, err := alphabet.Word.Chunks("0001000000" + "11")
	require.NoError(t, err)
	assert.Equal(t, []string{"00010", "00000"}, chunks)
}

func TestConcurrentUse(t *testing.T) {
	c := alphabet.Letters
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				bits, err := c.EncodeWord("HOLA MUNDO")
				if err != nil {
					t.Error(err)
					return
				}
				w, err := c.DecodeWord(bits)
				if err != nil || w != "HOLA MUNDO" {
					t.Errorf("got %q, %v", w, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestAlphabetCoverage(t *testing.T) {
	// every 5-bit pattern decodes without error in the letters alphabet
	for i := 0; i < 32; i++ {
		var b strings.Builder
		for shift := 4; shift >= 0; shift-- {
			b.WriteByte('0' + byte(i>>shift&1))
		}
		_, err := alphabet.Letters.DecodeChar(b.String())
		require.NoError(t, err)
	}
}

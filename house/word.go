package house

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/casitadigital/casita/alphabet"
	"github.com/casitadigital/casita/codec"
	"github.com/casitadigital/casita/errors"
	"github.com/casitadigital/casita/event"
)

const (
	WordSuccessMessage = "¡Bien hecho! Has encontrado la palabra correcta."
	WordFailureMessage = "¡Oh no! Esa no es la palabra correcta. Inténtalo de nuevo."
)

// CharResult is the evaluation of one bank of a word house.
type CharResult struct {
	// Index is the 1-based bank position, as hosts label it.
	Index  string
	Actual rune
	IsOK   bool
}

// WordOptions configures a Word house.
type WordOptions struct {
	// Sink receives SUCCESS and FAILURE outcomes. Nil discards them.
	// Free houses never post.
	Sink event.Sink

	// OnChange is called with the per-bank results after every learner change.
	OnChange func(results []CharResult)

	// Saved restores the switches from a previous session. It must hold
	// one bit per switch.
	Saved string

	// InitialWord, used when Saved is empty, is spelled at start.
	// Otherwise every A-Z letter of the expected word starts as '?'.
	InitialWord string
}

// Word is a house with one bank of switches per letter of the expected word.
type Word struct {
	codec    *codec.Codec
	sink     event.Sink
	onChange func([]CharResult)
	expected []rune
	bits     []byte
	free     bool
}

// NewWord creates a house whose learner must spell expected. Every rune of
// expected must belong to the codec alphabet.
func NewWord(c *codec.Codec, expected string, opts WordOptions) (*Word, error) {
	return newWord(c, expected, false, opts)
}

// NewFree creates a free-mode house of n banks. Nothing is expected and no
// outcome is ever posted.
func NewFree(c *codec.Codec, n int, opts WordOptions) (*Word, error) {
	if n < 1 {
		return nil, errors.InvalidInput(errors.PhaseConfig, "free house needs at least one bank")
	}
	return newWord(c, strings.Repeat(string(alphabet.Placeholder), n), true, opts)
}

func newWord(c *codec.Codec, expected string, free bool, opts WordOptions) (*Word, error) {
	if c.BitWidth() == 0 {
		return nil, errors.InvalidInput(errors.PhaseConfig, "alphabet needs at least one switch per letter")
	}
	if expected == "" {
		return nil, errors.InvalidInput(errors.PhaseConfig, "expected word is empty")
	}
	if _, err := c.EncodeWord(expected); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidSymbol, err, "expected word")
	}

	h := &Word{
		codec:    c,
		sink:     opts.Sink,
		onChange: opts.OnChange,
		expected: []rune(expected),
		free:     free,
	}

	switch {
	case opts.Saved != "":
		if err := h.Restore(opts.Saved); err != nil {
			return nil, err
		}
	case opts.InitialWord != "":
		if n := utf8.RuneCountInString(opts.InitialWord); n != len(h.expected) {
			return nil, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
				Value(opts.InitialWord).
				Detail("initial word has %d letters, want %d", n, len(h.expected)).
				Build()
		}
		bits, err := c.EncodeWord(opts.InitialWord)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidSymbol, err, "initial word")
		}
		h.bits = []byte(bits)
	default:
		bits, err := c.EncodeWord(alphabet.Mask(expected))
		if err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidSymbol, err, "masked word")
		}
		h.bits = []byte(bits)
	}

	return h, nil
}

// Expected returns the word the learner must spell.
func (h *Word) Expected() string {
	return string(h.expected)
}

// Free reports whether the house is in free mode.
func (h *Word) Free() bool {
	return h.free
}

// Len returns the number of banks.
func (h *Word) Len() int {
	return len(h.expected)
}

// BitWidth returns the number of switches per bank.
func (h *Word) BitWidth() int {
	return h.codec.BitWidth()
}

// Bits returns every switch, bank after bank.
func (h *Word) Bits() string {
	return string(h.bits)
}

// Banks returns the switches grouped per bank.
func (h *Word) Banks() []string {
	chunks, _ := h.codec.Chunks(string(h.bits))
	return chunks
}

// Obtained returns the word spelled by the switches.
func (h *Word) Obtained() string {
	w, _ := h.codec.DecodeWord(string(h.bits))
	return w
}

// Succeeded reports whether a non-free house spells its expected word.
func (h *Word) Succeeded() bool {
	return !h.free && h.Obtained() == string(h.expected)
}

// Results evaluates every bank against the expected letter at its position.
func (h *Word) Results() []CharResult {
	banks := h.Banks()
	results := make([]CharResult, len(banks))
	for i, b := range banks {
		actual, _ := h.codec.DecodeChar(b)
		results[i] = CharResult{
			Index:  strconv.Itoa(i + 1),
			Actual: actual,
			IsOK:   actual == h.expected[i],
		}
	}
	return results
}

// Set switches bit of bank char to v. It is a learner change: hooks run and,
// outside free mode, an outcome is posted.
func (h *Word) Set(ctx context.Context, char, bitIdx, v int) error {
	pos, err := h.position(char, bitIdx)
	if err != nil {
		return err
	}
	b, err := bit(v)
	if err != nil {
		return err
	}
	h.bits[pos] = b
	return h.changed(ctx)
}

// Toggle flips bit of bank char.
func (h *Word) Toggle(ctx context.Context, char, bitIdx int) error {
	pos, err := h.position(char, bitIdx)
	if err != nil {
		return err
	}
	return h.Set(ctx, char, bitIdx, int(h.bits[pos]-'0')^1)
}

// Restore replaces every switch. Nothing is posted.
func (h *Word) Restore(bits string) error {
	want := len(h.expected) * h.codec.BitWidth()
	if len(bits) != want {
		return errors.InvalidBitVector(errors.PhaseState, nil, bits,
			"want "+strconv.Itoa(want)+" switches, got "+strconv.Itoa(len(bits)))
	}
	if _, err := h.codec.Chunks(bits); err != nil {
		return errors.Wrap(errors.PhaseState, errors.KindInvalidBitVector, err, "restore switches")
	}
	h.bits = []byte(bits)
	return nil
}

// RestoreState restores the switches from a {"selectors":"…"} blob.
func (h *Word) RestoreState(state string) error {
	sel, err := event.ParseSelectors(state)
	if err != nil {
		return errors.Wrap(errors.PhaseState, errors.KindInvalidData, err, "restore selectors")
	}
	return h.Restore(sel)
}

// Outcome evaluates the current switches.
func (h *Word) Outcome() event.Outcome {
	o := event.Outcome{
		Event:   event.KindFailure,
		Message: WordFailureMessage,
		Reasons: []string{},
		State:   event.SelectorsState{Selectors: h.Bits()}.Encode(),
	}
	if h.Obtained() == string(h.expected) {
		o.Event = event.KindSuccess
		o.Message = WordSuccessMessage
	}
	return o
}

func (h *Word) position(char, bitIdx int) (int, error) {
	if char < 0 || char >= len(h.expected) {
		return 0, errors.OutOfBounds(errors.PhaseState, []string{"banks"}, char, len(h.expected))
	}
	w := h.codec.BitWidth()
	if bitIdx < 0 || bitIdx >= w {
		return 0, errors.OutOfBounds(errors.PhaseState, []string{"banks", strconv.Itoa(char)}, bitIdx, w)
	}
	return char*w + bitIdx, nil
}

func (h *Word) changed(ctx context.Context) error {
	if h.onChange != nil {
		h.onChange(h.Results())
	}
	if h.free {
		return nil
	}

	o := h.Outcome()
	Logger().Debug("word outcome",
		zap.String("event", string(o.Event)),
		zap.String("obtained", h.Obtained()),
		zap.String("expected", h.Expected()),
	)
	if h.sink == nil {
		return nil
	}
	if err := h.sink.Post(ctx, o); err != nil {
		return fmt.Errorf("post outcome: %w", err)
	}
	return nil
}

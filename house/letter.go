package house

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/casitadigital/casita/codec"
	"github.com/casitadigital/casita/errors"
	"github.com/casitadigital/casita/event"
)

const (
	LetterSuccessMessage = "¡Felicidades! Has encontrado la letra correcta."
	LetterFailureMessage = "¡Oh no! Esa no es la letra correcta. Inténtalo de nuevo."
)

// LetterOptions configures a Letter house.
type LetterOptions struct {
	// Sink receives SUCCESS and FAILURE outcomes. Nil discards them.
	Sink event.Sink

	// OnChange is called with the lights after every learner change.
	OnChange func(lights []int)

	// InitialLetter, when non-zero, is spelled by the lights at start.
	InitialLetter rune
}

// Letter is a single-letter house: one bank of BitWidth lights.
type Letter struct {
	codec    *codec.Codec
	sink     event.Sink
	onChange func([]int)
	lights   []byte
	expected rune
	pending  bool
	reported bool
}

// NewLetter creates a house whose learner must spell expected.
func NewLetter(c *codec.Codec, expected rune, opts LetterOptions) (*Letter, error) {
	if c.BitWidth() == 0 {
		return nil, errors.InvalidInput(errors.PhaseConfig, "alphabet needs at least one light")
	}
	if !c.Contains(expected) {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidSymbol,
			errors.InvalidSymbol(errors.PhaseEncode, nil, expected), "expected letter")
	}

	h := &Letter{
		codec:    c,
		sink:     opts.Sink,
		onChange: opts.OnChange,
		lights:   []byte(strings.Repeat("0", c.BitWidth())),
		expected: expected,
	}

	if opts.InitialLetter != 0 {
		bits, err := c.EncodeChar(opts.InitialLetter)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidSymbol, err, "initial letter")
		}
		copy(h.lights, bits)
	}
	h.reported = h.Approved()

	return h, nil
}

// Expected returns the letter the learner must spell.
func (h *Letter) Expected() rune {
	return h.expected
}

// Len returns the number of lights.
func (h *Letter) Len() int {
	return len(h.lights)
}

// Bits returns the lights as a bit vector, most significant first.
func (h *Letter) Bits() string {
	return string(h.lights)
}

// Lights returns the lights as 0/1 values.
func (h *Letter) Lights() []int {
	return toInts(h.lights)
}

// Current returns the letter spelled by the lights, or the codec sentinel
// when the lights name an index past the alphabet.
func (h *Letter) Current() rune {
	r, _ := h.codec.DecodeChar(string(h.lights))
	return r
}

// Approved reports whether the lights spell the expected letter.
func (h *Letter) Approved() bool {
	return h.Current() == h.expected
}

// Pending reports whether there are changes not yet posted.
func (h *Letter) Pending() bool {
	return h.pending
}

// Set switches light i to v. It is a learner change: hooks run and, if the
// approval state flipped, an outcome is posted.
func (h *Letter) Set(ctx context.Context, i, v int) error {
	if i < 0 || i >= len(h.lights) {
		return errors.OutOfBounds(errors.PhaseState, []string{"lights"}, i, len(h.lights))
	}
	b, err := bit(v)
	if err != nil {
		return err
	}
	h.lights[i] = b
	return h.changed(ctx)
}

// Toggle flips light i.
func (h *Letter) Toggle(ctx context.Context, i int) error {
	if i < 0 || i >= len(h.lights) {
		return errors.OutOfBounds(errors.PhaseState, []string{"lights"}, i, len(h.lights))
	}
	return h.Set(ctx, i, int(h.lights[i]-'0')^1)
}

// SetLights restores previously saved lights. Nothing is posted.
func (h *Letter) SetLights(vals []int) error {
	if len(vals) > len(h.lights) {
		return errors.OutOfBounds(errors.PhaseState, []string{"lights"}, len(vals)-1, len(h.lights))
	}
	next := make([]byte, len(h.lights))
	copy(next, h.lights)
	for i, v := range vals {
		b, err := bit(v)
		if err != nil {
			return err
		}
		next[i] = b
	}
	h.lights = next
	h.reported = h.Approved()
	h.pending = false
	return nil
}

// RestoreState restores lights from a saved state blob, either
// {"lights":[…]} or the legacy "0,1,0,1,0".
func (h *Letter) RestoreState(state string) error {
	var (
		vals []int
		err  error
	)
	if strings.HasPrefix(strings.TrimSpace(state), "{") {
		vals, err = event.ParseLights(state)
	} else {
		vals, err = event.ParseLegacyLights(state)
	}
	if err != nil {
		return errors.Wrap(errors.PhaseState, errors.KindInvalidData, err, "restore lights")
	}
	return h.SetLights(vals)
}

// Outcome evaluates the current lights.
func (h *Letter) Outcome() event.Outcome {
	o := event.Outcome{
		Event:   event.KindFailure,
		Message: LetterFailureMessage,
		Reasons: []string{},
		State:   event.LightsState{Lights: h.Lights()}.Encode(),
	}
	if h.Approved() {
		o.Event = event.KindSuccess
		o.Message = LetterSuccessMessage
	}
	return o
}

// Save posts the current outcome if there are pending changes and reports
// whether it did. Hosts call it after a quiet period.
func (h *Letter) Save(ctx context.Context) (bool, error) {
	if !h.pending {
		Logger().Debug("no pending changes", zap.String("bits", h.Bits()))
		return false, nil
	}
	if err := h.post(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (h *Letter) changed(ctx context.Context) error {
	h.pending = true
	if h.onChange != nil {
		h.onChange(h.Lights())
	}

	// Repeating a wrong answer is not worth a post; the next Save picks it up.
	if h.Approved() == h.reported {
		return nil
	}
	return h.post(ctx)
}

func (h *Letter) post(ctx context.Context) error {
	o := h.Outcome()
	Logger().Debug("letter outcome",
		zap.String("event", string(o.Event)),
		zap.String("bits", h.Bits()),
		zap.String("current", string(h.Current())),
	)
	if h.sink != nil {
		if err := h.sink.Post(ctx, o); err != nil {
			return fmt.Errorf("post outcome: %w", err)
		}
	}
	h.pending = false
	h.reported = o.Succeeded()
	return nil
}

func bit(v int) (byte, error) {
	switch v {
	case 0:
		return '0', nil
	case 1:
		return '1', nil
	default:
		return 0, errors.New(errors.PhaseState, errors.KindInvalidInput).
			Value(v).
			Detail("light value %d is not 0 or 1", v).
			Build()
	}
}

func toInts(bits []byte) []int {
	out := make([]int, len(bits))
	for i, b := range bits {
		out[i] = int(b - '0')
	}
	return out
}

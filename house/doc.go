// Package house implements the state of the digital-house widgets.
//
// A Letter house is a single bank of binary lights spelling one symbol; the
// learner must light the bank so that it spells the expected letter. A Word
// house has one bank per letter of the expected word, and in free mode no
// word is expected at all: the learner just watches the preview.
//
// Each house is an independent value holding its own codec, switches and
// reporting hooks; nothing is shared between instances. Hooks are passed at
// construction through LetterOptions and WordOptions.
//
// Outcomes are posted to an event.Sink:
//
//	h, _ := house.NewLetter(alphabet.Letters, 'J', house.LetterOptions{
//		Sink: event.NewJSONSink(os.Stdout),
//	})
//	h.Toggle(ctx, 1) // 01000 spells H: still failing, nothing posted
//	h.Toggle(ctx, 3) // 01010 spells J: SUCCESS
//
// # Thread Safety
//
// Houses are NOT thread-safe and should be driven by a single goroutine,
// as a UI event loop does.
package house

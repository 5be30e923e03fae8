// Package casita teaches binary encoding through "digital houses": banks of
// binary switches that spell a letter or a word of a fixed alphabet.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct responsibilities:
//
//	casita/
//	├── codec/        Bit vector ⇄ symbol conversion over an ordered alphabet
//	├── alphabet/     Built-in alphabets and target normalisation
//	├── house/        Letter and word house state, evaluation and hooks
//	├── event/        Outcome payloads, saved-state blobs and sinks
//	├── errors/       Structured error types for debugging
//	└── cmd/casita/   CLI and interactive terminal house
//
// # Quick Start
//
// Encode and decode with a built-in alphabet:
//
//	bits, err := alphabet.Letters.EncodeChar('J') // "01010"
//	word, err := alphabet.Word.DecodeWord(bits)
//
// Build a house and report outcomes as JSON lines:
//
//	h, err := house.NewLetter(alphabet.Letters, 'J', house.LetterOptions{
//	    Sink: event.NewJSONSink(os.Stdout),
//	})
//	err = h.Toggle(ctx, 1)
//
// # Bit Widths
//
// Every symbol of an alphabet of N symbols takes ceil(log2(N)) bits, so a
// house never reflows while the learner edits it. Both built-in alphabets
// need 5 bits per symbol.
//
// # Thread Safety
//
// Codecs are immutable and safe for concurrent use. Houses are NOT
// thread-safe and should be driven by a single goroutine.
package casita

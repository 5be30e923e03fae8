package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseEncode,
				Kind:   KindInvalidSymbol,
				Path:   []string{"word", "3"},
				Detail: "symbol 'x' not in alphabet",
			},
			contains: []string{"[encode]", "invalid_symbol", "word.3", "symbol 'x'"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindInvalidBitVector,
			},
			contains: []string{"[decode]", "invalid_bit_vector"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseState,
				Kind:   KindInvalidData,
				Detail: "restore lights",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[state]", "invalid_data", "restore lights", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindInvalidSymbol,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseEncode, Kind: KindInvalidSymbol}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindInvalidSymbol}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseEncode, Kind: KindOutOfBounds}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseEncode, Kind: KindInvalidSymbol}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}

	var se *Error
	if !errors.As(err, &se) || se.Path[0] != "foo" {
		t.Error("errors.As should extract *Error")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseEncode, KindInvalidSymbol).
		Path("word", "1").
		Value('x').
		Cause(cause).
		Detail("symbol %q at %d", 'x', 1).
		Build()

	if err.Phase != PhaseEncode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseEncode)
	}
	if err.Kind != KindInvalidSymbol {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidSymbol)
	}
	if len(err.Path) != 2 || err.Path[0] != "word" || err.Path[1] != "1" {
		t.Errorf("Path = %v, want [word 1]", err.Path)
	}
	if err.Value != 'x' {
		t.Errorf("Value = %v, want 'x'", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Error("Cause not set")
	}
	if err.Detail != "symbol 'x' at 1" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestBuilder_DetailWithoutArgs(t *testing.T) {
	err := New(PhaseConfig, KindInvalidInput).Detail("100%").Build()
	if err.Detail != "100%" {
		t.Errorf("Detail = %q, want %q", err.Detail, "100%")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("InvalidSymbol", func(t *testing.T) {
		err := InvalidSymbol(PhaseEncode, []string{"word", "2"}, 'x')
		if err.Kind != KindInvalidSymbol {
			t.Errorf("Kind = %v", err.Kind)
		}
		if err.Value != 'x' {
			t.Errorf("Value = %v", err.Value)
		}
		if !strings.Contains(err.Error(), "word.2") {
			t.Errorf("missing path in %q", err.Error())
		}
	})

	t.Run("InvalidBitVector", func(t *testing.T) {
		err := InvalidBitVector(PhaseDecode, nil, "01a01", "non-binary digit")
		if err.Kind != KindInvalidBitVector {
			t.Errorf("Kind = %v", err.Kind)
		}
		if !strings.Contains(err.Detail, `"01a01"`) {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("InvalidBitVector truncates preview", func(t *testing.T) {
		long := strings.Repeat("01", 40)
		err := InvalidBitVector(PhaseDecode, nil, long, "too long")
		if strings.Contains(err.Detail, long) {
			t.Error("preview should be truncated")
		}
		if err.Value != long {
			t.Error("Value should keep the full vector")
		}
	})

	t.Run("InvalidAlphabet", func(t *testing.T) {
		err := InvalidAlphabet("empty alphabet")
		if err.Phase != PhaseAlphabet || err.Kind != KindInvalidAlphabet {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseState, []string{"lights"}, 7, 5)
		if err.Value != 7 {
			t.Errorf("Value = %v", err.Value)
		}
		if !strings.Contains(err.Detail, "7") || !strings.Contains(err.Detail, "5") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("InvalidData", func(t *testing.T) {
		err := InvalidData(PhaseDecode, []string{"state"}, "bad json")
		if err.Kind != KindInvalidData || err.Detail != "bad json" {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		err := InvalidInput(PhaseConfig, "unknown alphabet")
		if err.Kind != KindInvalidInput {
			t.Errorf("Kind = %v", err.Kind)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("boom")
		err := Wrap(PhaseState, KindInvalidData, cause, "restore")
		if !errors.Is(err, cause) {
			t.Error("Wrap should keep cause reachable")
		}
	})
}

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/casitadigital/casita/alphabet"
	"github.com/casitadigital/casita/codec"
	"github.com/casitadigital/casita/errors"
	"github.com/casitadigital/casita/event"
	"github.com/casitadigital/casita/house"
)

type config struct {
	alphabet string
	symbols  string
	sentinel string
	encode   string
	decode   string
	letter   string
	word     string
	initial  string
	state    string
	events   string
	legacyID string
	logFile  string
	free     int
	width    bool
	verbose  bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.alphabet, "alphabet", "letters", "Built-in alphabet ("+strings.Join(alphabet.Names(), ", ")+")")
	flag.StringVar(&cfg.symbols, "symbols", "", "Custom alphabet, one symbol per character (overrides -alphabet)")
	flag.StringVar(&cfg.sentinel, "sentinel", "", "Rune shown for indices past the alphabet (default _)")
	flag.StringVar(&cfg.encode, "encode", "", "Print the bits of a word and exit")
	flag.StringVar(&cfg.decode, "decode", "", "Print the word spelled by bits and exit")
	flag.BoolVar(&cfg.width, "width", false, "Print the bits per symbol and exit")
	flag.StringVar(&cfg.letter, "letter", "", "Play a single-letter house expecting this letter")
	flag.StringVar(&cfg.word, "word", "", "Play a word house expecting this word")
	flag.IntVar(&cfg.free, "free", 0, "Play a free word house with this many letters")
	flag.StringVar(&cfg.initial, "initial", "", "Initial letter or word shown by the house")
	flag.StringVar(&cfg.state, "state", "", "Saved state blob to restore")
	flag.StringVar(&cfg.events, "events", "", "Append outcomes as JSON lines to this file (- for stdout)")
	flag.StringVar(&cfg.legacyID, "legacy-id", "", "Write outcomes in the legacy shape with this house id")
	flag.StringVar(&cfg.logFile, "log", "", "Write logs to this file instead of stderr")
	flag.BoolVar(&cfg.verbose, "v", false, "Verbose logging")
	flag.Parse()

	if err := run(cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config, stdout io.Writer) error {
	interactive := cfg.letter != "" || cfg.word != "" || cfg.free > 0

	log, err := newLogger(cfg, interactive)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck
	house.SetLogger(log.Named("house"))

	c, err := buildCodec(cfg)
	if err != nil {
		return err
	}
	log.Debug("alphabet ready",
		zap.Int("size", c.Size()),
		zap.Int("width", c.BitWidth()),
		zap.String("sentinel", string(c.Sentinel())),
	)

	switch {
	case cfg.width:
		fmt.Fprintln(stdout, c.BitWidth())
		return nil
	case cfg.encode != "":
		bits, err := c.EncodeWord(normalize(cfg, cfg.encode))
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		fmt.Fprintln(stdout, groupBits(bits, c.BitWidth()))
		return nil
	case cfg.decode != "":
		word, err := c.DecodeWord(strings.Join(strings.Fields(cfg.decode), ""))
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		fmt.Fprintln(stdout, word)
		return nil
	case !interactive:
		flag.Usage()
		return nil
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.InvalidInput(errors.PhaseConfig, "interactive houses need a terminal on stdout")
	}

	sink, closeSink, err := buildSink(cfg, log)
	if err != nil {
		return err
	}
	defer closeSink()

	return runInteractive(context.Background(), cfg, c, sink)
}

func buildCodec(cfg config) (*codec.Codec, error) {
	var opts []codec.Option
	if cfg.sentinel != "" {
		r, size := utf8.DecodeRuneInString(cfg.sentinel)
		if size != len(cfg.sentinel) {
			return nil, errors.InvalidInput(errors.PhaseConfig, "sentinel must be a single character")
		}
		opts = append(opts, codec.WithSentinel(r))
	}

	if cfg.symbols != "" {
		return codec.New([]rune(cfg.symbols), opts...)
	}

	builtin, err := alphabet.Lookup(cfg.alphabet)
	if err != nil {
		return nil, err
	}
	if len(opts) == 0 {
		return builtin, nil
	}
	return codec.New(builtin.Alphabet(), opts...)
}

func buildSink(cfg config, log *zap.Logger) (event.Sink, func(), error) {
	logSink := event.NewLogSink(log.Named("outcome"))
	if cfg.events == "" {
		return logSink, func() {}, nil
	}

	var (
		w       io.Writer
		closeFn = func() {}
	)
	if cfg.events == "-" {
		w = os.Stdout
	} else {
		f, err := os.OpenFile(cfg.events, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open events file: %w", err)
		}
		w = f
		closeFn = func() {
			if err := f.Close(); err != nil {
				log.Warn("failed to close events file", zap.Error(err))
			}
		}
	}

	js := event.NewJSONSink(w)
	if cfg.legacyID != "" {
		js = js.WithLegacyID(cfg.legacyID)
	}
	return event.Multi(logSink, js), closeFn, nil
}

func newLogger(cfg config, interactive bool) (*zap.Logger, error) {
	if interactive && cfg.logFile == "" {
		// the terminal belongs to the UI
		return zap.NewNop(), nil
	}

	var zc zap.Config
	if cfg.verbose {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	if cfg.logFile != "" {
		zc.OutputPaths = []string{cfg.logFile}
		zc.ErrorOutputPaths = []string{cfg.logFile}
	}
	return zc.Build()
}

// normalize upper-cases input for the built-in alphabets, which hold
// capitals only. Custom alphabets are taken verbatim.
func normalize(cfg config, s string) string {
	if cfg.symbols != "" {
		return s
	}
	return alphabet.Normalize(s)
}

func groupBits(bits string, width int) string {
	if width == 0 {
		return bits
	}
	var b strings.Builder
	for i := 0; i < len(bits); i += width {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(bits[i:min(i+width, len(bits))])
	}
	return b.String()
}

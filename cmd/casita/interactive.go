package main

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/casitadigital/casita/codec"
	"github.com/casitadigital/casita/errors"
	"github.com/casitadigital/casita/event"
	"github.com/casitadigital/casita/house"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	lightOnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(lipgloss.Color("#FFD54F")).
			Padding(0, 1)

	lightOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Background(lipgloss.Color("#333333")).
			Padding(0, 1)

	letterStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 2)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type keyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	On     key.Binding
	Off    key.Binding
	Save   key.Binding
	Type   key.Binding
	Quit   key.Binding
}

func newKeyMap(word, free bool) keyMap {
	k := keyMap{
		Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev switch")),
		Next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next switch")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev letter")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next letter")),
		Toggle: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		On:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "on")),
		Off:    key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "off")),
		Save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Type:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "type a word")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	k.Up.SetEnabled(word)
	k.Down.SetEnabled(word)
	k.Save.SetEnabled(!word)
	k.Type.SetEnabled(free)
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Up, k.Down, k.Toggle, k.Save, k.Type, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Up, k.Down},
		{k.Toggle, k.On, k.Off},
		{k.Save, k.Type, k.Quit},
	}
}

type houseModel struct {
	ctx    context.Context
	err    error
	cfg    config
	last   *event.Outcome
	codec  *codec.Codec
	letter *house.Letter
	word   *house.Word
	keys   keyMap
	help   help.Model
	input  textinput.Model
	bank   int
	bit    int
	typing bool
}

func newHouseModel(ctx context.Context, cfg config, c *codec.Codec, sink event.Sink) (*houseModel, error) {
	m := &houseModel{
		ctx:   ctx,
		cfg:   cfg,
		codec: c,
		help:  help.New(),
		input: textinput.New(),
	}

	// record what the host was told so the screen can show it
	recording := event.SinkFunc(func(ctx context.Context, o event.Outcome) error {
		m.last = &o
		return sink.Post(ctx, o)
	})

	switch {
	case cfg.letter != "":
		expected, err := singleRune(normalize(cfg, cfg.letter), "letter")
		if err != nil {
			return nil, err
		}
		opts := house.LetterOptions{Sink: recording}
		if cfg.initial != "" {
			if opts.InitialLetter, err = singleRune(normalize(cfg, cfg.initial), "initial letter"); err != nil {
				return nil, err
			}
		}
		if m.letter, err = house.NewLetter(c, expected, opts); err != nil {
			return nil, err
		}
		if cfg.state != "" {
			if err := m.letter.RestoreState(cfg.state); err != nil {
				return nil, err
			}
		}

	default:
		opts := house.WordOptions{Sink: recording}
		if cfg.initial != "" {
			opts.InitialWord = normalize(cfg, cfg.initial)
		}
		if cfg.state != "" {
			sel, err := event.ParseSelectors(cfg.state)
			if err != nil {
				return nil, err
			}
			opts.Saved = sel
		}

		var err error
		if cfg.word != "" {
			m.word, err = house.NewWord(c, normalize(cfg, cfg.word), opts)
		} else {
			m.word, err = house.NewFree(c, cfg.free, opts)
		}
		if err != nil {
			return nil, err
		}

		m.input.Placeholder = strings.Repeat("A", m.word.Len())
		m.input.Prompt = "word: "
		m.input.CharLimit = m.word.Len()
		m.input.Width = m.word.Len() + 2
	}

	m.keys = newKeyMap(m.word != nil, m.word != nil && m.word.Free())
	return m, nil
}

func singleRune(s, what string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("%s must be a single character, got %q", what, s))
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func (m *houseModel) Init() tea.Cmd {
	return nil
}

func (m *houseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if m.typing {
			return m.updateTyping(msg)
		}

		m.err = nil
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Prev):
			if m.bit > 0 {
				m.bit--
			}
		case key.Matches(msg, m.keys.Next):
			if m.bit < m.codec.BitWidth()-1 {
				m.bit++
			}
		case key.Matches(msg, m.keys.Up):
			if m.bank > 0 {
				m.bank--
			}
		case key.Matches(msg, m.keys.Down):
			if m.word != nil && m.bank < m.word.Len()-1 {
				m.bank++
			}
		case key.Matches(msg, m.keys.Toggle):
			m.err = m.toggle()
		case key.Matches(msg, m.keys.On):
			m.err = m.set(1)
		case key.Matches(msg, m.keys.Off):
			m.err = m.set(0)
		case key.Matches(msg, m.keys.Save):
			if m.letter != nil {
				_, m.err = m.letter.Save(m.ctx)
			}
		case key.Matches(msg, m.keys.Type):
			m.typing = true
			m.input.SetValue("")
			return m, m.input.Focus()
		}
	}

	return m, nil
}

func (m *houseModel) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.typing = false
		m.input.Blur()
		return m, nil
	case "enter":
		m.typing = false
		m.input.Blur()
		m.err = m.spell(normalize(m.cfg, m.input.Value()))
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *houseModel) toggle() error {
	if m.letter != nil {
		return m.letter.Toggle(m.ctx, m.bit)
	}
	return m.word.Toggle(m.ctx, m.bank, m.bit)
}

func (m *houseModel) set(v int) error {
	if m.letter != nil {
		return m.letter.Set(m.ctx, m.bit, v)
	}
	return m.word.Set(m.ctx, m.bank, m.bit, v)
}

// spell lays out the switches of a free house so that they read word.
func (m *houseModel) spell(word string) error {
	if n := utf8.RuneCountInString(word); n != m.word.Len() {
		return errors.InvalidInput(errors.PhaseState, fmt.Sprintf("word must have %d letters, got %d", m.word.Len(), n))
	}
	bits, err := m.codec.EncodeWord(word)
	if err != nil {
		return err
	}
	return m.word.Restore(bits)
}

func (m *houseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Casita digital"))
	b.WriteString(" ")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d symbols, %d bits each", m.codec.Size(), m.codec.BitWidth())))
	b.WriteString("\n\n")

	if m.letter != nil {
		m.viewLetter(&b)
	} else {
		m.viewWord(&b)
	}

	if m.typing {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.last != nil {
		b.WriteString("\n")
		if m.last.Succeeded() {
			b.WriteString(successStyle.Render(m.last.Message))
		} else {
			b.WriteString(errorStyle.Render(m.last.Message))
		}
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *houseModel) viewLetter(b *strings.Builder) {
	h := m.letter
	fmt.Fprintf(b, "Find the letter %s\n\n", letterStyle.Render(string(h.Expected())))

	b.WriteString(renderBank(h.Bits(), m.bit, true))
	b.WriteString("   ")
	b.WriteString(letterStyle.Render(string(h.Current())))
	b.WriteString("\n")
	if h.Pending() {
		b.WriteString(dimStyle.Render("unsaved changes"))
		b.WriteString("\n")
	}
}

func (m *houseModel) viewWord(b *strings.Builder) {
	h := m.word
	if h.Free() {
		b.WriteString("Free house: spell anything\n\n")
	} else {
		fmt.Fprintf(b, "Find the word %s\n\n", letterStyle.Render(h.Expected()))
	}

	results := h.Results()
	for i, bank := range h.Banks() {
		cursor := "  "
		if i == m.bank {
			cursor = cursorStyle.Render("> ")
		}
		b.WriteString(cursor)
		b.WriteString(renderBank(bank, m.bit, i == m.bank))
		b.WriteString("  ")
		b.WriteString(string(results[i].Actual))
		if !h.Free() {
			if results[i].IsOK {
				b.WriteString(successStyle.Render(" ✓"))
			} else {
				b.WriteString(errorStyle.Render(" ✗"))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(letterStyle.Render(h.Obtained()))
	b.WriteString("\n")
}

func renderBank(bits string, cursor int, active bool) string {
	cells := make([]string, len(bits))
	for i := 0; i < len(bits); i++ {
		style := lightOffStyle
		if bits[i] == '1' {
			style = lightOnStyle
		}
		if active && i == cursor {
			style = style.Underline(true)
		}
		cells[i] = style.Render(string(bits[i]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func runInteractive(ctx context.Context, cfg config, c *codec.Codec, sink event.Sink) error {
	m, err := newHouseModel(ctx, cfg, c, sink)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

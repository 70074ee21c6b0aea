// Package tui implements the interactive design prompt form: one input per
// placeholder, a live prompt preview, and a result panel filled by
// generation.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/alnah/go-blueprint/internal/format"
	"github.com/alnah/go-blueprint/internal/generate"
	"github.com/alnah/go-blueprint/internal/render"
	"github.com/alnah/go-blueprint/internal/session"
	"github.com/alnah/go-blueprint/internal/template"
)

const (
	defaultWidth  = 100
	defaultHeight = 40
	previewLines  = 6
)

// Clipboard copies text, reporting success.
type Clipboard interface {
	Copy(text string) bool
}

// generationDoneMsg carries the outcome of one generation ticket.
type generationDoneMsg struct {
	id   uint64
	text string
	err  error
}

// copiedMsg reports a clipboard copy attempt.
type copiedMsg struct {
	ok bool
}

// Model is the bubbletea model of the form.
type Model struct {
	ctx       context.Context
	ctl       *session.Controller
	gen       generate.Generator
	clipboard Clipboard
	logger    *zap.Logger
	now       func() time.Time
	styles    render.Styles

	keys    []template.Key
	inputs  []textinput.Model
	focus   int
	spinner spinner.Model
	result  viewport.Model
	help    help.Model

	status  string
	started time.Time
	width   int
	height  int
}

// Option configures a Model.
type Option func(*Model)

// WithContext sets the context passed to the generator.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// WithClipboard sets the clipboard used by the copy key.
func WithClipboard(c Clipboard) Option {
	return func(m *Model) {
		m.clipboard = c
	}
}

// WithLogger sets the logger. nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithNow sets the clock used for the elapsed timer.
func WithNow(fn func() time.Time) Option {
	return func(m *Model) {
		m.now = fn
	}
}

// New creates a form over ctl that generates with gen.
// Inputs are created for the template's placeholders, prefilled from the
// session values.
func New(ctl *session.Controller, gen generate.Generator, opts ...Option) Model {
	m := Model{
		ctx:     context.Background(),
		ctl:     ctl,
		gen:     gen,
		logger:  zap.NewNop(),
		now:     time.Now,
		styles:  render.DefaultStyles(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	for _, opt := range opts {
		opt(&m)
	}

	tmpl := ctl.Template()
	values := ctl.Snapshot().Values
	m.keys = tmpl.Placeholders()
	m.inputs = make([]textinput.Model, len(m.keys))
	for i, k := range m.keys {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = format.Truncate(tmpl.Describe(k), 60)
		in.SetValue(values.Get(k))
		m.inputs[i] = in
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}

	m.result = viewport.New(m.width, 10)
	m.layout()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.refreshResult()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case generationDoneMsg:
		var err error
		if msg.err != nil {
			err = m.ctl.FailGeneration(msg.id, msg.err)
		} else {
			err = m.ctl.CompleteGeneration(msg.id, msg.text)
		}
		if errors.Is(err, session.ErrStaleTicket) {
			m.logger.Debug("discarded stale generation", zap.Uint64("ticket", msg.id))
			return m, nil
		}
		elapsed := m.now().Sub(m.started)
		if m.ctl.Snapshot().Phase == session.Failed {
			m.status = "Generation failed after " + format.DurationHuman(elapsed)
		} else {
			m.status = "Generated in " + format.DurationHuman(elapsed)
		}
		m.refreshResult()
		return m, nil

	case copiedMsg:
		if msg.ok {
			m.status = "Prompt copied to clipboard"
		} else {
			m.status = "Could not copy to clipboard"
		}
		return m, nil

	case spinner.TickMsg:
		if !m.ctl.Snapshot().Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

// handleKey dispatches form keybindings; other keys go to the focused input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, formKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, formKeys.Next):
		m.setFocus(m.focus + 1)
		return m, nil

	case key.Matches(msg, formKeys.Prev):
		m.setFocus(m.focus - 1)
		return m, nil

	case key.Matches(msg, formKeys.Generate):
		return m.startGeneration()

	case key.Matches(msg, formKeys.Copy):
		return m, m.copyCmd(m.ctl.Prompt())

	case msg.Type == tea.KeyPgUp, msg.Type == tea.KeyPgDown:
		var cmd tea.Cmd
		m.result, cmd = m.result.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

// updateFocused forwards msg to the focused input and syncs its value
// into the session.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	before := m.inputs[m.focus].Value()
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		m.ctl.SetField(m.keys[m.focus], after)
		m.refreshResult()
	}
	return m, cmd
}

// startGeneration takes a ticket and returns the command that fulfils it.
func (m Model) startGeneration() (tea.Model, tea.Cmd) {
	ticket, err := m.ctl.StartGeneration()
	if err != nil {
		m.status = "Generation already in progress"
		return m, nil
	}
	m.started = m.now()
	m.status = ""
	m.refreshResult()

	ctx, gen := m.ctx, m.gen
	run := func() tea.Msg {
		text, err := gen.Generate(ctx, ticket.Prompt)
		return generationDoneMsg{id: ticket.ID, text: text, err: err}
	}
	return m, tea.Batch(m.spinner.Tick, run)
}

// copyCmd copies text off the update loop.
func (m Model) copyCmd(text string) tea.Cmd {
	if m.clipboard == nil {
		return func() tea.Msg { return copiedMsg{ok: false} }
	}
	c := m.clipboard
	return func() tea.Msg { return copiedMsg{ok: c.Copy(text)} }
}

func (m *Model) setFocus(i int) {
	if len(m.inputs) == 0 {
		return
	}
	m.inputs[m.focus].Blur()
	m.focus = (i + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

// layout sizes inputs and the result viewport for the window.
func (m *Model) layout() {
	inputWidth := max(m.width-lipgloss.Width(labelStyle.Render(""))-4, 10)
	for i := range m.inputs {
		m.inputs[i].Width = inputWidth
	}

	used := len(m.inputs) + previewLines + 10
	m.result.Width = max(m.width-4, 10)
	m.result.Height = max(m.height-used, 3)
}

// refreshResult fills the result viewport from the session state.
func (m *Model) refreshResult() {
	s := m.ctl.Snapshot()
	switch {
	case s.Output != "":
		m.result.SetContent(render.Terminal(render.Blocks(s.Output), m.styles, m.result.Width))
	default:
		m.result.SetContent("")
	}
}

// View implements tea.Model.
func (m Model) View() string {
	s := m.ctl.Snapshot()
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.ctl.Template().Name()))
	b.WriteString("\n\n")

	for i, k := range m.keys {
		label := labelStyle
		if i == m.focus {
			label = labelFocusedStyle
		}
		b.WriteString(label.Render(k.Label()))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	preview := lipgloss.NewStyle().Width(max(m.width-4, 10)).MaxHeight(previewLines).Render(s.Prompt)
	b.WriteString(panelTitleStyle.Render(fmt.Sprintf("Prompt (%s filled)", format.Count(len(s.Values.Filled()), "field"))))
	b.WriteString("\n")
	b.WriteString(previewStyle.Render(preview))
	b.WriteString("\n\n")

	switch {
	case s.Busy():
		elapsed := format.Duration(m.now().Sub(m.started))
		b.WriteString(fmt.Sprintf("%s Generating... %s\n", m.spinner.View(), elapsed))
	case s.Err != "":
		b.WriteString(errorPanelStyle.Width(max(m.width-2, 10)).Render(errorTextStyle.Render(s.Err)))
		b.WriteString("\n")
	case s.Output != "":
		b.WriteString(panelStyle.Width(max(m.width-2, 10)).Render(m.result.View()))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(formKeys))
	return b.String()
}

// State returns the session state behind the form.
func (m Model) State() session.State {
	return m.ctl.Snapshot()
}

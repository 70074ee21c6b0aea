// Package session owns the state of one prompt-editing session: the
// placeholder values, the last generation outcome, and the single
// in-flight generation guard.
//
// State changes only through SetField, StartGeneration, CompleteGeneration
// and FailGeneration. A Controller is safe for concurrent use.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/alnah/go-blueprint/internal/generate"
	"github.com/alnah/go-blueprint/internal/template"
)

// EmptyOutputMessage is shown when a generation succeeds with no text.
const EmptyOutputMessage = "No content generated."

var (
	// ErrBusy indicates a generation is already in flight.
	ErrBusy = errors.New("generation already in progress")

	// ErrStaleTicket indicates a completion for a ticket that is no longer current.
	ErrStaleTicket = errors.New("stale generation ticket")
)

// Phase is the position of a session in its generation lifecycle.
type Phase int

// Generation phases. Succeeded and Failed return to Generating on retry.
const (
	Idle Phase = iota
	Generating
	Succeeded
	Failed
)

var phaseNames = [...]string{"idle", "generating", "succeeded", "failed"}

// String returns the lowercase phase name.
func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Ticket identifies one generation request.
type Ticket struct {
	ID     uint64
	Prompt string
}

// State is a snapshot of a session.
// At most one of Output and Err is non-empty.
type State struct {
	Values template.Values
	Prompt string
	Phase  Phase
	Output string
	Err    string

	// Cause is the error behind Err, for errors.Is checks.
	Cause error
}

// Busy reports whether a generation is in flight.
func (s State) Busy() bool {
	return s.Phase == Generating
}

// Controller is the single owner of session state.
type Controller struct {
	tmpl   *template.Template
	logger *zap.Logger

	mu      sync.Mutex
	values  template.Values
	phase   Phase
	output  string
	errMsg  string
	cause   error
	next    uint64
	pending uint64 // zero when nothing is in flight
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithValues seeds the initial placeholder values.
func WithValues(v template.Values) Option {
	return func(c *Controller) {
		c.values = v
	}
}

// New creates a Controller for tmpl. A nil tmpl uses template.Default().
func New(tmpl *template.Template, opts ...Option) *Controller {
	if tmpl == nil {
		tmpl = template.Default()
	}
	c := &Controller{tmpl: tmpl, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Template returns the template the session interpolates.
func (c *Controller) Template() *template.Template {
	return c.tmpl
}

// SetField updates one placeholder value. The prompt view follows.
func (c *Controller) SetField(k template.Key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values.Set(k, value)
}

// Prompt returns the current interpolated prompt.
func (c *Controller) Prompt() string {
	c.mu.Lock()
	v := c.values
	c.mu.Unlock()
	return c.tmpl.Interpolate(v)
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Values: c.values,
		Prompt: c.tmpl.Interpolate(c.values),
		Phase:  c.phase,
		Output: c.output,
		Err:    c.errMsg,
		Cause:  c.cause,
	}
}

// StartGeneration moves the session to Generating and returns a ticket
// carrying the prompt to send. It returns ErrBusy while another ticket is
// outstanding. A previous error is cleared; a previous output stays
// visible until the new outcome replaces it.
func (c *Controller) StartGeneration() (Ticket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != 0 {
		return Ticket{}, ErrBusy
	}
	c.next++
	c.pending = c.next
	c.phase = Generating
	c.errMsg = ""
	c.cause = nil

	t := Ticket{ID: c.pending, Prompt: c.tmpl.Interpolate(c.values)}
	c.logger.Debug("generation started", zap.Uint64("ticket", t.ID), zap.Int("filled", len(c.values.Filled())))
	return t, nil
}

// CompleteGeneration records a successful result for ticket id.
// Whitespace-only text is replaced by EmptyOutputMessage.
func (c *Controller) CompleteGeneration(id uint64, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.settle(id); err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		text = EmptyOutputMessage
	}
	c.phase = Succeeded
	c.output = text
	c.errMsg = ""
	c.cause = nil
	c.logger.Debug("generation succeeded", zap.Uint64("ticket", id), zap.Int("output_chars", len(text)))
	return nil
}

// FailGeneration records a failure for ticket id. The prior output is
// cleared and the failure message is kept verbatim.
func (c *Controller) FailGeneration(id uint64, cause error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.settle(id); err != nil {
		return err
	}
	msg := generate.MessageOf(cause)
	if msg == "" {
		msg = generate.DefaultFailureMessage
	}
	c.phase = Failed
	c.output = ""
	c.errMsg = msg
	c.cause = cause
	c.logger.Debug("generation failed", zap.Uint64("ticket", id), zap.Error(cause))
	return nil
}

// settle releases the in-flight guard for id. Callers hold c.mu.
func (c *Controller) settle(id uint64) error {
	if id == 0 || id != c.pending {
		return fmt.Errorf("ticket %d: %w", id, ErrStaleTicket)
	}
	c.pending = 0
	return nil
}

// Generate runs one full generation with g and returns the resulting state.
// It returns ErrBusy without calling g when a generation is in flight.
// Generation failures are recorded in the state, not returned.
func (c *Controller) Generate(ctx context.Context, g generate.Generator) (State, error) {
	t, err := c.StartGeneration()
	if err != nil {
		return c.Snapshot(), err
	}

	text, genErr := g.Generate(ctx, t.Prompt)
	if genErr != nil {
		err = c.FailGeneration(t.ID, genErr)
	} else {
		err = c.CompleteGeneration(t.ID, text)
	}
	return c.Snapshot(), err
}

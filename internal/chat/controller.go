// Package chat implements the conversation controller: the ordered message log,
// the single-outstanding-request discipline and the translation of remote
// outcomes into bot messages.
package chat

import (
	"strings"
	"sync"

	"github.com/diogo/tradebot/internal/api"
	"github.com/diogo/tradebot/internal/models"
)

// Request is a ticket for one outstanding round trip.
// Only the ticket matching the current sequence may resolve it.
type Request struct {
	Payload models.AskRequest
	seq     uint64
}

// IsGreeting reports whether the ticket is the startup greeting
func (r Request) IsGreeting() bool {
	return r.Payload.IsFirst
}

// State is a snapshot of the conversation
type State struct {
	Messages []models.Message
	Pending  bool
}

// Controller owns the conversation log and the pending flag.
// All mutation goes through its methods; it is safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	messages []models.Message
	pending  bool
	greeted  bool
	closed   bool
	seq      uint64
	onChange []func()
}

// NewController creates an empty conversation
func NewController() *Controller {
	return &Controller{messages: []models.Message{}}
}

// OnChange registers fn to run after every log mutation.
// Hooks run outside the controller lock.
func (c *Controller) OnChange(fn func()) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.onChange = append(c.onChange, fn)
	c.mu.Unlock()
}

// Greet starts the greeting round trip. It succeeds at most once.
func (c *Controller) Greet() (Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.greeted || c.pending {
		return Request{}, false
	}
	c.greeted = true
	return c.beginLocked(models.GreetingRequest()), true
}

// Submit appends the trimmed question and starts its round trip.
// It is a no-op when the question is blank, a request is pending, or the
// controller is closed.
func (c *Controller) Submit(question string) (Request, bool) {
	question = strings.TrimSpace(question)

	c.mu.Lock()
	if c.closed || c.pending || question == "" {
		c.mu.Unlock()
		return Request{}, false
	}
	c.messages = append(c.messages, models.UserMessage(question))
	req := c.beginLocked(models.QuestionRequest(question))
	hooks := c.hooksLocked()
	c.mu.Unlock()

	runHooks(hooks)
	return req, true
}

// Resolve applies the outcome of req: it appends exactly one bot message and
// releases the pending flag. Stale tickets and resolutions after Close are
// discarded and report false.
func (c *Controller) Resolve(req Request, out api.Outcome) bool {
	c.mu.Lock()
	if c.closed || !c.pending || req.seq != c.seq {
		c.mu.Unlock()
		return false
	}
	c.messages = append(c.messages, out.BotMessage())
	c.pending = false
	hooks := c.hooksLocked()
	c.mu.Unlock()

	runHooks(hooks)
	return true
}

// Close tears the conversation down; late resolutions become no-ops
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.pending = false
}

// Closed reports whether Close was called
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// CanSubmit reports whether input would be accepted right now
func (c *Controller) CanSubmit(input string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed && !c.pending && strings.TrimSpace(input) != ""
}

// Pending reports whether a request is outstanding
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Messages returns a copy of the log
func (c *Controller) Messages() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages in the log
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

// Last returns the most recent message
func (c *Controller) Last() (models.Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == 0 {
		return models.Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// LastBotText returns the text of the most recent bot message
func (c *Controller) LastBotText() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.messages) - 1; i >= 0; i-- {
		if !c.messages[i].IsUser() {
			return c.messages[i].Text, true
		}
	}
	return "", false
}

// State returns a snapshot of the conversation
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	msgs := make([]models.Message, len(c.messages))
	copy(msgs, c.messages)
	return State{Messages: msgs, Pending: c.pending}
}

// beginLocked marks a new request outstanding. Caller holds c.mu.
func (c *Controller) beginLocked(payload models.AskRequest) Request {
	c.seq++
	c.pending = true
	return Request{Payload: payload, seq: c.seq}
}

func (c *Controller) hooksLocked() []func() {
	if len(c.onChange) == 0 {
		return nil
	}
	hooks := make([]func(), len(c.onChange))
	copy(hooks, c.onChange)
	return hooks
}

func runHooks(hooks []func()) {
	for _, fn := range hooks {
		fn()
	}
}

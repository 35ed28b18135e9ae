// Package briefing consumes a briefing stream from the memory backend and
// reassembles its token events into text.
package briefing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
)

var (
	// ErrConsumerDisposed is returned by Start once Dispose has been called
	ErrConsumerDisposed = errors.New("briefing: consumer disposed")
	// ErrStreamEnded reports a transport that closed before the done event
	ErrStreamEnded = errors.New("briefing: stream ended before done")
	// ErrMalformedEvent wraps payloads that are not valid briefing events
	ErrMalformedEvent = errors.New("briefing: malformed event")
)

// State of the current briefing request
type State int

const (
	StateIdle State = iota
	StateStreaming
	StateDone
	StateFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStreaming:
		return "streaming"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Handlers receive stream events on the consumer's goroutine. Any of them
// may be nil. A handler ends its own request with Stop; it must not call
// Cancel, Start or Dispose, which wait for the handler to return.
type Handlers struct {
	OnToken func(token string)
	OnDone  func()
	OnError func(err error)
}

// Option configures a Consumer
type Option func(*Consumer)

// WithLogger attaches a logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Consumer) {
		if l != nil {
			c.logger = l
		}
	}
}

// Consumer runs at most one briefing request at a time. Starting a new
// request or cancelling bumps the generation; events from an older
// generation never reach a handler or the text buffer.
type Consumer struct {
	id       string
	streamer repositories.BriefingStreamer
	logger   *zap.Logger

	// ctl serializes Start, Cancel and Dispose
	ctl sync.Mutex

	mu         sync.Mutex
	idle       *sync.Cond // signalled when a handler returns
	delivering bool
	gen        uint64
	state      State
	contact    string
	text       strings.Builder
	sub        repositories.Subscription
	stop       context.CancelFunc
	done       chan struct{}
	disposed   bool
}

// New creates an idle consumer
func New(streamer repositories.BriefingStreamer, opts ...Option) *Consumer {
	c := &Consumer{
		id:       uuid.NewString(),
		streamer: streamer,
		logger:   zap.NewNop(),
	}
	c.idle = sync.NewCond(&c.mu)
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("consumer_id", c.id))
	return c
}

// Start requests a briefing for contact. Any request in flight is cancelled
// and the text buffer is reset. The stream is opened asynchronously; an open
// failure is reported through OnError.
func (c *Consumer) Start(ctx context.Context, contact string, h Handlers) error {
	if strings.TrimSpace(contact) == "" {
		return entities.ErrEmptyContact
	}

	c.ctl.Lock()
	defer c.ctl.Unlock()

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return ErrConsumerDisposed
	}
	c.cancelLocked()
	c.awaitLocked()

	runCtx, stop := context.WithCancel(ctx)
	gen := c.gen
	done := make(chan struct{})
	c.stop = stop
	c.done = done
	c.state = StateStreaming
	c.contact = contact
	c.text.Reset()
	c.mu.Unlock()

	go c.pump(runCtx, gen, contact, h, done)
	return nil
}

// Cancel abandons the current request and closes its subscription. A
// handler already running is waited for; none begins after Cancel returns.
// Safe to call repeatedly and when idle.
func (c *Consumer) Cancel() {
	c.ctl.Lock()
	defer c.ctl.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	c.awaitLocked()
}

// Stop is Cancel without the wait, for use from inside a handler. No other
// handler of the request begins once it returns.
func (c *Consumer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
}

// Dispose cancels the current request and waits for its goroutine to exit.
// The consumer cannot be started again.
func (c *Consumer) Dispose() {
	c.ctl.Lock()
	defer c.ctl.Unlock()

	c.mu.Lock()
	c.disposed = true
	c.cancelLocked()
	done := c.done
	c.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Text returns the tokens accumulated so far for the current request
func (c *Consumer) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text.String()
}

// State returns the state of the current request
func (c *Consumer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Done is closed when the current request's goroutine exits. Before the
// first Start it is already closed.
func (c *Consumer) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return c.done
}

func (c *Consumer) cancelLocked() {
	c.gen++
	if c.state == StateStreaming {
		c.state = StateCancelled
		c.logger.Info("🛑 Briefing cancelled", zap.String("contact", c.contact))
	}
	c.releaseLocked()
}

func (c *Consumer) releaseLocked() {
	if c.sub != nil {
		_ = c.sub.Close()
		c.sub = nil
	}
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
}

func (c *Consumer) awaitLocked() {
	for c.delivering {
		c.idle.Wait()
	}
}

func (c *Consumer) current(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gen == c.gen
}

// attach records sub as the live subscription. It returns false when the
// request was superseded while the stream was opening.
func (c *Consumer) attach(gen uint64, sub repositories.Subscription) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.sub = sub
	return true
}

// deliver applies mutate and then runs fn, both only while gen is current.
// The generation check, mutate and the start of fn happen under one lock
// hold, and Cancel waits for fn to return. It reports false when gen was
// superseded.
func (c *Consumer) deliver(gen uint64, mutate func(), fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	mutate()
	if fn == nil {
		return true
	}

	c.delivering = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.delivering = false
		c.idle.Broadcast()
	}()
	fn()
	return true
}

// settleLocked moves the request into a final state and releases its resources
func (c *Consumer) settleLocked(state State) {
	c.state = state
	c.releaseLocked()
}

func (c *Consumer) pump(ctx context.Context, gen uint64, contact string, h Handlers, done chan struct{}) {
	defer close(done)

	log := c.logger.With(zap.String("contact", contact), zap.Uint64("generation", gen))

	fail := func(err error) {
		var onError func()
		if h.OnError != nil {
			onError = func() { h.OnError(err) }
		}
		c.deliver(gen, func() {
			c.settleLocked(StateFailed)
			log.Warn("⚠️ Briefing stream failed", zap.Error(err))
		}, onError)
	}

	sub, err := c.streamer.OpenBriefingStream(ctx, contact)
	if err != nil {
		fail(err)
		return
	}
	if !c.attach(gen, sub) {
		_ = sub.Close()
		return
	}
	log.Info("📡 Briefing stream started")

	tokens := 0
	for {
		payload, err := sub.Next()
		if !c.current(gen) {
			return
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = ErrStreamEnded
			}
			fail(err)
			return
		}

		var ev *entities.BriefingEvent
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			fail(fmt.Errorf("%w: %v", ErrMalformedEvent, err))
			return
		}
		if ev == nil {
			fail(fmt.Errorf("%w: payload %q is not an object", ErrMalformedEvent, payload))
			return
		}

		switch ev.Type {
		case entities.BriefingEventToken:
			var onToken func()
			if h.OnToken != nil {
				content := ev.Content
				onToken = func() { h.OnToken(content) }
			}
			if !c.deliver(gen, func() { c.text.WriteString(ev.Content) }, onToken) {
				return
			}
			tokens++
		case entities.BriefingEventDone:
			c.deliver(gen, func() {
				c.settleLocked(StateDone)
				log.Info("✅ Briefing complete", zap.Int("tokens", tokens))
			}, h.OnDone)
			return
		default:
			log.Debug("Ignoring briefing event", zap.String("type", string(ev.Type)))
		}
	}
}

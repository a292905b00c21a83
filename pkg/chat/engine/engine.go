// Package engine turns guest input into scripted assistant replies and
// delivers them over an in-process watermill bus, decoupling reply production
// from whatever renders the timeline. The artificial "thinking" delay lives
// here, not in the UI.
package engine

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/oto-sh/oto/pkg/chat"
	"github.com/oto-sh/oto/pkg/onboarding"
)

const assistantTopic = "oto.assistant"

// ReplyMsg is the bubbletea message pumped into the program for each
// assistant reply.
type ReplyMsg struct {
	Message chat.Message
}

type Engine struct {
	machine *onboarding.Machine
	pubSub  *gochannel.GoChannel
	delay   time.Duration

	mu     sync.Mutex
	timers map[*time.Timer]struct{}
	closed bool
}

type Option func(*Engine)

// WithDelay overrides the simulated thinking delay. Tests use zero.
func WithDelay(d time.Duration) Option {
	return func(e *Engine) { e.delay = d }
}

func New(machine *onboarding.Machine, opts ...Option) *Engine {
	e := &Engine{
		machine: machine,
		pubSub:  gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 16}, watermill.NopLogger{}),
		delay:   1200 * time.Millisecond,
		timers:  map[*time.Timer]struct{}{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Submit feeds one guest turn through the funnel. The state machine advances
// synchronously, so the reply always lands after the user message the caller
// has already appended; the assistant message is published after the delay.
func (e *Engine) Submit(input string) {
	e.schedule(e.machine.Advance(input))
}

// SubmitAuthenticated answers a signed-in user's turn. The onboarding machine
// never sees authenticated input; until a real assistant backend is wired in,
// the reply is a plain acknowledgment.
func (e *Engine) SubmitAuthenticated(input string) {
	e.schedule(onboarding.Reply{
		Content: "I've made a note of that. Press ctrl+l to open any app on your desktop, or keep talking and I'll keep listening.",
	})
}

func (e *Engine) schedule(reply onboarding.Reply) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	var t *time.Timer
	t = time.AfterFunc(e.delay, func() {
		e.mu.Lock()
		delete(e.timers, t)
		closed := e.closed
		e.mu.Unlock()
		if closed {
			return
		}
		e.publish(reply)
	})
	e.timers[t] = struct{}{}
}

func (e *Engine) publish(reply onboarding.Reply) {
	m := chat.NewMessage(chat.RoleAgent, reply.Content)
	m.Options = reply.Options
	m.Action = reply.Action

	payload, err := json.Marshal(m)
	if err != nil {
		log.Error().Err(err).Str("component", "reply_engine").Msg("failed to marshal assistant reply")
		return
	}
	if err := e.pubSub.Publish(assistantTopic, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		log.Warn().Err(err).Str("component", "reply_engine").Msg("failed to publish assistant reply")
	}
}

// Subscribe returns the decoded assistant reply stream. Callers must
// subscribe before the first Submit or they will miss replies.
func (e *Engine) Subscribe(ctx context.Context) (<-chan chat.Message, error) {
	raw, err := e.pubSub.Subscribe(ctx, assistantTopic)
	if err != nil {
		return nil, errors.Wrap(err, "engine: subscribe")
	}
	out := make(chan chat.Message)
	go func() {
		defer close(out)
		for msg := range raw {
			var m chat.Message
			if err := json.Unmarshal(msg.Payload, &m); err != nil {
				log.Warn().Err(err).Str("component", "reply_engine").Msg("dropping undecodable reply")
				msg.Ack()
				continue
			}
			msg.Ack()
			select {
			case out <- m:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Forward pumps decoded replies into send (typically tea.Program.Send) until
// the context is cancelled or the engine closes.
func (e *Engine) Forward(ctx context.Context, send func(msg any)) error {
	ch, err := e.Subscribe(ctx)
	if err != nil {
		return err
	}
	for m := range ch {
		send(ReplyMsg{Message: m})
	}
	return nil
}

// Close stops pending reply timers and the bus. Replies that have not fired
// yet are dropped.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	for t := range e.timers {
		t.Stop()
	}
	e.timers = map[*time.Timer]struct{}{}
	e.mu.Unlock()
	return e.pubSub.Close()
}

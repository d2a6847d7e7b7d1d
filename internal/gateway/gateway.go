// Package gateway forwards the three musicbrain commands to a bridge and
// normalizes the bridge's failures.
package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Conceptual-Machines/musicbrain-api/internal/bridge"
)

// Operation names, as exposed to callers.
const (
	OpGenerateMusic = "generate_music"
	OpInterrogate   = "interrogate"
	OpGetEmotions   = "get_emotions"
)

// Observer is notified after every bridge call. It sees the outcome but
// cannot change it.
type Observer interface {
	ObserveBridgeCall(ctx context.Context, op string, duration time.Duration, err error)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, op string, duration time.Duration, err error)

func (f ObserverFunc) ObserveBridgeCall(ctx context.Context, op string, duration time.Duration, err error) {
	f(ctx, op, duration, err)
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithObserver registers an observer. Nil observers are ignored.
func WithObserver(o Observer) Option {
	return func(g *Gateway) {
		if o != nil {
			g.observers = append(g.observers, o)
		}
	}
}

// Gateway holds no per-call state and is safe for concurrent use.
type Gateway struct {
	bridge    bridge.Bridge
	observers []Observer
}

func New(b bridge.Bridge, opts ...Option) *Gateway {
	g := &Gateway{bridge: b}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateMusic forwards req to the bridge's generate operation.
func (g *Gateway) GenerateMusic(ctx context.Context, req bridge.GenerateRequest) (json.RawMessage, error) {
	return g.call(ctx, OpGenerateMusic, func(ctx context.Context) (json.RawMessage, error) {
		return g.bridge.Generate(ctx, req)
	})
}

// Interrogate forwards req to the bridge's interrogate operation. Session
// handling belongs to the bridge.
func (g *Gateway) Interrogate(ctx context.Context, req bridge.InterrogateRequest) (json.RawMessage, error) {
	return g.call(ctx, OpInterrogate, func(ctx context.Context) (json.RawMessage, error) {
		return g.bridge.Interrogate(ctx, req)
	})
}

// GetEmotions returns the bridge's emotion catalog.
func (g *Gateway) GetEmotions(ctx context.Context) (json.RawMessage, error) {
	return g.call(ctx, OpGetEmotions, g.bridge.GetEmotions)
}

func (g *Gateway) call(ctx context.Context, op string, fn func(context.Context) (json.RawMessage, error)) (json.RawMessage, error) {
	start := time.Now()
	result, err := fn(ctx)
	duration := time.Since(start)

	for _, o := range g.observers {
		o.ObserveBridgeCall(ctx, op, duration, err)
	}

	if err != nil {
		return nil, &Error{Op: op, Cause: err}
	}
	return result, nil
}

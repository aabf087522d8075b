package decision

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Invoker sends one request to an inference endpoint and returns the raw
// reply text.
type Invoker interface {
	Invoke(ctx context.Context, req Request) (string, error)
}

// InvokerFunc adapts a function to Invoker.
type InvokerFunc func(ctx context.Context, req Request) (string, error)

// Invoke calls f.
func (f InvokerFunc) Invoke(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Observer is told about every resolved invocation.
type Observer interface {
	ObserveDecision(st State, elapsed time.Duration)
}

// Engine runs invocations for desks.
type Engine struct {
	invoker  Invoker
	observer Observer
	log      *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver attaches an Observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine returns an Engine calling invoker.
func NewEngine(invoker Invoker, opts ...Option) *Engine {
	e := &Engine{invoker: invoker, log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dispatch submits query on desk and returns immediately. The invocation
// runs in its own goroutine on a context that ignores ctx's cancellation,
// so it outlives the HTTP request that started it. Dispatch returns false
// when the submission was a no-op.
func (e *Engine) Dispatch(ctx context.Context, desk *Desk, query string) bool {
	req, ok := desk.Begin(query)
	if !ok {
		return false
	}
	go e.run(context.WithoutCancel(ctx), desk, req)
	return true
}

// Decide submits query on desk and waits for the terminal state. When the
// submission is a no-op it returns the desk's current state and false.
func (e *Engine) Decide(ctx context.Context, desk *Desk, query string) (State, bool) {
	req, ok := desk.Begin(query)
	if !ok {
		return desk.State(), false
	}
	return e.run(ctx, desk, req), true
}

func (e *Engine) run(ctx context.Context, desk *Desk, req Request) State {
	start := time.Now()
	text, err := e.invoker.Invoke(ctx, req)
	elapsed := time.Since(start)

	st := desk.Complete(text, err)
	if err != nil {
		msg, _ := st.Failure()
		e.log.Error("decision failed",
			zap.Stringer("desk", desk.ID()),
			zap.Error(err),
			zap.String("message", msg),
			zap.Duration("elapsed", elapsed),
		)
	} else {
		decision, _ := st.Decision()
		e.log.Info("decision made",
			zap.Stringer("desk", desk.ID()),
			zap.String("decision", decision),
			zap.Duration("elapsed", elapsed),
		)
	}
	if e.observer != nil {
		e.observer.ObserveDecision(st, elapsed)
	}
	return st
}

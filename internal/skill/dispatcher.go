package skill

import (
	"context"
	"fmt"

	"github.com/distrubuted-game-mechanic/hello-buttons/internal/models"
	"github.com/distrubuted-game-mechanic/hello-buttons/internal/session"
	"github.com/distrubuted-game-mechanic/hello-buttons/pkg/logger"
)

// ResponseVersion is the envelope version emitted by the dispatcher
const ResponseVersion = "1.0"

// Input is everything a handler may read or write during one invocation.
// Envelope is read-only; Attributes is a working copy committed only when the
// handler succeeds.
type Input struct {
	Envelope   *models.RequestEnvelope
	Attributes *session.Attributes
	Response   *ResponseBuilder
	Logger     *logger.Logger
}

// HandlerFunc handles a matched request.
type HandlerFunc func(ctx context.Context, in *Input) error

// Predicate decides whether a route applies to a request.
type Predicate func(env *models.RequestEnvelope) bool

// ErrorHandlerFunc renders the fallback response after a failed invocation.
type ErrorHandlerFunc func(ctx context.Context, in *Input, err error)

// Route pairs a predicate with its handler.
type Route struct {
	Name   string
	Match  Predicate
	Handle HandlerFunc
}

// HandlerError is a failure raised while handling a request.
type HandlerError struct {
	Handler string
	Err     error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler %s: %v", e.Handler, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// Outcome is the immutable result passed to response hooks.
type Outcome struct {
	Request  models.RequestEnvelope
	Handler  string
	Err      error
	Envelope models.ResponseEnvelope
}

// RequestHook observes an inbound envelope before dispatch.
type RequestHook func(ctx context.Context, env models.RequestEnvelope)

// ResponseHook observes the outcome after dispatch.
type ResponseHook func(ctx context.Context, out Outcome)

// Dispatcher routes requests to the first matching handler and wraps it in a
// single error boundary.
type Dispatcher struct {
	routes        []Route
	fallback      Route
	onError       ErrorHandlerFunc
	requestHooks  []RequestHook
	responseHooks []ResponseHook
	logger        *logger.Logger
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithRequestHook adds a pre-dispatch observer
func WithRequestHook(h RequestHook) Option {
	return func(d *Dispatcher) { d.requestHooks = append(d.requestHooks, h) }
}

// WithResponseHook adds a post-dispatch observer
func WithResponseHook(h ResponseHook) Option {
	return func(d *Dispatcher) { d.responseHooks = append(d.responseHooks, h) }
}

// WithErrorHandler replaces the error-boundary handler
func WithErrorHandler(h ErrorHandlerFunc) Option {
	return func(d *Dispatcher) { d.onError = h }
}

// WithFallback replaces the route used when no predicate matches
func WithFallback(r Route) Option {
	return func(d *Dispatcher) { d.fallback = r }
}

// NewDispatcher creates a dispatcher over routes, evaluated in order.
func NewDispatcher(log *logger.Logger, routes []Route, opts ...Option) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	d := &Dispatcher{
		routes:   append([]Route(nil), routes...),
		fallback: Route{Name: "default", Match: Always, Handle: Default},
		onError:  ErrorHandler,
		logger:   log.With(logger.F("component", "dispatcher")),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch handles one invocation. It always returns a response envelope:
// either the matched handler's response with the updated attributes, or the
// error handler's response with the attributes exactly as received.
func (d *Dispatcher) Dispatch(ctx context.Context, env *models.RequestEnvelope) *models.ResponseEnvelope {
	for _, hook := range d.requestHooks {
		d.observe("request", func() { hook(ctx, snapshotRequest(env)) })
	}

	name, resp, attrs, err := d.handle(ctx, env)
	if err != nil {
		d.logger.Error("Request handling failed",
			logger.F("handler", name),
			logger.F("request_id", env.Request.RequestID),
			logger.Err(err))
		resp = d.fallbackResponse(ctx, env, err)
		attrs = env.Session.Attributes.Clone()
	}

	out := &models.ResponseEnvelope{
		Version:           ResponseVersion,
		SessionAttributes: attrs,
		Response:          resp,
	}

	if len(d.responseHooks) > 0 {
		outcome := Outcome{
			Request:  snapshotRequest(env),
			Handler:  name,
			Err:      err,
			Envelope: snapshotResponse(out),
		}
		for _, hook := range d.responseHooks {
			d.observe("response", func() { hook(ctx, outcome) })
		}
	}

	return out
}

// Select returns the route that would handle env.
func (d *Dispatcher) Select(env *models.RequestEnvelope) Route {
	for _, r := range d.routes {
		if r.Match(env) {
			return r
		}
	}
	return d.fallback
}

func (d *Dispatcher) handle(ctx context.Context, env *models.RequestEnvelope) (name string, resp models.Response, attrs models.Attributes, err error) {
	name = "unrouted"
	defer func() {
		if r := recover(); r != nil {
			err = &HandlerError{Handler: name, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	route := d.Select(env)
	name = route.Name

	current, err := session.Decode(env.Session.Attributes)
	if err != nil {
		return name, resp, nil, &HandlerError{Handler: name, Err: err}
	}

	in := &Input{
		Envelope:   env,
		Attributes: current.Clone(),
		Response:   NewResponseBuilder(),
		Logger:     d.logger.With(logger.F("handler", name), logger.F("request_id", env.Request.RequestID)),
	}
	if err := route.Handle(ctx, in); err != nil {
		return name, resp, nil, &HandlerError{Handler: name, Err: err}
	}

	return name, in.Response.Build(), in.Attributes.Encode(), nil
}

// fallbackResponse renders the error response; it cannot fail.
func (d *Dispatcher) fallbackResponse(ctx context.Context, env *models.RequestEnvelope, cause error) (resp models.Response) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Error handler panicked", logger.F("panic", fmt.Sprint(r)))
			resp = NewResponseBuilder().Speak(speechError).Reprompt(speechError).Build()
		}
	}()

	in := &Input{
		Envelope:   env,
		Attributes: session.New(),
		Response:   NewResponseBuilder(),
		Logger:     d.logger,
	}
	d.onError(ctx, in, cause)
	return in.Response.Build()
}

// observe runs a hook best-effort; a failing observer never affects the pipeline.
func (d *Dispatcher) observe(kind string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Hook failed", logger.F("hook", kind), logger.F("panic", fmt.Sprint(r)))
		}
	}()
	fn()
}

func snapshotRequest(env *models.RequestEnvelope) models.RequestEnvelope {
	c := *env
	c.Session.Attributes = env.Session.Attributes.Clone()
	if env.Request.Intent != nil {
		intent := *env.Request.Intent
		c.Request.Intent = &intent
	}
	if env.Request.Events != nil {
		c.Request.Events = make([]models.GameEngineEvent, len(env.Request.Events))
		for i, ev := range env.Request.Events {
			c.Request.Events[i] = models.GameEngineEvent{
				Name:        ev.Name,
				InputEvents: append([]models.InputEvent(nil), ev.InputEvents...),
			}
		}
	}
	return c
}

func snapshotResponse(out *models.ResponseEnvelope) models.ResponseEnvelope {
	c := *out
	c.SessionAttributes = out.SessionAttributes.Clone()
	if out.Response.Directives != nil {
		c.Response.Directives = append([]models.Directive(nil), out.Response.Directives...)
	}
	return c
}

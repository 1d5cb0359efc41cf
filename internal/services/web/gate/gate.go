package gate

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/bengkel/internal/platform/requestctx"
	"github.com/louisbranch/bengkel/internal/platform/timeouts"
	apperrors "github.com/louisbranch/bengkel/internal/services/web/platform/errors"
	"github.com/louisbranch/bengkel/internal/services/web/platform/httpx"
	"github.com/louisbranch/bengkel/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/bengkel/internal/services/web/platform/sessioncookie"
)

const tracerName = "github.com/louisbranch/bengkel/internal/services/web/gate"

// ErrorWriter renders a failed session lookup.
type ErrorWriter func(http.ResponseWriter, *http.Request, error)

// Gate enforces sign-in for the protected area.
type Gate struct {
	resolver      SessionResolver
	policy        requestmeta.Policy
	lookupTimeout time.Duration
	writeError    ErrorWriter
	tracer        trace.Tracer
}

// Option configures a Gate.
type Option func(*Gate)

// WithSchemePolicy controls how renewed session cookies decide on Secure.
func WithSchemePolicy(policy requestmeta.Policy) Option {
	return func(g *Gate) { g.policy = policy }
}

// WithLookupTimeout caps each session lookup. Zero disables the cap.
func WithLookupTimeout(d time.Duration) Option {
	return func(g *Gate) { g.lookupTimeout = d }
}

// WithErrorWriter replaces the response written when the lookup fails.
func WithErrorWriter(w ErrorWriter) Option {
	return func(g *Gate) {
		if w != nil {
			g.writeError = w
		}
	}
}

// WithTracer overrides the otel tracer.
func WithTracer(t trace.Tracer) Option {
	return func(g *Gate) {
		if t != nil {
			g.tracer = t
		}
	}
}

// New builds a Gate over resolver.
func New(resolver SessionResolver, opts ...Option) (*Gate, error) {
	if resolver == nil {
		return nil, errors.New("session resolver is required")
	}
	g := &Gate{
		resolver:      resolver,
		lookupTimeout: timeouts.SessionLookup,
		writeError:    defaultErrorWriter,
		tracer:        otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

// Decision is the result of evaluating one request.
type Decision struct {
	Class         PathClass
	Action        Action
	Authenticated bool
	Session       Session
}

// Evaluate classifies r, resolves its session at most once, and decides.
// Bypass paths never reach the resolver.
func (g *Gate) Evaluate(r *http.Request) (Decision, error) {
	class := Classify(r.URL.Path)
	if class == PathBypass {
		return Decision{Class: class, Action: Decide(class, false)}, nil
	}

	ctx, span := g.tracer.Start(r.Context(), "gate.decide", trace.WithAttributes(
		attribute.String("gate.path_class", class.String()),
	))
	defer span.End()

	if g.lookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.lookupTimeout)
		defer cancel()
	}

	session, ok, err := g.resolver.ResolveSession(r.WithContext(ctx))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "session lookup failed")
		return Decision{Class: class}, &AuthResolutionError{Path: r.URL.Path, Err: err}
	}
	if !ok {
		session = Session{}
	}

	action := Decide(class, ok)
	span.SetAttributes(
		attribute.Bool("gate.authenticated", ok),
		attribute.String("gate.action", action.String()),
	)
	return Decision{Class: class, Action: action, Authenticated: ok, Session: session}, nil
}

// Middleware applies the gate in front of next.
func (g *Gate) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision, err := g.Evaluate(r)
			if err != nil {
				g.writeError(w, r, err)
				return
			}
			if decision.Authenticated && decision.Session.RenewedToken != "" {
				sessioncookie.Write(w, r, g.policy, decision.Session.RenewedToken, decision.Session.ExpiresAt)
			}
			if decision.Action.Kind == ActionRedirect {
				http.Redirect(w, r, decision.Action.Location, http.StatusFound)
				return
			}
			if decision.Authenticated {
				ctx := WithSession(r.Context(), decision.Session)
				ctx = requestctx.WithUserID(ctx, decision.Session.UserID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func defaultErrorWriter(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("gate: %v request_id=%s", err, requestctx.RequestIDFromContext(r.Context()))
	httpx.WriteError(w, apperrors.Wrap(apperrors.KindUnavailable, "session lookup failed", err))
}

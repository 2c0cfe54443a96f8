// ABOUTME: Dispatcher runs one navigation event end to end
// ABOUTME: Normalizes params, awaits the rerun probe with a bounded timeout, resolves and presents the target
package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harper/galaxy-nav/internal/config"
	"github.com/harper/galaxy-nav/internal/models"
)

// DefaultRerunTimeout bounds how long a navigation waits for the rerun probe
const DefaultRerunTimeout = 5 * time.Second

// errSuperseded is the cancellation cause of a navigation overtaken by a newer one
var errSuperseded = errors.New("navigation superseded")

// RerunResolver classifies a rerun request. Implemented by jobs.Client.
type RerunResolver interface {
	Resolve(ctx context.Context, jobID, targetID string) (models.RerunClassification, error)
}

// Presenter receives the navigation to display. Present is called while the
// Dispatcher holds its lock, so it must not call Dispatch or DispatchURL on the
// same Dispatcher synchronously; start follow-up navigations in a new goroutine.
type Presenter interface {
	Present(ctx context.Context, nav models.Navigation) error
}

// PresenterFunc adapts a function to Presenter
type PresenterFunc func(ctx context.Context, nav models.Navigation) error

// Present calls f(ctx, nav)
func (f PresenterFunc) Present(ctx context.Context, nav models.Navigation) error {
	return f(ctx, nav)
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithLogger sets the logger used for degraded navigations
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithRerunTimeout bounds the rerun probe
func WithRerunTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.rerunTimeout = timeout
		}
	}
}

// WithAppRoot sets the path prefix Galaxy is served under, used by DispatchURL
func WithAppRoot(appRoot string) Option {
	return func(d *Dispatcher) {
		d.appRoot = appRoot
	}
}

// Dispatcher turns home-route parameters into a presented navigation target.
// Starting a navigation cancels the rerun probe of any older one still in flight,
// and only the newest navigation is ever presented.
type Dispatcher struct {
	router       *RouteResolver
	resolver     RerunResolver
	presenter    Presenter
	logger       *zap.Logger
	rerunTimeout time.Duration
	appRoot      string

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelCauseFunc
}

// NewDispatcher creates a Dispatcher. resolver and presenter may be nil:
// without a resolver no probe runs, without a presenter results are only returned.
func NewDispatcher(client config.ClientConfig, resolver RerunResolver, presenter Presenter, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		router:       NewRouteResolver(client),
		resolver:     resolver,
		presenter:    presenter,
		logger:       zap.NewNop(),
		rerunTimeout: DefaultRerunTimeout,
		appRoot:      "/",
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch resolves one navigation event. It never fails: malformed parameters
// fall through to the welcome page and a failed probe counts as an ordinary rerun.
func (d *Dispatcher) Dispatch(ctx context.Context, params map[string]string) models.Navigation {
	eventID := "nav_" + uuid.New().String()
	seq, navCtx, done := d.begin(ctx)
	defer done()

	req, err := Normalize(params)
	if err != nil {
		d.logger.Warn("Malformed navigation parameters, showing default page",
			zap.String("event_id", eventID),
			zap.Error(err))
		req = models.RequestDescriptor{}
	}

	class := models.NotApplicable()
	// upload1 wins regardless of the probe, so it never issues one
	if req.HasRerunProbe() && !req.IsUpload() {
		class = d.probe(navCtx, eventID, req)
	}

	nav := d.router.Resolve(req, class)
	nav.EventID = eventID

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.seq != seq {
		nav.Superseded = true
		d.logger.Debug("Navigation superseded, not presenting",
			zap.String("event_id", eventID),
			zap.String("rule", string(nav.Rule)))
		return nav
	}

	// Held under mu so a newer navigation cannot be presented before this one
	if d.presenter != nil {
		if err := d.presenter.Present(ctx, nav); err != nil {
			d.logger.Warn("Presenting navigation failed",
				zap.String("event_id", eventID),
				zap.Error(err))
		}
	}

	return nav
}

// DispatchURL dispatches a full home-route URL under the app root. Only ErrNotHomeRoute
// is returned; an unparsable URL degrades to the welcome page like any malformed parameter.
func (d *Dispatcher) DispatchURL(ctx context.Context, rawURL string) (models.Navigation, error) {
	params, err := ParamsFromURL(rawURL, d.appRoot)
	if errors.Is(err, ErrNotHomeRoute) {
		return models.Navigation{}, err
	}
	if err != nil {
		d.logger.Warn("Unparsable navigation URL, showing default page",
			zap.String("url", rawURL),
			zap.Error(err))
		params = nil
	}
	return d.Dispatch(ctx, params), nil
}

// begin registers a new navigation, cancelling the probe of the previous one
func (d *Dispatcher) begin(parent context.Context) (uint64, context.Context, func()) {
	ctx, cancel := context.WithCancelCause(parent)

	d.mu.Lock()
	if d.cancel != nil {
		d.cancel(errSuperseded)
	}
	d.seq++
	seq := d.seq
	d.cancel = cancel
	d.mu.Unlock()

	return seq, ctx, func() {
		d.mu.Lock()
		if d.seq == seq {
			d.cancel = nil
		}
		d.mu.Unlock()
		cancel(nil)
	}
}

// probe runs the rerun lookup under the rerun timeout; any failure yields Ordinary
func (d *Dispatcher) probe(ctx context.Context, eventID string, req models.RequestDescriptor) models.RerunClassification {
	if d.resolver == nil {
		return models.Ordinary()
	}

	probeCtx, cancel := context.WithTimeout(ctx, d.rerunTimeout)
	defer cancel()

	class, err := d.resolver.Resolve(probeCtx, req.JobID, req.RerunID)
	if err != nil {
		if errors.Is(context.Cause(ctx), errSuperseded) {
			d.logger.Debug("Rerun probe cancelled by newer navigation",
				zap.String("event_id", eventID),
				zap.String("job_id", req.JobID))
		} else {
			d.logger.Warn("Rerun probe failed, treating as ordinary rerun",
				zap.String("event_id", eventID),
				zap.String("job_id", req.JobID),
				zap.Error(err))
		}
		return models.Ordinary()
	}

	// A settled but unknown classification is not trusted to redirect
	if !class.Kind.IsValid() || class.Kind == models.RerunPending {
		return models.Ordinary()
	}
	return class
}

package arango

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option customizes the behavior of a Dispatcher created by NewConnection.
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(cfg *config) {
	f(cfg)
}

type config struct {
	urls            []string
	arangoVersion   int
	strategy        LoadBalancingStrategy
	retriesDisabled bool
	maxRetries      int
	maxSockets      int
	keepAlive       bool
	keepAliveSet    bool
	keepAliveMsecs  time.Duration
	headers         http.Header
	rootCtx         context.Context //nolint:containedctx
	logger          Logger
	registerer      prometheus.Registerer
}

func (cfg *config) applyDefaults() {
	if len(cfg.urls) == 0 {
		cfg.urls = []string{"http://localhost:8529"}
	}
	if cfg.arangoVersion == 0 {
		cfg.arangoVersion = 30400
	}
	if cfg.maxSockets == 0 {
		cfg.maxSockets = 3
	}
	if !cfg.keepAliveSet {
		cfg.keepAlive = true
	}
	if cfg.keepAliveMsecs == 0 {
		cfg.keepAliveMsecs = time.Second
	}
	if cfg.rootCtx == nil {
		cfg.rootCtx = context.Background()
	}
	if cfg.logger == nil {
		cfg.logger = noopLogger{}
	}
}

// WithURLs sets the coordinator URLs to load-balance across. Each passes
// through the URL sanitizer and is deduplicated. Defaults to
// http://localhost:8529 if this option is never given; an explicit empty
// list falls back to the same default.
func WithURLs(urls ...string) Option {
	return optionFunc(func(cfg *config) {
		cfg.urls = urls
	})
}

// WithArangoVersion sets the numeric value emitted as the
// x-arango-version request header. Defaults to 30400.
func WithArangoVersion(version int) Option {
	return optionFunc(func(cfg *config) {
		cfg.arangoVersion = version
	})
}

// WithLoadBalancingStrategy selects the host-selection policy. Defaults
// to None.
func WithLoadBalancingStrategy(strategy LoadBalancingStrategy) Option {
	return optionFunc(func(cfg *config) {
		cfg.strategy = strategy
	})
}

// NoRetries disables transparent retry regardless of host count,
// corresponding to "maxRetries: false" in the original configuration
// surface.
func NoRetries() Option {
	return optionFunc(func(cfg *config) {
		cfg.retriesDisabled = true
	})
}

// WithMaxRetries bounds the total number of transparent retries. The
// zero value (the default, when this option is never given) instead
// retries up to len(hosts)-1 times; see §9's "retry bound anomaly".
func WithMaxRetries(max int) Option {
	return optionFunc(func(cfg *config) {
		cfg.maxRetries = max
	})
}

// WithMaxSockets bounds the number of concurrent connections opened to
// each coordinator. Defaults to 3.
func WithMaxSockets(n int) Option {
	return optionFunc(func(cfg *config) {
		cfg.maxSockets = n
	})
}

// WithKeepAlive enables or disables HTTP connection reuse. Defaults to
// true.
func WithKeepAlive(enabled bool) Option {
	return optionFunc(func(cfg *config) {
		cfg.keepAlive = enabled
		cfg.keepAliveSet = true
	})
}

// WithKeepAliveTimeout configures how long an idle kept-alive connection
// may sit before being closed. Defaults to 1 second.
func WithKeepAliveTimeout(d time.Duration) Option {
	return optionFunc(func(cfg *config) {
		cfg.keepAliveMsecs = d
	})
}

// WithHeaders merges the given headers into every outgoing request as
// the lowest-priority layer.
func WithHeaders(headers http.Header) Option {
	return optionFunc(func(cfg *config) {
		cfg.headers = headers.Clone()
	})
}

// WithRootContext configures the context every transport round trip is
// sent with. The jittered retry timers do not observe it. If not
// specified, context.Background is used.
func WithRootContext(ctx context.Context) Option {
	return optionFunc(func(cfg *config) {
		cfg.rootCtx = ctx
	})
}

// WithLogger configures where the dispatcher reports state transitions.
// Defaults to a no-op logger.
func WithLogger(logger Logger) Option {
	return optionFunc(func(cfg *config) {
		cfg.logger = logger
	})
}

// WithMetricsCollector registers the dispatcher's task-outcome counter
// and in-flight gauge into registerer. Defaults to a private registry
// that is never scraped, so the dispatcher never touches the default
// global prometheus registry unless this option is given.
func WithMetricsCollector(registerer prometheus.Registerer) Option {
	return optionFunc(func(cfg *config) {
		cfg.registerer = registerer
	})
}

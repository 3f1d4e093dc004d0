package arango

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"

	"github.com/mysticaltech/arangojs/endpoint"
	"github.com/mysticaltech/arangojs/hostlist"
	"github.com/mysticaltech/arangojs/internal"
)

// retryPolicy models the "maxRetries" anomaly from §9: the default value
// 0 means "retry up to len(hosts)-1 times", while any positive value is
// used verbatim and is *not* multiplied by host count. Disabled means
// "maxRetries: false" — no transparent retry regardless of host count.
type retryPolicy struct {
	Disabled bool
	Max      int
}

func (r retryPolicy) effectiveMax(numHosts int) int {
	if r.Max > 0 {
		return r.Max
	}
	if numHosts <= 1 {
		return 0
	}
	return numHosts - 1
}

// Dispatcher is the single logical scheduler described in §5: it owns
// the FIFO task queue, the active-task counter, the two host cursors,
// the load-balancing policy, the retry policy, the default headers, and
// the optional transaction id. All of its state is protected by mu;
// pump never blocks while holding it — each transport call runs on its
// own goroutine and reports back through onOutcome.
type Dispatcher struct {
	mu sync.Mutex

	hosts       *hostlist.List
	queue       []*task
	activeTasks int
	maxTasks    int

	primary cursor
	dirty   cursor

	strategy LoadBalancingStrategy
	retry    retryPolicy

	defaultHeaders http.Header
	transactionID  string
	serverVersion  int

	closed    bool
	closeOnce sync.Once

	rootCtx context.Context //nolint:containedctx

	logger  Logger
	metrics *metricsCollector
	clock   internal.Clock
}

func newDispatcher(cfg *config) (*Dispatcher, error) {
	hosts := hostlist.New(endpoint.Options{
		MaxSockets:     cfg.maxSockets,
		KeepAlive:      cfg.keepAlive,
		KeepAliveMsecs: cfg.keepAliveMsecs,
	})
	indices, err := hosts.Add(cfg.urls...)
	if err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		return nil, errNoHosts
	}

	strategy := cfg.strategy
	d := &Dispatcher{
		hosts:          hosts,
		maxTasks:       endpoint.Options{MaxSockets: cfg.maxSockets, KeepAlive: cfg.keepAlive}.MaxTasks(),
		primary:        newCursor(hosts.Len(), strategy == OneRandom),
		dirty:          newCursor(hosts.Len(), strategy == OneRandom),
		strategy:       strategy,
		retry:          retryPolicy{Disabled: cfg.retriesDisabled, Max: cfg.maxRetries},
		defaultHeaders: cfg.headers,
		serverVersion:  cfg.arangoVersion,
		rootCtx:        cfg.rootCtx,
		logger:         cfg.logger,
		metrics:        newMetricsCollector(cfg.registerer),
		clock:          internal.NewRealClock(),
	}
	return d, nil
}

// submit appends t to the tail of the queue and pumps, unless the
// dispatcher has already been closed.
func (d *Dispatcher) submit(t *task) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.queue = append(d.queue, t)
	d.pump()
	return nil
}

// pump dequeues and dispatches tasks while there is spare transport
// concurrency. Must be called with mu held; it never blocks while
// holding it, since each transport round trip runs on its own goroutine.
func (d *Dispatcher) pump() {
	for d.activeTasks < d.maxTasks && len(d.queue) > 0 && d.hosts.Len() > 0 {
		t := d.queue[0]
		d.queue = d.queue[1:]

		hostIndex := d.selectHost(t)
		entry := d.hosts.Get(hostIndex)

		d.activeTasks++
		d.metrics.setActiveTasks(d.activeTasks)

		go d.execute(t, hostIndex, entry)
	}
}

// selectHost implements §4.3 step 2: a pinned task always uses its pin;
// a dirty-read task uses (and advances) the dirty cursor and tags the
// request; everything else uses the primary cursor, advancing it
// immediately when the policy is RoundRobin.
func (d *Dispatcher) selectHost(t *task) int {
	if t.hostPin != nil {
		return *t.hostPin
	}
	if t.allowDirtyRead {
		idx := d.dirty.take()
		d.dirty.advance(d.hosts.Len())
		if t.prepared.Headers == nil {
			t.prepared.Headers = map[string][]string{}
		}
		t.prepared.Headers.Set("x-arango-allow-dirty-read", "true")
		return idx
	}
	idx := d.primary.take()
	if d.strategy == RoundRobin {
		d.primary.advance(d.hosts.Len())
	}
	return idx
}

// execute runs outside the lock: it performs the actual round trip and
// then reports the outcome back through onOutcome, which re-acquires mu.
func (d *Dispatcher) execute(t *task, hostIndex int, entry *hostlist.Entry) {
	resp, err := entry.Transport.RoundTrip(d.rootCtx, t.prepared)
	d.onOutcome(t, hostIndex, entry, resp, err)
}

// onOutcome implements §4.4: transport error handling (failover cursor
// advance, retry-eligibility, or final failure) and transport success
// handling (leader redirect or handoff to the Response Interpreter).
func (d *Dispatcher) onOutcome(t *task, hostIndex int, entry *hostlist.Entry, resp *endpoint.Response, transportErr error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.activeTasks--
	d.metrics.setActiveTasks(d.activeTasks)

	if transportErr != nil {
		d.handleTransportError(t, hostIndex, entry, transportErr)
		d.pump()
		return
	}
	d.handleTransportSuccess(t, hostIndex, entry, resp)
	d.pump()
}

func (d *Dispatcher) handleTransportError(t *task, hostIndex int, entry *hostlist.Entry, transportErr error) {
	var te *endpoint.TransportErr
	isConnRefused := errors.As(transportErr, &te) && te.Syscall == "connect" && te.Code == "ECONNREFUSED"

	if d.strategy.usesFailover() && d.hosts.Len() > 1 && !t.allowDirtyRead && d.primary.take() == hostIndex {
		d.primary.advance(d.hosts.Len())
		d.logger.Debugf("arango: failover: primary cursor advanced past host %d (%s)", hostIndex, entry.URL)
	}

	eligible := !d.retry.Disabled &&
		t.hostPin == nil &&
		t.retries < d.retry.effectiveMax(d.hosts.Len()) &&
		isConnRefused

	if eligible {
		t.retries++
		d.logger.Debugf("arango: retrying task on host %d after connection refused (attempt %d)", hostIndex, t.retries)
		d.scheduleRetry(t)
		d.metrics.recordOutcome(outcomeTransport)
		return
	}

	d.logger.Errorf("arango: transport error from host %d (%s), not retrying: %v", hostIndex, entry.URL, transportErr)
	d.metrics.recordOutcome(outcomeTransport)
	t.resolve(nil, wrapTransportErr(entry.URL, te, transportErr))
}

// scheduleRetry appends t to the queue tail after a small jittered delay,
// so a sustained ECONNREFUSED loop doesn't hot-spin the scheduler. The
// delay never blocks pump/onOutcome: it runs on its own goroutine and
// only re-acquires mu to perform the actual append+pump.
func (d *Dispatcher) scheduleRetry(t *task) {
	delay := retryDelay(t.retries)
	if delay <= 0 {
		if d.closed {
			t.resolve(nil, ErrClosed)
			return
		}
		d.queue = append(d.queue, t)
		return
	}
	go func() {
		<-d.clock.After(delay)
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.closed {
			t.resolve(nil, ErrClosed)
			return
		}
		d.queue = append(d.queue, t)
		d.pump()
	}()
}

func (d *Dispatcher) handleTransportSuccess(t *task, hostIndex int, entry *hostlist.Entry, resp *endpoint.Response) {
	if resp.StatusCode == 503 {
		if leaderURL := resp.Header.Get("x-arango-endpoint"); leaderURL != "" {
			if indices, err := d.hosts.Add(leaderURL); err == nil {
				newIndex := indices[0]
				pin := newIndex
				t.hostPin = &pin
				if d.primary.take() == hostIndex {
					d.primary.set(newIndex)
				}
				d.logger.Debugf("arango: leader redirect from host %d to %s (index %d)", hostIndex, leaderURL, newIndex)
				d.metrics.recordOutcome(outcomeRedirect)
				if d.closed {
					t.resolve(nil, ErrClosed)
					return
				}
				d.queue = append(d.queue, t)
				return
			}
		}
	}

	interpreted, err := interpret(resp, hostIndex, t.prepared.ExpectBinary)
	if err != nil {
		d.recordInterpretedOutcome(err)
		t.resolve(nil, err)
		return
	}

	if t.transformer != nil {
		result, terr := t.transformer(interpreted)
		if terr != nil {
			d.metrics.recordOutcome(outcomeHTTPError)
			t.resolve(nil, terr)
			return
		}
		interpreted.Result = result
	}
	d.metrics.recordOutcome(outcomeSuccess)
	t.resolve(interpreted, nil)
}

func (d *Dispatcher) recordInterpretedOutcome(err error) {
	var arangoErr *ArangoError
	var httpErr *HTTPError
	switch {
	case errors.As(err, &arangoErr):
		d.metrics.recordOutcome(outcomeDomainError)
	case errors.As(err, &httpErr):
		d.metrics.recordOutcome(outcomeHTTPError)
	default:
		d.metrics.recordOutcome(outcomeHTTPError)
	}
}

// setHeader updates the default header overlay; a nil value clears it.
func (d *Dispatcher) setHeader(name string, value *string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if value == nil {
		d.defaultHeaders.Del(name)
		return
	}
	if d.defaultHeaders == nil {
		d.defaultHeaders = http.Header{}
	}
	d.defaultHeaders.Set(name, *value)
}

func (d *Dispatcher) setTransactionID(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.transactionID = id
}

func (d *Dispatcher) clearTransactionID() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.transactionID = ""
}

// close implements the open question from §9: best-effort, idempotent,
// rejects new submissions, resolves any still-queued tasks with
// ErrClosed, and concurrently releases every endpoint transport.
func (d *Dispatcher) close() error {
	var closeErr error
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		pending := d.queue
		d.queue = nil
		numHosts := d.hosts.Len()
		entries := make([]*hostlist.Entry, numHosts)
		for i := 0; i < numHosts; i++ {
			entries[i] = d.hosts.Get(i)
		}
		d.mu.Unlock()

		for _, t := range pending {
			t.resolve(nil, ErrClosed)
		}

		grp, _ := errgroup.WithContext(context.Background())
		for _, e := range entries {
			e := e
			grp.Go(func() error { return e.Transport.Close() })
		}
		closeErr = grp.Wait()
	})
	return closeErr
}

func wrapTransportErr(hostURL string, te *endpoint.TransportErr, err error) *TransportError {
	if te != nil {
		return &TransportError{Host: hostURL, Syscall: te.Syscall, Code: te.Code, Err: te.Err}
	}
	return &TransportError{Host: hostURL, Err: err}
}

// retryDelay returns a small exponentially-increasing, jittered delay for
// the given retry attempt number (1-based), built on
// github.com/cenkalti/backoff/v4. It is capped low so the dispatcher
// never meaningfully stalls a retry loop, just avoids a hot spin.
func retryDelay(attempt int) time.Duration {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 5 * time.Millisecond
	bo.MaxInterval = 100 * time.Millisecond
	bo.Multiplier = 2
	bo.RandomizationFactor = 0.2
	bo.Reset()

	delay := bo.InitialInterval
	for i := 0; i < attempt; i++ {
		next := bo.NextBackOff()
		if next == backoff.Stop {
			break
		}
		delay = next
	}
	return delay
}

// Package endpoint provides the Transport type: one logical connection to
// a single coordinator URL, responsible for executing prepared requests
// and translating low-level socket failures into a form the dispatcher
// can classify for retry eligibility.
package endpoint

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/mysticaltech/arangojs/internal/urlutil"
)

// Options configures the http.Transport backing a Transport. These mirror
// the "agent"/"agentOptions" knobs recognized by the dispatcher's
// configuration.
type Options struct {
	// MaxSockets bounds the number of concurrent connections this
	// transport will open to its endpoint. Default 3.
	MaxSockets int
	// KeepAlive enables HTTP connection reuse. The zero value (false)
	// disables it; the dispatcher's configuration defaults it to true.
	KeepAlive bool
	// KeepAliveMsecs is how long an idle kept-alive connection is allowed
	// to sit before being closed. Default 1000ms.
	KeepAliveMsecs time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxSockets <= 0 {
		o.MaxSockets = 3
	}
	if o.KeepAliveMsecs <= 0 {
		o.KeepAliveMsecs = time.Second
	}
	return o
}

// MaxTasks returns the dispatcher concurrency ceiling this configuration
// implies: maxSockets, doubled when keep-alive is enabled, reflecting
// that pipelined reuse gives twice the effective parallelism without
// exceeding the socket budget.
func (o Options) MaxTasks() int {
	o = o.withDefaults()
	if o.KeepAlive {
		return o.MaxSockets * 2
	}
	return o.MaxSockets
}

// Prepared is one fully-assembled outgoing request, ready to send.
//
// IsBinary and ExpectBinary are opaque to Transport: it neither reads
// nor branches on them. They ride along on Prepared purely so the
// dispatcher can read back, at response time, how the request body was
// encoded and how the response should be interpreted.
type Prepared struct {
	Method       string
	Path         string
	Query        string
	Headers      http.Header
	Body         []byte
	IsBinary     bool
	ExpectBinary bool
	Timeout      time.Duration
}

// Response is a transport-level success outcome: status, response
// headers (as net/http returns them, with canonical rather than
// lower-cased keys; Header.Get looks them up case-insensitively), and
// the raw body bytes. The dispatcher attaches the
// originating host index separately; Transport has no notion of host
// indices.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport executes prepared requests against one coordinator URL. One
// instance exists per Endpoint for the life of the pool.
type Transport struct {
	url        string
	normalized urlutil.Normalized
	client     *http.Client
	transport  *http.Transport
}

// New builds a Transport for the given (already-normalized) URL.
func New(normalized urlutil.Normalized, opts Options) *Transport {
	opts = opts.withDefaults()

	dialer := &net.Dialer{Timeout: 30 * time.Second, KeepAlive: 30 * time.Second}
	dialContext := dialer.DialContext
	if normalized.UnixSocketPath != "" {
		path := normalized.UnixSocketPath
		dialContext = func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", path)
		}
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialContext,
		MaxIdleConnsPerHost: opts.MaxSockets,
		MaxConnsPerHost:     opts.MaxSockets,
		IdleConnTimeout:     opts.KeepAliveMsecs,
		DisableKeepAlives:   !opts.KeepAlive,
	}

	return &Transport{
		url:        normalized.URL,
		normalized: normalized,
		transport:  transport,
		client:     &http.Client{Transport: transport},
	}
}

// URL returns the (normalized) endpoint URL this Transport was built for.
func (t *Transport) URL() string {
	return t.url
}

// RoundTrip sends req and returns either a Response or a *TransportErr
// describing the low-level failure. It never returns a plain error for
// protocol/status-level outcomes — those are always represented as a
// Response for the caller's Response Interpreter to classify.
func (t *Transport) RoundTrip(ctx context.Context, req Prepared) (*Response, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	target := t.url + req.Path
	if req.Query != "" {
		target += "?" + req.Query
	}

	var bodyReader io.Reader
	if len(req.Body) > 0 {
		bodyReader = strings.NewReader(string(req.Body))
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, bodyReader)
	if err != nil {
		return nil, &TransportErr{Host: t.url, Syscall: "request", Err: err}
	}
	httpReq.Header = req.Headers

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, classify(t.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(t.url, err)
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

// Close releases this endpoint's idle connections. Best-effort: it does
// not wait for in-flight requests and may be called more than once.
func (t *Transport) Close() error {
	t.transport.CloseIdleConnections()
	return nil
}

// TransportErr is the structured transport-level failure Transport.RoundTrip
// returns; it carries enough of the underlying syscall error for the
// dispatcher's retry-eligibility check (§4.4: ECONNREFUSED/"connect").
type TransportErr struct {
	Host    string
	Syscall string
	Code    string
	Err     error
}

func (e *TransportErr) Error() string { return "endpoint: " + e.Err.Error() }
func (e *TransportErr) Unwrap() error { return e.Err }

func classify(host string, err error) *TransportErr {
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return &TransportErr{Host: host, Err: err}
	}

	syscallName := opErr.Op
	var sysErr *os.SyscallError
	if errors.As(opErr.Err, &sysErr) {
		syscallName = sysErr.Syscall
	}

	code := ""
	var errno syscall.Errno
	if errors.As(opErr.Err, &errno) && errno == syscall.ECONNREFUSED {
		code = "ECONNREFUSED"
	}

	return &TransportErr{Host: host, Syscall: syscallName, Code: code, Err: err}
}

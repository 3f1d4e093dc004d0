package arango

import (
	"net/http"
	"time"

	"github.com/mysticaltech/arangojs/endpoint"
)

// taskResult is what a task's sink is invoked with exactly once: either a
// successful Response or the error that should be surfaced to the caller.
type taskResult struct {
	response *Response
	err      error
}

// task is one pending request as tracked by the dispatcher: the prepared
// request, its affinities, its retry counter, and its one-shot completion.
//
// A task is either queued, in-flight, or completed — never two of these
// at once; the dispatcher enforces this by construction (it only ever
// holds a task in one of its queue, or as the argument to an in-flight
// transport call).
type task struct {
	prepared       endpoint.Prepared
	hostPin        *int
	allowDirtyRead bool
	retries        int
	transformer    func(*Response) (any, error)

	sink chan taskResult
}

func newTask(prepared endpoint.Prepared, hostPin *int, allowDirtyRead bool, transformer func(*Response) (any, error)) *task {
	return &task{
		prepared:       prepared,
		hostPin:        hostPin,
		allowDirtyRead: allowDirtyRead,
		transformer:    transformer,
		sink:           make(chan taskResult, 1),
	}
}

// resolve invokes the task's sink exactly once.
func (t *task) resolve(resp *Response, err error) {
	t.sink <- taskResult{response: resp, err: err}
}

// Response is the interpreted outcome of a successful, non-redirected
// round trip: the raw transport response plus whatever the Response
// Interpreter (§4.6) attached to it.
type Response struct {
	StatusCode int
	Header     http.Header

	// Body is the parsed JSON value when the response's content-type was
	// JSON/JavaScript and the request's ExpectBinary was false; nil for
	// binary responses or bodies that weren't JSON.
	Body any
	// RawBody is always populated with the original response bytes.
	RawBody []byte
	// HostIndex is the host list index this response originated from,
	// needed by cursor-continuation operations that must pin follow-up
	// requests to the same coordinator.
	HostIndex int

	// Result holds the value returned by the caller's transformer, if
	// one was supplied to Request.
	Result any
}

// RawQuery carries a pre-built percent-encoded query string verbatim, one
// of the two forms a RequestDescriptor's Query field may take (see §4.5
// and the "qs" sum-type design note).
type RawQuery string

// QueryParams carries a parameter mapping to be percent-encoded by the
// dispatcher; entries whose value is the zero value of an interface
// (i.e. nil) are dropped, matching "drop entries with undefined values".
// A present-but-empty string is a legitimate query value and is encoded,
// not dropped.
type QueryParams map[string]any

func (RawQuery) isQuery()    {}
func (QueryParams) isQuery() {}

// Query is the sum type for a request's query string: either a RawQuery
// string used verbatim, or a QueryParams mapping to be encoded.
type Query interface {
	isQuery()
}

// RequestDescriptor is the caller-facing description of one request,
// consumed by the Public Request Entry (§4.5) to build a task.
type RequestDescriptor struct {
	Method  string
	Path    string
	Query   Query
	Headers http.Header
	// Body is either []byte (sent as-is with a text/plain content type
	// unless IsBinary is set, in which case application/octet-stream is
	// used) or any other value, which is JSON-marshaled with an
	// application/json content type.
	Body any
	// IsBinary indicates a request Body of []byte should be sent as
	// application/octet-stream rather than text/plain. It has no bearing
	// on how the response is interpreted.
	IsBinary bool
	// ExpectBinary indicates the response body should be left as raw
	// bytes by the Response Interpreter (§4.6) rather than parsed as
	// JSON. It has no bearing on how the request body is encoded.
	ExpectBinary bool
	// AllowDirtyRead routes this request via the dirty-read cursor and
	// adds the x-arango-allow-dirty-read header.
	AllowDirtyRead bool
	// Host, if non-nil, pins this request to a specific host list index
	// (used by cursor continuations and leader-redirect retries).
	Host *int
	// BasePath is prefixed to Path.
	BasePath string
	// Timeout bounds the entire round trip, from first request byte to
	// last response byte. Zero means no timeout.
	Timeout time.Duration
}

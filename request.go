package arango

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mysticaltech/arangojs/endpoint"
)

// Request is the Public Request Entry (§4.5): it builds a task from desc,
// submits it to the dispatcher, and blocks until the task's sink fires or
// ctx is done. If transformer is non-nil, it runs after the Response
// Interpreter and its result is attached to Response.Result.
//
// Cancelling ctx only abandons this call's wait; it does not cancel an
// already-submitted task, matching §5's "no user-facing cancellation of
// already-submitted tasks".
func (d *Dispatcher) Request(ctx context.Context, desc RequestDescriptor, transformer func(*Response) (any, error)) (*Response, error) {
	t, err := d.buildTask(desc, transformer)
	if err != nil {
		return nil, err
	}
	if err := d.submit(t); err != nil {
		return nil, err
	}
	select {
	case result := <-t.sink:
		return result.response, result.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (d *Dispatcher) buildTask(desc RequestDescriptor, transformer func(*Response) (any, error)) (*task, error) {
	d.mu.Lock()
	defaults := d.defaultHeaders.Clone()
	transactionID := d.transactionID
	serverVersion := d.serverVersion
	d.mu.Unlock()

	contentType, body, err := composeBody(desc.Body, desc.IsBinary)
	if err != nil {
		return nil, err
	}

	headers := composeHeaders(defaults, contentType, serverVersion, transactionID, desc.Headers)
	prepared := endpoint.Prepared{
		Method:       desc.Method,
		Path:         desc.BasePath + desc.Path,
		Query:        composeQuery(desc.Query),
		Headers:      headers,
		Body:         body,
		IsBinary:     desc.IsBinary,
		ExpectBinary: desc.ExpectBinary,
		Timeout:      desc.Timeout,
	}
	return newTask(prepared, desc.Host, desc.AllowDirtyRead, transformer), nil
}

// composeBody implements the content-type selection from §4.5: binary
// bodies get application/octet-stream, []byte bodies default to
// text/plain, and anything else is JSON-marshaled with application/json.
// A nil body is left empty, with application/octet-stream when isBinary
// is set and no content-type otherwise.
func composeBody(body any, isBinary bool) (contentType string, encoded []byte, err error) {
	switch v := body.(type) {
	case nil:
		if isBinary {
			return "application/octet-stream", nil, nil
		}
		return "", nil, nil
	case []byte:
		if isBinary {
			return "application/octet-stream", v, nil
		}
		return "text/plain", v, nil
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return "", nil, err
		}
		return "application/json", encoded, nil
	}
}

// composeHeaders layers headers lowest priority first, per §4.5:
// defaults, then {content-type, x-arango-version}, then x-arango-trx-id
// if a transaction is active, then the caller-supplied headers.
func composeHeaders(defaults http.Header, contentType string, serverVersion int, transactionID string, caller http.Header) http.Header {
	headers := http.Header{}
	for k, values := range defaults {
		headers[k] = append([]string(nil), values...)
	}
	if contentType != "" {
		headers.Set("content-type", contentType)
	}
	headers.Set("x-arango-version", strconv.Itoa(serverVersion))
	if transactionID != "" {
		headers.Set("x-arango-trx-id", transactionID)
	}
	for k, values := range caller {
		headers[k] = append([]string(nil), values...)
	}
	return headers
}

// composeQuery implements the "qs" sum type from §4.5/§9: a RawQuery is
// used verbatim, a QueryParams mapping is percent-encoded with entries
// whose value is nil dropped, matching "drop entries with undefined
// values". A present empty string is encoded, not dropped.
func composeQuery(q Query) string {
	switch v := q.(type) {
	case nil:
		return ""
	case RawQuery:
		return string(v)
	case QueryParams:
		values := url.Values{}
		for k, val := range v {
			if val == nil {
				continue
			}
			values.Set(k, fmt.Sprint(val))
		}
		return values.Encode()
	default:
		return ""
	}
}

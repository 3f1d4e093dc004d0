package arango

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/mysticaltech/arangojs/endpoint"
)

// jsonContentType matches content-type values the interpreter treats as
// JSON/JavaScript, per §4.6: "/\/(json|javascript)(\W|$)/".
var jsonContentType = regexp.MustCompile(`/(json|javascript)(\W|$)`)

// interpret applies the Response Interpreter (§4.6) to a transport
// success outcome for a task sent to hostIndex. It never itself handles
// leader-redirect; the dispatcher intercepts that case before calling
// this function.
func interpret(raw *endpoint.Response, hostIndex int, expectBinary bool) (*Response, error) {
	resp := &Response{
		StatusCode: raw.StatusCode,
		Header:     raw.Header,
		RawBody:    raw.Body,
		HostIndex:  hostIndex,
	}

	var parsed any
	isJSON := jsonContentType.MatchString(strings.ToLower(raw.Header.Get("content-type")))
	if isJSON && len(raw.Body) > 0 {
		if err := json.Unmarshal(raw.Body, &parsed); err != nil {
			if expectBinary {
				// Binary requests ignore parse failures and keep raw bytes.
				parsed = nil
			} else {
				return nil, &ParseError{Raw: raw.Body, Partial: string(raw.Body), Err: err}
			}
		}
	}

	if arangoErr, ok := asArangoError(parsed); ok {
		return nil, arangoErr
	}

	if raw.StatusCode >= 400 {
		return nil, &HTTPError{StatusCode: raw.StatusCode, Body: raw.Body, ParsedBody: parsed}
	}

	if !expectBinary {
		resp.Body = parsed
	}
	return resp, nil
}

// asArangoError reports whether parsed is a JSON object carrying all four
// of the database's structured error envelope keys, regardless of HTTP
// status, per §4.6 step 2.
func asArangoError(parsed any) (*ArangoError, bool) {
	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, false
	}
	_, hasError := obj["error"]
	_, hasCode := obj["code"]
	_, hasMessage := obj["errorMessage"]
	_, hasNum := obj["errorNum"]
	if !hasError || !hasCode || !hasMessage || !hasNum {
		return nil, false
	}

	arangoErr := &ArangoError{}
	if code, ok := obj["code"].(float64); ok {
		arangoErr.Code = int(code)
	}
	if msg, ok := obj["errorMessage"].(string); ok {
		arangoErr.ErrorMessage = msg
	}
	if num, ok := obj["errorNum"].(float64); ok {
		arangoErr.ErrorNum = int(num)
	}
	return arangoErr, true
}

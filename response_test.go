package arango

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mysticaltech/arangojs/endpoint"
)

func rawJSON(status int, body string) *endpoint.Response {
	return &endpoint.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": {"application/json; charset=utf-8"}},
		Body:       []byte(body),
	}
}

func TestInterpretSuccessfulJSON(t *testing.T) {
	t.Parallel()

	resp, err := interpret(rawJSON(200, `{"version":"3.7.0"}`), 2, false)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"version": "3.7.0"}, resp.Body)
	require.Equal(t, 2, resp.HostIndex)
	require.Equal(t, []byte(`{"version":"3.7.0"}`), resp.RawBody)
}

func TestInterpretEmptyBodyIsNotParsed(t *testing.T) {
	t.Parallel()

	resp, err := interpret(rawJSON(204, ``), 0, false)
	require.NoError(t, err)
	require.Nil(t, resp.Body)
}

func TestInterpretArangoErrorEnvelopeRegardlessOfStatus(t *testing.T) {
	t.Parallel()

	resp, err := interpret(rawJSON(200, `{"error":true,"code":404,"errorMessage":"not found","errorNum":1203}`), 0, false)
	require.Nil(t, resp)

	var arangoErr *ArangoError
	require.ErrorAs(t, err, &arangoErr)
	require.Equal(t, 404, arangoErr.Code)
	require.Equal(t, 1203, arangoErr.ErrorNum)
	require.Equal(t, "not found", arangoErr.ErrorMessage)
}

func TestInterpretEnvelopeRequiresAllFourKeys(t *testing.T) {
	t.Parallel()

	// Missing errorNum: not treated as a structured envelope, falls
	// through to the plain HTTPError path instead.
	resp, err := interpret(rawJSON(404, `{"error":true,"code":404,"errorMessage":"not found"}`), 0, false)
	require.Nil(t, resp)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, 404, httpErr.StatusCode)
}

// An object carrying all four envelope keys is an envelope whatever the
// value of its "error" key.
func TestInterpretErrorFlagFalseIsStillAnEnvelope(t *testing.T) {
	t.Parallel()

	resp, err := interpret(rawJSON(200, `{"error":false,"code":200,"errorMessage":"","errorNum":0}`), 0, false)
	require.Nil(t, resp)

	var arangoErr *ArangoError
	require.ErrorAs(t, err, &arangoErr)
	require.Equal(t, 200, arangoErr.Code)
}

func TestInterpretHTTPErrorWithoutEnvelope(t *testing.T) {
	t.Parallel()

	resp, err := interpret(&endpoint.Response{StatusCode: 500, Header: http.Header{}, Body: []byte("boom")}, 0, false)
	require.Nil(t, resp)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, 500, httpErr.StatusCode)
	require.Equal(t, []byte("boom"), httpErr.Body)
}

func TestInterpretParseErrorOnMalformedJSON(t *testing.T) {
	t.Parallel()

	_, err := interpret(rawJSON(200, `{not json`), 0, false)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, []byte(`{not json`), parseErr.Raw)
}

func TestInterpretBinaryIgnoresParseFailure(t *testing.T) {
	t.Parallel()

	resp, err := interpret(rawJSON(200, `{not json`), 0, true)
	require.NoError(t, err)
	require.Nil(t, resp.Body)
	require.Equal(t, []byte(`{not json`), resp.RawBody)
}

func TestInterpretBinaryNeverAttachesParsedBody(t *testing.T) {
	t.Parallel()

	resp, err := interpret(rawJSON(200, `{"a":1}`), 0, true)
	require.NoError(t, err)
	require.Nil(t, resp.Body)
}

func TestInterpretNonJSONContentTypeLeavesBodyUnparsed(t *testing.T) {
	t.Parallel()

	raw := &endpoint.Response{
		StatusCode: 200,
		Header:     http.Header{"Content-Type": {"text/plain"}},
		Body:       []byte("hello"),
	}
	resp, err := interpret(raw, 0, false)
	require.NoError(t, err)
	require.Nil(t, resp.Body)
	require.Equal(t, []byte("hello"), resp.RawBody)
}

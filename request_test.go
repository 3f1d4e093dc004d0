package arango

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComposeBodyContentTypeSelection(t *testing.T) {
	t.Parallel()

	t.Run("nil body", func(t *testing.T) {
		t.Parallel()
		ct, body, err := composeBody(nil, false)
		require.NoError(t, err)
		require.Empty(t, ct)
		require.Nil(t, body)
	})

	t.Run("byte slice defaults to text/plain", func(t *testing.T) {
		t.Parallel()
		ct, body, err := composeBody([]byte("raw"), false)
		require.NoError(t, err)
		require.Equal(t, "text/plain", ct)
		require.Equal(t, []byte("raw"), body)
	})

	t.Run("byte slice with isBinary uses octet-stream", func(t *testing.T) {
		t.Parallel()
		ct, body, err := composeBody([]byte{0xff, 0x00}, true)
		require.NoError(t, err)
		require.Equal(t, "application/octet-stream", ct)
		require.Equal(t, []byte{0xff, 0x00}, body)
	})

	t.Run("struct body is JSON-marshaled regardless of isBinary", func(t *testing.T) {
		t.Parallel()
		ct, body, err := composeBody(map[string]int{"n": 1}, true)
		require.NoError(t, err)
		require.Equal(t, "application/json", ct)
		require.JSONEq(t, `{"n":1}`, string(body))
	})
}

// TestIsBinaryAndExpectBinaryAreIndependent demonstrates the two flags
// select independent concerns: a caller can send an octet-stream body
// while still asking for a parsed JSON response, or send text/JSON while
// asking the Response Interpreter to skip parsing.
func TestIsBinaryAndExpectBinaryAreIndependent(t *testing.T) {
	t.Parallel()

	desc := RequestDescriptor{
		Method:       "POST",
		Body:         []byte{0x01, 0x02},
		IsBinary:     true,
		ExpectBinary: false,
	}
	contentType, body, err := composeBody(desc.Body, desc.IsBinary)
	require.NoError(t, err)
	require.Equal(t, "application/octet-stream", contentType)
	require.Equal(t, []byte{0x01, 0x02}, body)
	require.False(t, desc.ExpectBinary)

	desc2 := RequestDescriptor{
		Method:       "POST",
		Body:         []byte("plain text"),
		IsBinary:     false,
		ExpectBinary: true,
	}
	contentType2, body2, err := composeBody(desc2.Body, desc2.IsBinary)
	require.NoError(t, err)
	require.Equal(t, "text/plain", contentType2)
	require.Equal(t, []byte("plain text"), body2)
	require.True(t, desc2.ExpectBinary)
}

func TestComposeQueryVariants(t *testing.T) {
	t.Parallel()

	require.Empty(t, composeQuery(nil))
	require.Equal(t, "a=1&b=2", composeQuery(RawQuery("a=1&b=2")))

	encoded := composeQuery(QueryParams{
		"keep":    "value",
		"empty":   "",
		"dropped": nil,
		"number":  3,
	})
	require.Contains(t, encoded, "keep=value")
	require.Contains(t, encoded, "empty=")
	require.Contains(t, encoded, "number=3")
	require.NotContains(t, encoded, "dropped")
}

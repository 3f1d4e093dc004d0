package route

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollection(t *testing.T) {
	t.Parallel()

	desc := Collection("users")
	require.Equal(t, http.MethodGet, desc.Method)
	require.Equal(t, "/_api/collection/users", desc.Path)
}

func TestCreateCollection(t *testing.T) {
	t.Parallel()

	desc := CreateCollection("users")
	require.Equal(t, http.MethodPost, desc.Method)
	require.Equal(t, "/_api/collection", desc.Path)
	require.Equal(t, map[string]any{"name": "users"}, desc.Body)
}

func TestDocument(t *testing.T) {
	t.Parallel()

	desc := Document("users", "123")
	require.Equal(t, http.MethodGet, desc.Method)
	require.Equal(t, "/_api/document/users/123", desc.Path)
}

func TestCursor(t *testing.T) {
	t.Parallel()

	desc := Cursor("FOR u IN users RETURN u", map[string]any{"limit": 10})
	require.Equal(t, http.MethodPost, desc.Method)
	require.Equal(t, "/_api/cursor", desc.Path)
	require.Equal(t, "FOR u IN users RETURN u", desc.Body.(map[string]any)["query"])
}

func TestCursorNextPinsToOriginatingHost(t *testing.T) {
	t.Parallel()

	desc := CursorNext("123456", 2)
	require.Equal(t, http.MethodPut, desc.Method)
	require.Equal(t, "/_api/cursor/123456", desc.Path)
	require.NotNil(t, desc.Host)
	require.Equal(t, 2, *desc.Host)
}

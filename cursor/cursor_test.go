package cursor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mysticaltech/arangojs"
)

func TestOpenAndNextStayPinnedToOriginatingHost(t *testing.T) {
	t.Parallel()

	opener := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		if r.Method == http.MethodPut {
			// Continuation batch: the last one.
			_, _ = w.Write([]byte(`{"id":"987","hasMore":false}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"987","hasMore":true}`))
	}))
	t.Cleanup(opener.Close)

	var followerHit bool
	follower := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		followerHit = true
		w.Header().Set("content-type", "application/json")
		_, _ = w.Write([]byte(`{"id":"987","hasMore":false}`))
	}))
	t.Cleanup(follower.Close)

	conn, err := arango.NewConnection(arango.WithURLs(opener.URL, follower.URL))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, conn.Close()) })

	c, err := Open(context.Background(), conn, "FOR d IN docs RETURN d", nil)
	require.NoError(t, err)
	require.Equal(t, "987", c.ID)
	require.Equal(t, 0, c.HostIndex)
	require.True(t, c.HasMore)

	_, err = c.Next(context.Background())
	require.NoError(t, err)
	require.False(t, c.HasMore)
	require.False(t, followerHit, "Next must stay pinned to the opening host, not the second configured host")
}

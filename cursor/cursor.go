// Package cursor models an AQL query cursor's continuation affinity: a
// cursor lives on whichever coordinator opened it, so every follow-up
// request must pin to that same host. This exercises the dispatcher's
// hostPin field along a path distinct from leader-redirect retries.
package cursor

import (
	"context"
	"fmt"

	"github.com/mysticaltech/arangojs"
	"github.com/mysticaltech/arangojs/route"
)

// Cursor tracks a single open query cursor and the coordinator it lives
// on.
type Cursor struct {
	ID        string
	HostIndex int
	HasMore   bool
	conn      *arango.Dispatcher
}

// Open issues the cursor-opening request and captures both the cursor id
// and the host it was opened on (Response.HostIndex, attached by the
// dispatcher per §4.4 "attach H to the response as its origin host id").
func Open(ctx context.Context, conn *arango.Dispatcher, query string, bindVars map[string]any) (*Cursor, error) {
	resp, err := conn.Request(ctx, route.Cursor(query, bindVars), nil)
	if err != nil {
		return nil, err
	}
	return fromResponse(conn, resp)
}

// Next advances the cursor, pinned to the coordinator that opened it.
func (c *Cursor) Next(ctx context.Context) (*arango.Response, error) {
	resp, err := c.conn.Request(ctx, route.CursorNext(c.ID, c.HostIndex), nil)
	if err != nil {
		return nil, err
	}
	refreshed, err := fromResponse(c.conn, resp)
	if err != nil {
		return nil, err
	}
	c.HasMore = refreshed.HasMore
	return resp, nil
}

func fromResponse(conn *arango.Dispatcher, resp *arango.Response) (*Cursor, error) {
	obj, ok := resp.Body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("cursor: unexpected response body shape")
	}
	id, _ := obj["id"].(string)
	hasMore, _ := obj["hasMore"].(bool)
	return &Cursor{ID: id, HostIndex: resp.HostIndex, HasMore: hasMore, conn: conn}, nil
}

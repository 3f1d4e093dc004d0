// Package arango is a connection pool and request dispatcher for a
// distributed multi-model database's HTTP/JSON API. It fronts a set of
// coordinator endpoints and turns the database's REST surface into
// reliable, load-balanced, failover-aware request execution.
//
// Use NewConnection to build a Dispatcher:
//
//	conn, err := arango.NewConnection(
//	    arango.WithURLs("http://coordinator-1:8529", "http://coordinator-2:8529"),
//	    arango.WithLoadBalancingStrategy(arango.RoundRobin),
//	)
//
// The returned Dispatcher load-balances requests across the configured
// coordinators, transparently retries connection-refused failures
// against another host, and follows the server's leader-redirect
// responses. Use Request to send a request:
//
//	resp, err := conn.Request(ctx, arango.RequestDescriptor{
//	    Method: http.MethodGet,
//	    Path:   "/_api/version",
//	}, nil)
//
// # Load balancing and affinity
//
// Three load-balancing strategies are supported: None (a fixed primary
// host that only moves on failover or leader redirect), RoundRobin (every unpinned request
// advances to the next host), and OneRandom (like None, but the initial
// host is chosen at random). Independent of the selected strategy, a
// request may set AllowDirtyRead to route via a separate round-robin
// cursor suitable for reads that may observe stale data from a follower,
// or set Host to pin to a specific, already-known coordinator — used
// internally for leader-redirect retries and exposed for cursor
// continuation use cases.
//
// # Errors
//
// Request distinguishes four error kinds: *TransportError (a socket-level
// failure that exhausted its retries), *ArangoError (the server's
// structured JSON error envelope), *HTTPError (a non-2xx/3xx response
// without a structured envelope), and *ParseError (a JSON content-type
// response that failed to decode).
//
// # Facades
//
// This package implements only the pool and dispatcher; the route and
// auth packages provide a small, representative set of mechanical
// request-descriptor and header builders on top of it.
package arango

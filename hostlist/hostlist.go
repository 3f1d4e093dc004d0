// Package hostlist holds the ordered, deduplicated set of coordinator
// endpoints the dispatcher load-balances across. Indices are stable for
// the life of the list: entries are only ever appended, never reordered
// or removed.
package hostlist

import (
	"errors"

	"github.com/mysticaltech/arangojs/endpoint"
	"github.com/mysticaltech/arangojs/internal/urlutil"
)

// List is the host list. The zero value is an empty, usable list. Not
// safe for concurrent use; callers (the dispatcher) are expected to
// guard it with their own lock, matching §5's "owned by the Dispatcher"
// rule.
type List struct {
	byURL   map[string]int
	entries []*Entry
	opts    endpoint.Options
}

// Entry is one coordinator endpoint and its transport.
type Entry struct {
	URL       string
	Transport *endpoint.Transport
}

// New creates an empty host list. opts configures every Transport created
// for endpoints added to this list.
func New(opts endpoint.Options) *List {
	return &List{byURL: map[string]int{}, opts: opts}
}

// Add normalizes and deduplicates each of urls, appending a new Entry (and
// Transport) for any not already present. It returns, in input order, the
// index of each URL — newly assigned or pre-existing — which the
// dispatcher uses to resolve leader-redirect targets to a stable index.
func (l *List) Add(urls ...string) ([]int, error) {
	if l.byURL == nil {
		l.byURL = map[string]int{}
	}
	indices := make([]int, len(urls))
	for i, raw := range urls {
		normalized, err := urlutil.Normalize(raw)
		if err != nil {
			return nil, err
		}
		key := dedupKey(normalized)
		if idx, ok := l.byURL[key]; ok {
			indices[i] = idx
			continue
		}
		idx := len(l.entries)
		l.entries = append(l.entries, &Entry{
			URL:       normalized.URL,
			Transport: endpoint.New(normalized, l.opts),
		})
		l.byURL[key] = idx
		indices[i] = idx
	}
	return indices, nil
}

// dedupKey is the insertion-uniqueness key for a normalized endpoint.
// Normalized.URL alone collapses every unix-socket endpoint to the same
// placeholder host ("http://unix"), so two distinct sockets must be
// distinguished by UnixSocketPath as well.
func dedupKey(normalized urlutil.Normalized) string {
	return normalized.URL + "\x00" + normalized.UnixSocketPath
}

// Len returns the number of endpoints currently in the list.
func (l *List) Len() int {
	return len(l.entries)
}

// Get returns the entry at index i. It panics if i is out of range, the
// same as a slice index would, since the dispatcher never holds an index
// past the point at which it was valid (indices are never invalidated).
func (l *List) Get(i int) *Entry {
	return l.entries[i]
}

// Close releases every endpoint transport's idle connections. Errors from
// individual transports are collected and joined; Close still attempts
// every entry even if an earlier one fails.
func (l *List) Close() error {
	var errs []error
	for _, e := range l.entries {
		if err := e.Transport.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

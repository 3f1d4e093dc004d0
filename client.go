package arango

// NewConnection builds a Dispatcher configured with the given options.
// Without any options it load-balances (policy None) across a single
// coordinator at http://localhost:8529.
func NewConnection(options ...Option) (*Dispatcher, error) {
	var cfg config
	for _, opt := range options {
		opt.apply(&cfg)
	}
	cfg.applyDefaults()
	return newDispatcher(&cfg)
}

// SetHeader updates the connection's default header overlay. A nil value
// clears a previously set header.
func (d *Dispatcher) SetHeader(name string, value *string) {
	d.setHeader(name, value)
}

// SetTransactionID attaches id to every subsequent outgoing request via
// the x-arango-trx-id header, until cleared.
func (d *Dispatcher) SetTransactionID(id string) {
	d.setTransactionID(id)
}

// ClearTransactionID stops attaching a transaction id to outgoing
// requests.
func (d *Dispatcher) ClearTransactionID() {
	d.clearTransactionID()
}

// Close releases every endpoint transport's sockets. In-flight
// completions are still delivered; no new transport work is initiated
// and any still-queued tasks are failed with ErrClosed. Close is
// idempotent and safe to call more than once.
func (d *Dispatcher) Close() error {
	return d.close()
}

package breaker

// Guard is the manual, context-manager-style adoption ported from the
// source's __enter__/__exit__: Enter checks Allow (returning
// *taxerr.CircuitOpenError if rejected), and the caller must call Exit
// with the outcome of the guarded operation.
type Guard struct {
	b *Breaker
}

// Enter opens a guarded section. Callers must follow a nil return with
// exactly one Exit call.
func (b *Breaker) Enter() (*Guard, error) {
	if err := b.Allow(); err != nil {
		return nil, err
	}
	return &Guard{b: b}, nil
}

// Exit records the outcome of the guarded operation: nil means success,
// non-nil means failure.
func (g *Guard) Exit(err error) {
	if err == nil {
		g.b.RecordSuccess()
		return
	}
	g.b.RecordFailure(err)
}

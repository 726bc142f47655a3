package catalog

import (
	"context"
	"sync"
)

// Latest tracks one in-flight call per key. Beginning a new call under a key
// cancels the call it supersedes, so late results from the old call never
// reach the caller.
type Latest struct {
	mu      sync.Mutex
	seq     uint64
	pending map[string]inflight
}

type inflight struct {
	seq    uint64
	cancel context.CancelFunc
}

// NewLatest creates an empty tracker
func NewLatest() *Latest {
	return &Latest{pending: make(map[string]inflight)}
}

// Begin derives a context for a new call under key and cancels the previous
// one. The returned done func releases the context and must be called when
// the call finishes.
func (l *Latest) Begin(parent context.Context, key string) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	l.mu.Lock()
	if prev, ok := l.pending[key]; ok {
		prev.cancel()
	}
	l.seq++
	seq := l.seq
	l.pending[key] = inflight{seq: seq, cancel: cancel}
	l.mu.Unlock()

	done := func() {
		cancel()
		l.mu.Lock()
		if cur, ok := l.pending[key]; ok && cur.seq == seq {
			delete(l.pending, key)
		}
		l.mu.Unlock()
	}
	return ctx, done
}

// CancelAll cancels every in-flight call
func (l *Latest) CancelAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, f := range l.pending {
		f.cancel()
		delete(l.pending, key)
	}
}

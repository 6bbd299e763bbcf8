package checkout

import (
	"sync"
	"time"

	"github.com/you-humble/course-storefront/internal/session"
)

// Registry keeps one flow per session and course in memory. Flows untouched
// for longer than ttl are dropped the next time the registry is written to,
// except those holding a receipt the backend has not acknowledged yet.
type Registry struct {
	mu    sync.Mutex
	flows map[string]*Flow
	ttl   time.Duration
	now   func() time.Time
	build func(sess session.Session) *Flow
}

func NewRegistry(ttl time.Duration, build func(sess session.Session) *Flow) *Registry {
	return &Registry{
		flows: make(map[string]*Flow),
		ttl:   ttl,
		now:   time.Now,
		build: build,
	}
}

// Open returns the flow for the course, creating it when there is none.
// Anonymous sessions get a throwaway flow that is never stored.
func (r *Registry) Open(sess session.Session, courseID string) *Flow {
	if !sess.Authorized() {
		return r.build(sess)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweepLocked()

	key := flowKey(sess, courseID)
	if f, ok := r.flows[key]; ok {
		return f
	}

	f := r.build(sess)
	r.flows[key] = f
	return f
}

func (r *Registry) Get(sess session.Session, courseID string) (*Flow, bool) {
	if !sess.Authorized() {
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.flows[flowKey(sess, courseID)]
	return f, ok
}

// Forget removes the flow once it has been abandoned.
func (r *Registry) Forget(sess session.Session, courseID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.flows, flowKey(sess, courseID))
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.flows)
}

func (r *Registry) sweepLocked() {
	if r.ttl <= 0 {
		return
	}
	cutoff := r.now().Add(-r.ttl)
	for key, f := range r.flows {
		if !f.lastTouched().Before(cutoff) {
			continue
		}
		snap := f.Snapshot()
		if snap.Loading || (snap.ReceiptID != "" && snap.State != StateSucceeded) {
			continue
		}
		delete(r.flows, key)
	}
}

func flowKey(sess session.Session, courseID string) string {
	return sess.Key() + "/" + courseID
}

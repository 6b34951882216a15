package trustview

import "sync"

// ResultSlot holds the latest published SellerTrustView. Each fetch takes a
// sequence number with Begin before firing its request and publishes with
// that number; a slow response from an older fetch can never replace the
// result of a newer one.
type ResultSlot struct {
	mu        sync.Mutex
	nextSeq   uint64
	published uint64
	view      *SellerTrustView
}

// Begin reserves a sequence number for a fetch that is about to start.
func (s *ResultSlot) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	return s.nextSeq
}

// Publish stores the view if seq is newer than the last published fetch.
// It reports whether the view was accepted.
func (s *ResultSlot) Publish(seq uint64, v *SellerTrustView) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.published {
		return false
	}
	s.published = seq
	s.view = v
	return true
}

// Current returns the latest accepted view, or nil if nothing has been
// published yet.
func (s *ResultSlot) Current() *SellerTrustView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

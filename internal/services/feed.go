package services

import (
	"sync"

	"unimart/internal/domain"
)

// ListingFeed delivers live updates of a seller's posted items. Every
// committed write broadcasts the seller's full subtree; subscribers must
// replace local state with each snapshot rather than merge deltas, so
// delivery order relative to in-flight writes cannot corrupt their view.
type ListingFeed struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]chan []domain.Listing
}

func NewListingFeed() *ListingFeed {
	return &ListingFeed{subs: make(map[string]map[int]chan []domain.Listing)}
}

// Subscribe registers for a seller's snapshots. The returned cancel func
// must be called when the consumer navigates away.
func (f *ListingFeed) Subscribe(sellerID string) (<-chan []domain.Listing, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.next
	f.next++
	ch := make(chan []domain.Listing, 1)
	if f.subs[sellerID] == nil {
		f.subs[sellerID] = make(map[int]chan []domain.Listing)
	}
	f.subs[sellerID][id] = ch

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if m := f.subs[sellerID]; m != nil {
			if c, ok := m[id]; ok {
				delete(m, id)
				close(c)
			}
			if len(m) == 0 {
				delete(f.subs, sellerID)
			}
		}
	}
	return ch, cancel
}

// Broadcast fans a snapshot out to the seller's subscribers. A slow
// subscriber keeps only the latest snapshot; intermediate ones are
// dropped, which is safe because snapshots are full replacements.
func (f *ListingFeed) Broadcast(sellerID string, snapshot []domain.Listing) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs[sellerID] {
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}

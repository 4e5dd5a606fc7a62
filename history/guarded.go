package history

import (
	"context"
	"fmt"

	"topicbot/types"
)

// Guarded pairs a Store with a Locker so a snapshot read and the following
// append-write happen under one lock
type Guarded struct {
	store  Store
	locker Locker
}

// NewGuarded creates a guarded store. A nil locker means an in-process lock.
func NewGuarded(store Store, locker Locker) *Guarded {
	if locker == nil {
		locker = NewLocalLocker()
	}
	return &Guarded{store: store, locker: locker}
}

// Store returns the underlying store
func (g *Guarded) Store() Store { return g.store }

// Update loads a snapshot, passes it to fn and saves the snapshot with the
// records fn returns appended.
//
// fn always runs so a selection can still be made when persistence is broken:
//   - lock not acquired: fn sees a read-only snapshot and nothing is saved
//   - load failed: fn sees an empty snapshot and nothing is saved, so the
//     stored log is never overwritten by a partial one
//
// The returned error reports any of these persistence problems.
func (g *Guarded) Update(ctx context.Context, fn func(snapshot []types.HistoryRecord) []types.HistoryRecord) error {
	unlock, lockErr := g.locker.Lock(ctx)
	if lockErr == nil {
		defer unlock()
	}

	snapshot, loadErr := g.store.Load(ctx)
	if loadErr != nil {
		snapshot = []types.HistoryRecord{}
	}

	added := fn(snapshot)

	switch {
	case lockErr != nil:
		return fmt.Errorf("history not saved: %w", lockErr)
	case loadErr != nil:
		return fmt.Errorf("history not saved: %w", loadErr)
	case len(added) == 0:
		return nil
	}

	records := make([]types.HistoryRecord, 0, len(snapshot)+len(added))
	records = append(records, snapshot...)
	records = append(records, added...)
	if err := g.store.Save(ctx, records); err != nil {
		return fmt.Errorf("history not saved: %w", err)
	}
	return nil
}

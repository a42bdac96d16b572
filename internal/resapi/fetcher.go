package resapi

import (
	"context"
	"errors"
	"sync/atomic"

	"vanrent/internal/model"
)

// ErrStaleLookup marks a lookup whose result arrived after a newer query
// for the same fetcher was already issued. Stale results must be discarded,
// never merged into the current slot list.
var ErrStaleLookup = errors.New("reservation lookup superseded by a newer query")

// Lookup fetches reserved ranges for one office, date and side.
type Lookup interface {
	ReservedSlots(ctx context.Context, officeID, date string, role model.Role) ([]model.ReservedSlot, error)
}

// Fetcher decorates a Lookup for one consumer (one booking form, one admin
// view) with a latest-request-wins rule: each lookup supersedes all earlier
// in-flight ones, and a superseded result is reported as stale instead of
// being returned. There is no true abort; superseded requests simply have
// their results ignored.
type Fetcher struct {
	lookup Lookup
	seq    atomic.Uint64

	// onStale is called for every discarded response, nil to disable.
	onStale func()
}

// NewFetcher wraps a lookup with the stale-response guard.
func NewFetcher(lookup Lookup, onStale func()) *Fetcher {
	return &Fetcher{lookup: lookup, onStale: onStale}
}

var _ Lookup = (*Fetcher)(nil)

// ReservedSlots performs a lookup. It returns ErrStaleLookup when a newer
// lookup was started on this fetcher while this one was in flight. Fetcher
// itself satisfies Lookup, so it can wrap any other implementation.
func (f *Fetcher) ReservedSlots(ctx context.Context, officeID, date string, role model.Role) ([]model.ReservedSlot, error) {
	seq := f.seq.Add(1)

	slots, err := f.lookup.ReservedSlots(ctx, officeID, date, role)
	if f.seq.Load() != seq {
		if f.onStale != nil {
			f.onStale()
		}
		return nil, ErrStaleLookup
	}
	if err != nil {
		return nil, err
	}
	return slots, nil
}

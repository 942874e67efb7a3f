// Package status derives a listing's effective visibility from its stored
// status plus an optional pause window, and applies the host-invoked
// transitions. Stored status only ever holds "listed" or "unlisted";
// "paused" exists purely as a derived display state.
package status

import (
	"context"
	"errors"
	"time"

	"venuproj/models"
)

type State string

const (
	Listed   State = "listed"
	Unlisted State = "unlisted"
	Paused   State = "paused"
)

var (
	ErrNotFound     = errors.New("listing not found")
	ErrInvalidRange = errors.New("pause end date must not precede start date")
	ErrRangeInPast  = errors.New("pause end date must not be in the past")
)

// Store is the persistence surface the machine needs: a host's whole
// collection, read and replaced as a unit.
type Store interface {
	Load(ctx context.Context, hostID string) []models.Listing
	SaveAll(ctx context.Context, hostID string, listings []models.Listing) error
}

type Machine struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Machine {
	return &Machine{store: store, now: time.Now}
}

// NewAt pins the machine's clock. Tests use it; production uses New.
func NewAt(store Store, now func() time.Time) *Machine {
	return &Machine{store: store, now: now}
}

// Day maps a time to its calendar day as a UTC midnight. Comparisons
// must be by calendar day only; truncating in each value's own zone
// would land midnights at different instants when stored dates (UTC)
// meet a server clock in another zone.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Derive returns the effective state for today and whether the stored
// record has gone stale and must be rewritten as listed.
//
// A scheduled pause that has not started yet (today < unlist_from) shows
// as Listed while storage keeps "unlisted". Storage is deliberately not
// corrected in that branch; see the note on Resolve.
func Derive(l models.Listing, today time.Time) (State, bool) {
	if l.Status == models.StatusListed {
		return Listed, false
	}

	if l.UnlistFrom != nil && l.UnlistUntil != nil {
		d := Day(today)
		from := Day(*l.UnlistFrom)
		until := Day(*l.UnlistUntil)

		switch {
		case d.After(until):
			// Pause window is over; stored state is stale.
			return Listed, true
		case !d.Before(from):
			return Paused, false
		default:
			return Listed, false
		}
	}

	// Indefinite unlist ("unlist for now").
	return Unlisted, false
}

// AnyStale reports whether any listing's pause window has expired, so
// the stored collection needs the auto-relist rewrite.
func AnyStale(listings []models.Listing, today time.Time) bool {
	for _, l := range listings {
		if _, needsRelist := Derive(l, today); needsRelist {
			return true
		}
	}
	return false
}

// Resolve loads the host's collection, stamps every listing with its
// effective status, and persists auto-relists in one rewrite when any
// pause window has expired.
//
// Upcoming pause windows are NOT eagerly corrected: a listing shown as
// Listed before its window starts still stores "unlisted". The original
// product behaves this way and callers depend on the window surviving
// until it begins.
func (m *Machine) Resolve(ctx context.Context, hostID string) ([]models.Listing, error) {
	listings := m.store.Load(ctx, hostID)
	today := m.now()

	stale := false
	for i := range listings {
		state, needsRelist := Derive(listings[i], today)
		if needsRelist {
			listings[i].Status = models.StatusListed
			listings[i].UnlistFrom = nil
			listings[i].UnlistUntil = nil
			listings[i].UpdatedAt = today
			stale = true
		}
		listings[i].EffectiveStatus = string(state)
	}

	if stale {
		if err := m.store.SaveAll(ctx, hostID, listings); err != nil {
			return nil, err
		}
	}
	return listings, nil
}

// Relist makes the listing visible again and clears any pause window.
// Always permitted.
func (m *Machine) Relist(ctx context.Context, hostID, listingID string) error {
	return m.update(ctx, hostID, listingID, func(l *models.Listing) error {
		l.Status = models.StatusListed
		l.UnlistFrom = nil
		l.UnlistUntil = nil
		return nil
	})
}

// UnlistNow hides the listing indefinitely.
func (m *Machine) UnlistNow(ctx context.Context, hostID, listingID string) error {
	return m.update(ctx, hostID, listingID, func(l *models.Listing) error {
		l.Status = models.StatusUnlisted
		l.UnlistFrom = nil
		l.UnlistUntil = nil
		return nil
	})
}

// PauseForDateRange hides the listing for [from, until]. The end date must
// not precede the start date and must not already be in the past.
func (m *Machine) PauseForDateRange(ctx context.Context, hostID, listingID string, from, until time.Time) error {
	f, u := Day(from), Day(until)
	if u.Before(f) {
		return ErrInvalidRange
	}
	if u.Before(Day(m.now())) {
		return ErrRangeInPast
	}

	return m.update(ctx, hostID, listingID, func(l *models.Listing) error {
		l.Status = models.StatusUnlisted
		l.UnlistFrom = &f
		l.UnlistUntil = &u
		return nil
	})
}

// Remove deletes the listing from the host's collection entirely.
// Irreversible; no tombstone is kept.
func (m *Machine) Remove(ctx context.Context, hostID, listingID string) error {
	listings := m.store.Load(ctx, hostID)

	kept := make([]models.Listing, 0, len(listings))
	found := false
	for _, l := range listings {
		if l.ListingID == listingID {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return ErrNotFound
	}

	return m.store.SaveAll(ctx, hostID, kept)
}

// update applies fn to one listing and rewrites the whole collection.
func (m *Machine) update(ctx context.Context, hostID, listingID string, fn func(*models.Listing) error) error {
	listings := m.store.Load(ctx, hostID)

	for i := range listings {
		if listings[i].ListingID != listingID {
			continue
		}
		if err := fn(&listings[i]); err != nil {
			return err
		}
		listings[i].UpdatedAt = m.now()
		return m.store.SaveAll(ctx, hostID, listings)
	}
	return ErrNotFound
}

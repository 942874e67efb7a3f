package status

import (
	"context"
	"testing"
	"time"

	"venuproj/models"
)

type fakeStore struct {
	listings map[string][]models.Listing
	saves    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{listings: make(map[string][]models.Listing)}
}

func (f *fakeStore) Load(_ context.Context, hostID string) []models.Listing {
	out := make([]models.Listing, len(f.listings[hostID]))
	copy(out, f.listings[hostID])
	return out
}

func (f *fakeStore) SaveAll(_ context.Context, hostID string, listings []models.Listing) error {
	f.listings[hostID] = listings
	f.saves++
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name       string
		listing    models.Listing
		today      time.Time
		wantState  State
		wantRelist bool
	}{
		{
			name: "listed ignores date fields",
			listing: models.Listing{
				Status:      models.StatusListed,
				UnlistFrom:  datePtr(2025, 1, 10),
				UnlistUntil: datePtr(2025, 1, 20),
			},
			today:     date(2025, 1, 15),
			wantState: Listed,
		},
		{
			name: "window expired triggers relist",
			listing: models.Listing{
				Status:      models.StatusUnlisted,
				UnlistFrom:  datePtr(2025, 1, 10),
				UnlistUntil: datePtr(2025, 1, 20),
			},
			today:      date(2025, 1, 21),
			wantState:  Listed,
			wantRelist: true,
		},
		{
			name: "inside window is paused",
			listing: models.Listing{
				Status:      models.StatusUnlisted,
				UnlistFrom:  datePtr(2025, 1, 10),
				UnlistUntil: datePtr(2025, 1, 20),
			},
			today:     date(2025, 1, 15),
			wantState: Paused,
		},
		{
			name: "window boundaries are inclusive",
			listing: models.Listing{
				Status:      models.StatusUnlisted,
				UnlistFrom:  datePtr(2025, 1, 10),
				UnlistUntil: datePtr(2025, 1, 20),
			},
			today:     date(2025, 1, 20),
			wantState: Paused,
		},
		{
			name: "before window shows listed without rewrite",
			listing: models.Listing{
				Status:      models.StatusUnlisted,
				UnlistFrom:  datePtr(2025, 1, 10),
				UnlistUntil: datePtr(2025, 1, 20),
			},
			today:      date(2025, 1, 5),
			wantState:  Listed,
			wantRelist: false,
		},
		{
			name:      "unlisted without dates is indefinite",
			listing:   models.Listing{Status: models.StatusUnlisted},
			today:     date(2025, 1, 15),
			wantState: Unlisted,
		},
		{
			name: "unlisted with only one date is indefinite",
			listing: models.Listing{
				Status:     models.StatusUnlisted,
				UnlistFrom: datePtr(2025, 1, 10),
			},
			today:     date(2025, 1, 15),
			wantState: Unlisted,
		},
		{
			name: "western server clock on inclusive end day",
			listing: models.Listing{
				Status:      models.StatusUnlisted,
				UnlistFrom:  datePtr(2025, 1, 10),
				UnlistUntil: datePtr(2025, 1, 20),
			},
			today:     time.Date(2025, 1, 20, 9, 0, 0, 0, time.FixedZone("UTC-5", -5*3600)),
			wantState: Paused,
		},
		{
			name: "eastern server clock just past the window",
			listing: models.Listing{
				Status:      models.StatusUnlisted,
				UnlistFrom:  datePtr(2025, 1, 10),
				UnlistUntil: datePtr(2025, 1, 20),
			},
			today:      time.Date(2025, 1, 21, 0, 30, 0, 0, time.FixedZone("UTC+9", 9*3600)),
			wantState:  Listed,
			wantRelist: true,
		},
		{
			name: "time of day is ignored",
			listing: models.Listing{
				Status:      models.StatusUnlisted,
				UnlistFrom:  datePtr(2025, 1, 10),
				UnlistUntil: datePtr(2025, 1, 20),
			},
			today:     time.Date(2025, 1, 20, 23, 59, 0, 0, time.UTC),
			wantState: Paused,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, relist := Derive(tt.listing, tt.today)
			if state != tt.wantState {
				t.Errorf("Derive() state = %q, want %q", state, tt.wantState)
			}
			if relist != tt.wantRelist {
				t.Errorf("Derive() relist = %v, want %v", relist, tt.wantRelist)
			}
		})
	}
}

func TestResolveAutoRelistPersists(t *testing.T) {
	fs := newFakeStore()
	fs.listings["host1"] = []models.Listing{{
		ListingID:   "l1",
		Status:      models.StatusUnlisted,
		UnlistFrom:  datePtr(2025, 1, 10),
		UnlistUntil: datePtr(2025, 1, 20),
	}}

	m := NewAt(fs, fixedNow(date(2025, 1, 21)))
	got, err := m.Resolve(context.Background(), "host1")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got[0].EffectiveStatus != string(Listed) {
		t.Errorf("effective status = %q, want %q", got[0].EffectiveStatus, Listed)
	}
	if fs.saves != 1 {
		t.Fatalf("saves = %d, want 1", fs.saves)
	}
	stored := fs.listings["host1"][0]
	if stored.Status != models.StatusListed {
		t.Errorf("stored status = %q, want %q", stored.Status, models.StatusListed)
	}
	if stored.UnlistFrom != nil || stored.UnlistUntil != nil {
		t.Error("pause window should be cleared after auto-relist")
	}
}

// A server clock west of UTC is still on the stored (UTC) end day of the
// window; the listing must stay paused with no early auto-relist write.
func TestResolveZonedClockEndDay(t *testing.T) {
	fs := newFakeStore()
	fs.listings["host1"] = []models.Listing{{
		ListingID:   "l1",
		Status:      models.StatusUnlisted,
		UnlistFrom:  datePtr(2025, 1, 10),
		UnlistUntil: datePtr(2025, 1, 20),
	}}

	now := time.Date(2025, 1, 20, 9, 0, 0, 0, time.FixedZone("UTC-5", -5*3600))
	m := NewAt(fs, fixedNow(now))
	got, err := m.Resolve(context.Background(), "host1")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got[0].EffectiveStatus != string(Paused) {
		t.Errorf("effective status = %q, want %q", got[0].EffectiveStatus, Paused)
	}
	if fs.saves != 0 {
		t.Errorf("saves = %d, want 0 (window has not expired)", fs.saves)
	}
}

func TestAnyStale(t *testing.T) {
	window := []models.Listing{{
		Status:      models.StatusUnlisted,
		UnlistFrom:  datePtr(2025, 1, 10),
		UnlistUntil: datePtr(2025, 1, 20),
	}}

	if AnyStale(window, date(2025, 1, 15)) {
		t.Error("AnyStale = true inside the window, want false")
	}
	if !AnyStale(window, date(2025, 1, 21)) {
		t.Error("AnyStale = false past the window, want true")
	}
	if AnyStale([]models.Listing{{Status: models.StatusListed}}, date(2025, 1, 21)) {
		t.Error("AnyStale = true for a listed listing, want false")
	}
}

func TestResolveInsideWindowLeavesStorageAlone(t *testing.T) {
	fs := newFakeStore()
	fs.listings["host1"] = []models.Listing{{
		ListingID:   "l1",
		Status:      models.StatusUnlisted,
		UnlistFrom:  datePtr(2025, 1, 10),
		UnlistUntil: datePtr(2025, 1, 20),
	}}

	m := NewAt(fs, fixedNow(date(2025, 1, 15)))
	got, err := m.Resolve(context.Background(), "host1")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got[0].EffectiveStatus != string(Paused) {
		t.Errorf("effective status = %q, want %q", got[0].EffectiveStatus, Paused)
	}
	if fs.saves != 0 {
		t.Errorf("saves = %d, want 0", fs.saves)
	}
}

// Before the window starts the listing displays as Listed while storage
// still says unlisted. This mirrors the original product; do not "fix" it
// here without a product decision.
func TestResolveBeforeWindowKeepsStoredUnlisted(t *testing.T) {
	fs := newFakeStore()
	fs.listings["host1"] = []models.Listing{{
		ListingID:   "l1",
		Status:      models.StatusUnlisted,
		UnlistFrom:  datePtr(2025, 1, 10),
		UnlistUntil: datePtr(2025, 1, 20),
	}}

	m := NewAt(fs, fixedNow(date(2025, 1, 5)))
	got, err := m.Resolve(context.Background(), "host1")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got[0].EffectiveStatus != string(Listed) {
		t.Errorf("effective status = %q, want %q", got[0].EffectiveStatus, Listed)
	}
	if fs.saves != 0 {
		t.Errorf("saves = %d, want 0", fs.saves)
	}
	if fs.listings["host1"][0].Status != models.StatusUnlisted {
		t.Errorf("stored status = %q, want it to remain %q",
			fs.listings["host1"][0].Status, models.StatusUnlisted)
	}
}

func TestPauseForDateRangeValidation(t *testing.T) {
	now := date(2025, 1, 15)

	tests := []struct {
		name    string
		from    time.Time
		until   time.Time
		wantErr error
	}{
		{"end before start", date(2025, 1, 20), date(2025, 1, 10), ErrInvalidRange},
		{"window entirely in past", date(2025, 1, 1), date(2025, 1, 5), ErrRangeInPast},
		{"valid window", date(2025, 1, 16), date(2025, 1, 20), nil},
		{"single-day window today", now, now, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFakeStore()
			fs.listings["host1"] = []models.Listing{{ListingID: "l1", Status: models.StatusListed}}
			m := NewAt(fs, fixedNow(now))

			err := m.PauseForDateRange(context.Background(), "host1", "l1", tt.from, tt.until)
			if err != tt.wantErr {
				t.Fatalf("PauseForDateRange() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil && fs.saves != 0 {
				t.Errorf("rejected pause must not persist, saves = %d", fs.saves)
			}
			if tt.wantErr == nil {
				stored := fs.listings["host1"][0]
				if stored.Status != models.StatusUnlisted {
					t.Errorf("stored status = %q, want %q", stored.Status, models.StatusUnlisted)
				}
				if stored.UnlistFrom == nil || stored.UnlistUntil == nil {
					t.Error("pause window should be persisted")
				}
			}
		})
	}
}

// A same-day pause must not be rejected as "in the past" just because
// the server clock's zone sits behind UTC.
func TestPauseForDateRangeZonedClock(t *testing.T) {
	fs := newFakeStore()
	fs.listings["host1"] = []models.Listing{{ListingID: "l1", Status: models.StatusListed}}

	now := time.Date(2025, 1, 15, 20, 0, 0, 0, time.FixedZone("UTC-5", -5*3600))
	m := NewAt(fs, fixedNow(now))

	err := m.PauseForDateRange(context.Background(), "host1", "l1",
		date(2025, 1, 15), date(2025, 1, 15))
	if err != nil {
		t.Fatalf("PauseForDateRange() error = %v, want nil", err)
	}
	if fs.saves != 1 {
		t.Errorf("saves = %d, want 1", fs.saves)
	}
}

func TestRelistClearsWindow(t *testing.T) {
	fs := newFakeStore()
	fs.listings["host1"] = []models.Listing{{
		ListingID:   "l1",
		Status:      models.StatusUnlisted,
		UnlistFrom:  datePtr(2025, 1, 10),
		UnlistUntil: datePtr(2025, 1, 20),
	}}

	m := NewAt(fs, fixedNow(date(2025, 1, 15)))
	if err := m.Relist(context.Background(), "host1", "l1"); err != nil {
		t.Fatalf("Relist() error = %v", err)
	}

	stored := fs.listings["host1"][0]
	if stored.Status != models.StatusListed {
		t.Errorf("stored status = %q, want %q", stored.Status, models.StatusListed)
	}
	if stored.UnlistFrom != nil || stored.UnlistUntil != nil {
		t.Error("pause window should be cleared")
	}
}

func TestUnlistNowIsIndefinite(t *testing.T) {
	fs := newFakeStore()
	fs.listings["host1"] = []models.Listing{{ListingID: "l1", Status: models.StatusListed}}

	m := NewAt(fs, fixedNow(date(2025, 1, 15)))
	if err := m.UnlistNow(context.Background(), "host1", "l1"); err != nil {
		t.Fatalf("UnlistNow() error = %v", err)
	}

	stored := fs.listings["host1"][0]
	if stored.Status != models.StatusUnlisted {
		t.Errorf("stored status = %q, want %q", stored.Status, models.StatusUnlisted)
	}
	if stored.UnlistFrom != nil || stored.UnlistUntil != nil {
		t.Error("indefinite unlist must not carry a window")
	}

	state, _ := Derive(stored, date(2026, 6, 1))
	if state != Unlisted {
		t.Errorf("indefinite unlist derived %q at a later date, want %q", state, Unlisted)
	}
}

func TestRemoveListing(t *testing.T) {
	fs := newFakeStore()
	fs.listings["host1"] = []models.Listing{
		{ListingID: "A", Status: models.StatusListed},
		{ListingID: "B", Status: models.StatusListed},
	}

	m := NewAt(fs, fixedNow(date(2025, 1, 15)))
	if err := m.Remove(context.Background(), "host1", "A"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	got := fs.Load(context.Background(), "host1")
	if len(got) != 1 || got[0].ListingID != "B" {
		t.Fatalf("after Remove, collection = %v, want exactly [B]", got)
	}

	if err := m.Remove(context.Background(), "host1", "missing"); err != ErrNotFound {
		t.Errorf("Remove(missing) error = %v, want ErrNotFound", err)
	}
}

func TestTransitionOnMissingListing(t *testing.T) {
	fs := newFakeStore()
	m := NewAt(fs, fixedNow(date(2025, 1, 15)))

	if err := m.Relist(context.Background(), "host1", "nope"); err != ErrNotFound {
		t.Errorf("Relist on empty host error = %v, want ErrNotFound", err)
	}
	if fs.saves != 0 {
		t.Errorf("saves = %d, want 0", fs.saves)
	}
}

// Full lifecycle: publish, schedule a pause, watch it pause and then
// auto-relist once the window passes.
func TestPauseLifecycle(t *testing.T) {
	fs := newFakeStore()
	fs.listings["host1"] = []models.Listing{{ListingID: "l1", Status: models.StatusListed}}

	m := NewAt(fs, fixedNow(date(2025, 1, 5)))
	if err := m.PauseForDateRange(context.Background(), "host1", "l1",
		date(2025, 1, 10), date(2025, 1, 20)); err != nil {
		t.Fatalf("PauseForDateRange() error = %v", err)
	}

	mid := NewAt(fs, fixedNow(date(2025, 1, 15)))
	got, err := mid.Resolve(context.Background(), "host1")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got[0].EffectiveStatus != string(Paused) {
		t.Errorf("mid-window effective status = %q, want %q", got[0].EffectiveStatus, Paused)
	}

	after := NewAt(fs, fixedNow(date(2025, 1, 21)))
	got, err = after.Resolve(context.Background(), "host1")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got[0].EffectiveStatus != string(Listed) {
		t.Errorf("post-window effective status = %q, want %q", got[0].EffectiveStatus, Listed)
	}
	stored := fs.listings["host1"][0]
	if stored.Status != models.StatusListed || stored.UnlistFrom != nil || stored.UnlistUntil != nil {
		t.Errorf("post-window stored record = %+v, want listed with no window", stored)
	}
}

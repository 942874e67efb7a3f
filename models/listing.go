package models

import "time"

// Stored visibility statuses. "paused" is never stored; it is derived at
// read time when an unlisted listing has an active pause window.
const (
	StatusListed   = "listed"
	StatusUnlisted = "unlisted"
)

type Location struct {
	Country string `json:"country" bson:"country"`
	State   string `json:"state" bson:"state"`
	City    string `json:"city" bson:"city"`
	Street  string `json:"street" bson:"street"`
	Unit    string `json:"unit,omitempty" bson:"unit,omitempty"`
	ZipCode string `json:"zipCode,omitempty" bson:"zipCode,omitempty"`
	MapRef  string `json:"map_ref,omitempty" bson:"map_ref,omitempty"`
}

type Pricing struct {
	Rate     int    `json:"rate" bson:"rate"`
	RateType string `json:"rate_type" bson:"rate_type"` // per-head | whole-event
}

type CheckInWindow struct {
	Start    string `json:"start" bson:"start"`
	End      string `json:"end,omitempty" bson:"end,omitempty"`
	Flexible bool   `json:"flexible" bson:"flexible"`
}

type Photo struct {
	PhotoID string `json:"photoid" bson:"photoid"`
	URL     string `json:"url" bson:"url"`
	Thumb   string `json:"thumb,omitempty" bson:"thumb,omitempty"`
	IsMain  bool   `json:"is_main" bson:"is_main"`
}

type Listing struct {
	ListingID     string        `json:"listingid" bson:"listingid"`
	HostID        string        `json:"hostid" bson:"hostid"`
	Name          string        `json:"name" bson:"name"`
	Description   string        `json:"description" bson:"description"`
	PropertyType  string        `json:"property_type" bson:"property_type"`
	Location      Location      `json:"location" bson:"location"`
	Pricing       Pricing       `json:"pricing" bson:"pricing"`
	GuestRange    string        `json:"guest_range" bson:"guest_range"`
	GuestLimit    int           `json:"guest_limit,omitempty" bson:"guest_limit,omitempty"`
	Occasions     []string      `json:"occasions" bson:"occasions"`
	Amenities     []string      `json:"amenities" bson:"amenities"`
	Accessibility []string      `json:"accessibility" bson:"accessibility"`
	CheckIn       CheckInWindow `json:"check_in" bson:"check_in"`
	CheckoutTime  string        `json:"checkout_time" bson:"checkout_time"`
	PetsAllowed   bool          `json:"pets_allowed" bson:"pets_allowed"`
	SmokingOK     bool          `json:"smoking_allowed" bson:"smoking_allowed"`
	HouseRules    string        `json:"house_rules,omitempty" bson:"house_rules,omitempty"`
	Photos        []Photo       `json:"photos" bson:"photos"`

	Status      string     `json:"status" bson:"status"`
	UnlistFrom  *time.Time `json:"unlist_from,omitempty" bson:"unlist_from,omitempty"`
	UnlistUntil *time.Time `json:"unlist_until,omitempty" bson:"unlist_until,omitempty"`

	// EffectiveStatus is computed from Status plus the pause window; it is
	// never written to storage.
	EffectiveStatus string `json:"effective_status,omitempty" bson:"-"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`

	// Field names written by older versions of the editor. Read once at
	// load and folded into the current fields; never written back.
	LegacyOccasions []string `json:"-" bson:"selectedOccasions,omitempty"`
	LegacyAmenities []string `json:"-" bson:"selectedAmenities,omitempty"`
}

// HostListingCollection is the unit of storage: one document per host
// holding every listing the host owns, replaced whole on each write.
type HostListingCollection struct {
	HostID    string    `json:"hostid" bson:"_id"`
	Listings  []Listing `json:"listings" bson:"listings"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// UnlistFeedback records the reasons a host gave when unlisting. Purely
// informational; it never affects listing state.
type UnlistFeedback struct {
	FeedbackID string    `json:"feedbackid" bson:"feedbackid"`
	HostID     string    `json:"hostid" bson:"hostid"`
	ListingID  string    `json:"listingid" bson:"listingid"`
	Reasons    []string  `json:"reasons" bson:"reasons"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

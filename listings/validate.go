package listings

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"venuproj/models"
)

const (
	maxNameLen        = 50
	maxDescriptionLen = 500
)

// validateListing checks the editable fields against the fixed
// vocabularies and length limits. It trims free-text fields in place.
func validateListing(l *models.Listing) error {
	l.Name = strings.TrimSpace(l.Name)
	l.Description = strings.TrimSpace(l.Description)

	if l.Name == "" {
		return fmt.Errorf("property name is required")
	}
	if utf8.RuneCountInString(l.Name) > maxNameLen {
		return fmt.Errorf("property name must be at most %d characters", maxNameLen)
	}
	if l.Description == "" {
		return fmt.Errorf("description is required")
	}
	if utf8.RuneCountInString(l.Description) > maxDescriptionLen {
		return fmt.Errorf("description must be at most %d characters", maxDescriptionLen)
	}

	if !models.ValidPropertyType(l.PropertyType) {
		return fmt.Errorf("unknown property type %q", l.PropertyType)
	}

	if l.Location.Country == "" || l.Location.City == "" || l.Location.Street == "" {
		return fmt.Errorf("location must include country, city, and street address")
	}

	if l.Pricing.Rate <= 0 {
		return fmt.Errorf("rate must be a positive amount")
	}
	if !models.ValidRateType(l.Pricing.RateType) {
		return fmt.Errorf("rate type must be one of %s", strings.Join(models.RateTypes, ", "))
	}

	if !models.ValidGuestRange(l.GuestRange) {
		return fmt.Errorf("guest range must be one of %s", strings.Join(models.GuestRanges, ", "))
	}
	if l.GuestLimit < 0 {
		return fmt.Errorf("guest limit must not be negative")
	}

	for _, o := range l.Occasions {
		if !models.ValidOccasion(o) {
			return fmt.Errorf("unknown occasion %q", o)
		}
	}
	for _, a := range l.Amenities {
		if !models.ValidAmenity(a) {
			return fmt.Errorf("unknown amenity %q", a)
		}
	}
	for _, f := range l.Accessibility {
		if !models.ValidAccessibility(f) {
			return fmt.Errorf("unknown accessibility feature %q", f)
		}
	}

	if !l.CheckIn.Flexible && l.CheckIn.Start == "" {
		return fmt.Errorf("check-in window requires a start time unless flexible")
	}
	if l.CheckoutTime == "" {
		return fmt.Errorf("checkout time is required")
	}

	return nil
}

package store

import "venuproj/models"

// MigrateListing folds field names written by older editor versions into
// the current schema. Runs once at load so read sites never check both
// spellings.
func MigrateListing(l models.Listing) models.Listing {
	if len(l.Amenities) == 0 && len(l.LegacyAmenities) > 0 {
		l.Amenities = l.LegacyAmenities
	}
	if len(l.Occasions) == 0 && len(l.LegacyOccasions) > 0 {
		l.Occasions = l.LegacyOccasions
	}
	l.LegacyAmenities = nil
	l.LegacyOccasions = nil

	if l.Status == "" {
		l.Status = models.StatusListed
	}
	if l.Photos == nil {
		l.Photos = []models.Photo{}
	}
	return l
}

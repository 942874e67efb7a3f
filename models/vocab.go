package models

import "slices"

// Fixed vocabularies. Guest-facing filters match against these exact
// values, so editors must reject anything outside them.

var Occasions = []string{
	"wedding",
	"engagement",
	"birthday",
	"anniversary",
	"baby shower",
	"graduation",
	"corporate event",
	"conference",
	"reunion",
	"concert",
	"photo shoot",
}

var Amenities = []string{
	"wifi",
	"parking",
	"catering",
	"bar",
	"kitchen",
	"sound system",
	"stage",
	"projector",
	"air conditioning",
	"heating",
	"tables and chairs",
	"dance floor",
	"outdoor space",
}

// AccessibilityFeatures is kept disjoint from Amenities.
var AccessibilityFeatures = []string{
	"wheelchair ramp",
	"elevator",
	"accessible restroom",
	"accessible parking",
	"step-free entrance",
	"braille signage",
	"hearing loop",
}

var GuestRanges = []string{"1-50", "51-100", "101-300", "300+"}

var RateTypes = []string{"per-head", "whole-event"}

var PropertyTypes = []string{
	"banquet hall",
	"garden",
	"rooftop",
	"conference center",
	"restaurant",
	"warehouse",
	"estate",
	"other",
}

var UnlistReasons = []string{
	"venue not available for now",
	"too many booking requests",
	"updating listing details",
	"seasonal closure",
	"closing the business",
	"other",
}

func ValidOccasion(v string) bool      { return slices.Contains(Occasions, v) }
func ValidAmenity(v string) bool       { return slices.Contains(Amenities, v) }
func ValidAccessibility(v string) bool { return slices.Contains(AccessibilityFeatures, v) }
func ValidGuestRange(v string) bool    { return slices.Contains(GuestRanges, v) }
func ValidRateType(v string) bool      { return slices.Contains(RateTypes, v) }
func ValidPropertyType(v string) bool  { return slices.Contains(PropertyTypes, v) }
func ValidUnlistReason(v string) bool  { return slices.Contains(UnlistReasons, v) }

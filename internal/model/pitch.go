package model

import "strings"

// PitchType tells whether a pitch is covered or open air.
type PitchType string

const (
	PitchIndoor  PitchType = "indoor"
	PitchOutdoor PitchType = "outdoor"
)

// Status is the operational state of a pitch.
type Status string

const (
	StatusActive      Status = "active"
	StatusInactive    Status = "inactive"
	StatusMaintenance Status = "maintenance"
)

// Pitch represents a bookable football pitch as served by the catalog.
// Records are built once by a loader (bundled dataset, JSON file or the
// `pitches` table) and are never mutated afterwards.
//
// Fields:
//  ID           – opaque identifier, unique within the collection.
//  Name         – display name of the facility.
//  City         – city name, compared by exact equality when filtering.
//  District     – district inside the city, exact equality as well.
//  Address      – street part of the address.
//  Location     – composed "address, district, city" string used by search.
//  Price        – hourly price in whole currency units.
//  NightPrice   – optional night-time hourly price.
//  Rating       – average review score in [0,5].
//  ReviewCount  – number of reviews behind Rating.
//  Capacity     – free-text label such as "10 oyuncu".
//  PitchType    – indoor or outdoor.
//  CameraSystem – whether matches can be recorded.
//  ShoeRental   – whether shoes can be rented on site.
//  Status       – active, inactive or maintenance.
//  ImageURL     – cover image, display only.
//  Features     – human readable feature labels, display only.
type Pitch struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	City         string    `json:"city"`
	District     string    `json:"district"`
	Address      string    `json:"address"`
	Location     string    `json:"location"`
	Price        int       `json:"price"`
	NightPrice   *int      `json:"night_price,omitempty"`
	Rating       float64   `json:"rating"`
	ReviewCount  int       `json:"review_count"`
	Capacity     string    `json:"capacity"`
	PitchType    PitchType `json:"pitch_type"`
	CameraSystem bool      `json:"camera_system"`
	ShoeRental   bool      `json:"shoe_rental"`
	Status       Status    `json:"status"`
	ImageURL     string    `json:"image_url,omitempty"`
	Features     []string  `json:"features,omitempty"`
}

// ComposeLocation joins the non-empty address parts the way the catalog
// displays and searches them.
func ComposeLocation(address, district, city string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{address, district, city} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// ParsePitchType maps English and Turkish labels onto a PitchType. Unknown
// labels yield the empty type, which only matches an unfiltered query.
func ParsePitchType(s string) PitchType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "indoor", "kapali", "kapalı":
		return PitchIndoor
	case "outdoor", "acik", "açık":
		return PitchOutdoor
	}
	return ""
}

// ParseStatus maps a status label onto a Status, defaulting to active.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inactive", "pasif":
		return StatusInactive
	case "maintenance", "bakim", "bakımda", "bakım":
		return StatusMaintenance
	}
	return StatusActive
}

// WholeUnits converts a minor-unit amount (kuruş) to whole lira, rounding
// half away from zero.
func WholeUnits(minor int) int {
	if minor < 0 {
		return -WholeUnits(-minor)
	}
	return (minor + 50) / 100
}

// Package dataset turns the bundled pitch listing, or an external file in
// the same format, into catalog records.
package dataset

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/iliyamo/pitch-reservation/internal/model"
)

//go:embed pitches.json
var bundled []byte

// ErrInvalidRecord reports a raw record that cannot become a pitch.
var ErrInvalidRecord = errors.New("invalid pitch record")

// Feature labels derived from the boolean amenities.
const (
	FeatureCamera     = "Kamera Sistemi"
	FeatureShoeRental = "Ayakkabı Kiralama"
)

// Record is one raw listing entry. Prices are in kuruş.
type Record struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	City            string   `json:"city"`
	District        string   `json:"district"`
	Address         string   `json:"address"`
	PriceKurus      int      `json:"price_kurus"`
	NightPriceKurus *int     `json:"night_price_kurus"`
	Rating          float64  `json:"rating"`
	ReviewCount     int      `json:"review_count"`
	Capacity        string   `json:"capacity"`
	Type            string   `json:"type"`
	CameraSystem    bool     `json:"camera_system"`
	ShoeRental      bool     `json:"shoe_rental"`
	Status          string   `json:"status"`
	Image           string   `json:"image"`
	Amenities       []string `json:"amenities"`
}

// Load returns the bundled pitches.
func Load() ([]model.Pitch, error) {
	return Parse(bundled)
}

// LoadFile reads pitches from a JSON file in the bundled format.
func LoadFile(path string) ([]model.Pitch, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(bs)
}

// Parse decodes a JSON array of records and transforms them.
func Parse(bs []byte) ([]model.Pitch, error) {
	var raw []Record
	if err := json.Unmarshal(bs, &raw); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return Transform(raw)
}

// Transform converts raw records, rejecting records without an id or name
// and duplicate ids.
func Transform(raw []Record) ([]model.Pitch, error) {
	out := make([]model.Pitch, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, r := range raw {
		id := strings.TrimSpace(r.ID)
		name := strings.TrimSpace(r.Name)
		if id == "" || name == "" {
			return nil, fmt.Errorf("%w: record %d lacks id or name", ErrInvalidRecord, i)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidRecord, id)
		}
		seen[id] = struct{}{}
		out = append(out, toPitch(id, name, r))
	}
	return out, nil
}

func toPitch(id, name string, r Record) model.Pitch {
	p := model.Pitch{
		ID:           id,
		Name:         name,
		City:         strings.TrimSpace(r.City),
		District:     strings.TrimSpace(r.District),
		Address:      strings.TrimSpace(r.Address),
		Price:        model.WholeUnits(r.PriceKurus),
		Rating:       r.Rating,
		ReviewCount:  r.ReviewCount,
		Capacity:     r.Capacity,
		PitchType:    model.ParsePitchType(r.Type),
		CameraSystem: r.CameraSystem,
		ShoeRental:   r.ShoeRental,
		Status:       model.ParseStatus(r.Status),
		ImageURL:     r.Image,
	}
	p.Location = model.ComposeLocation(p.Address, p.District, p.City)
	if r.NightPriceKurus != nil {
		n := model.WholeUnits(*r.NightPriceKurus)
		p.NightPrice = &n
	}
	p.Features = append(p.Features, r.Amenities...)
	if r.CameraSystem {
		p.Features = append(p.Features, FeatureCamera)
	}
	if r.ShoeRental {
		p.Features = append(p.Features, FeatureShoeRental)
	}
	return p
}

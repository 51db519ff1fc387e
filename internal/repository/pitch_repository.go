package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iliyamo/pitch-reservation/internal/model"
)

// PitchRepo encapsulates the queries against the `pitches` table. Prices are
// stored in kuruş like the bundled dataset; nullable columns map to the
// neutral values the catalog expects (empty label, zero rating).
type PitchRepo struct {
	db *sql.DB
}

func NewPitchRepo(db *sql.DB) *PitchRepo {
	return &PitchRepo{db: db}
}

const pitchColumns = `id, name, city, district, address,
		price_cents, night_price_cents, rating, review_count, capacity,
		pitch_type, camera_system, shoe_rental, status, image_url, features`

// ListAll returns every pitch in display order.
func (r *PitchRepo) ListAll(ctx context.Context) ([]model.Pitch, error) {
	q := `SELECT ` + pitchColumns + ` FROM pitches ORDER BY display_order ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Pitch{}
	for rows.Next() {
		p, err := scanPitch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches one pitch. It returns ErrPitchNotFound if no row exists.
func (r *PitchRepo) GetByID(ctx context.Context, id string) (model.Pitch, error) {
	q := `SELECT ` + pitchColumns + ` FROM pitches WHERE id = ?`
	p, err := scanPitch(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Pitch{}, ErrPitchNotFound
	}
	return p, err
}

// ReplaceAll swaps the table contents for pitches inside one transaction.
// The slice order becomes the display order.
func (r *PitchRepo) ReplaceAll(ctx context.Context, pitches []model.Pitch) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM pitches"); err != nil {
		return err
	}
	const qInsert = `INSERT INTO pitches (id, display_order, name, city, district, address,
		price_cents, night_price_cents, rating, review_count, capacity,
		pitch_type, camera_system, shoe_rental, status, image_url, features)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, p := range pitches {
		var night any
		if p.NightPrice != nil {
			night = *p.NightPrice * 100
		}
		features, err := json.Marshal(p.Features)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, qInsert,
			p.ID, i, p.Name, p.City, p.District, p.Address,
			p.Price*100, night, p.Rating, p.ReviewCount, p.Capacity,
			string(p.PitchType), p.CameraSystem, p.ShoeRental, string(p.Status), p.ImageURL, string(features),
		); err != nil {
			return fmt.Errorf("insert pitch %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPitch(s scanner) (model.Pitch, error) {
	var (
		p                                       model.Pitch
		district, address, capacity, image, fts sql.NullString
		pitchType, status                       sql.NullString
		price, night, reviews                   sql.NullInt64
		rating                                  sql.NullFloat64
		camera, shoes                           sql.NullBool
	)
	if err := s.Scan(
		&p.ID,
		&p.Name,
		&p.City,
		&district,
		&address,
		&price,
		&night,
		&rating,
		&reviews,
		&capacity,
		&pitchType,
		&camera,
		&shoes,
		&status,
		&image,
		&fts,
	); err != nil {
		return model.Pitch{}, err
	}
	p.District = district.String
	p.Address = address.String
	p.Location = model.ComposeLocation(p.Address, p.District, p.City)
	p.Price = model.WholeUnits(int(price.Int64))
	if night.Valid {
		n := model.WholeUnits(int(night.Int64))
		p.NightPrice = &n
	}
	p.Rating = rating.Float64
	p.ReviewCount = int(reviews.Int64)
	p.Capacity = capacity.String
	p.PitchType = model.ParsePitchType(pitchType.String)
	p.CameraSystem = camera.Bool
	p.ShoeRental = shoes.Bool
	p.Status = model.ParseStatus(status.String)
	p.ImageURL = image.String
	if fts.Valid && fts.String != "" {
		if err := json.Unmarshal([]byte(fts.String), &p.Features); err != nil {
			return model.Pitch{}, fmt.Errorf("%w for pitch %s: %v", ErrInvalidFeatures, p.ID, err)
		}
	}
	return p, nil
}

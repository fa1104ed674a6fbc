package store

import (
	"database/sql"
	"fmt"

	"github.com/outfitoo/outfitoo/internal/model"
)

// OutfitStore persists generation results. Rows are immutable once written.
type OutfitStore struct {
	db *sql.DB
}

func NewOutfitStore(db *sql.DB) *OutfitStore {
	return &OutfitStore{db: db}
}

const outfitCols = `id, owner_id, image_url, user_filename, outfit_filename, created_at`

func scanOutfit(scanner interface{ Scan(...any) error }) (*model.Outfit, error) {
	var o model.Outfit
	var userFilename, outfitFilename sql.NullString

	err := scanner.Scan(&o.ID, &o.OwnerID, &o.ImageURL, &userFilename, &outfitFilename, &o.CreatedAt)
	if err != nil {
		return nil, err
	}

	if userFilename.Valid {
		o.UserFilename = &userFilename.String
	}
	if outfitFilename.Valid {
		o.OutfitFilename = &outfitFilename.String
	}
	return &o, nil
}

// Create inserts one record for the owner and returns the stored row.
func (s *OutfitStore) Create(ownerID, imageURL string, userFilename, outfitFilename *string) (*model.Outfit, error) {
	var uf, of sql.NullString
	if userFilename != nil {
		uf = sql.NullString{String: *userFilename, Valid: true}
	}
	if outfitFilename != nil {
		of = sql.NullString{String: *outfitFilename, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO generated_outfits (owner_id, image_url, user_filename, outfit_filename) VALUES (?, ?, ?, ?)`,
		ownerID, imageURL, uf, of,
	)
	if err != nil {
		return nil, fmt.Errorf("insert outfit: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *OutfitStore) GetByID(id int64) (*model.Outfit, error) {
	row := s.db.QueryRow(`SELECT `+outfitCols+` FROM generated_outfits WHERE id = ?`, id)
	o, err := scanOutfit(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get outfit: %w", err)
	}
	return o, nil
}

// ListByOwner returns the owner's records newest first.
func (s *OutfitStore) ListByOwner(ownerID string) ([]model.Outfit, error) {
	rows, err := s.db.Query(
		`SELECT `+outfitCols+` FROM generated_outfits
		 WHERE owner_id = ?
		 ORDER BY created_at DESC, id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list outfits: %w", err)
	}
	defer rows.Close()

	var outfits []model.Outfit
	for rows.Next() {
		o, err := scanOutfit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan outfit: %w", err)
		}
		outfits = append(outfits, *o)
	}
	return outfits, rows.Err()
}

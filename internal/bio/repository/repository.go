package repository

import (
	"context"
	"errors"
	"time"

	"github.com/AlibekovAA/portfolio-api/internal/bio/domain"
	"github.com/AlibekovAA/portfolio-api/internal/common/db"
)

const biosTable = "bios"

var ErrBioNotFound = errors.New("bio not found")

type Repository interface {
	FindFirst(ctx context.Context) (domain.Bio, error)
	Create(ctx context.Context, bio domain.Bio) (domain.Bio, error)
	Update(ctx context.Context, bio domain.Bio) (domain.Bio, error)
}

type PgRepository struct {
	db db.DBTX
}

func NewPgRepository(conn db.DBTX) *PgRepository {
	return &PgRepository{db: conn}
}

const bioColumns = `id, full_name, title, summary, detailed_description, email, phone, location,
	linkedin_url, github_url, website_url, profile_image_url, created_at, updated_at`

func (r *PgRepository) FindFirst(ctx context.Context) (domain.Bio, error) {
	start := time.Now()
	bio, err := scanBio(r.db.QueryRow(ctx, `SELECT `+bioColumns+` FROM bios ORDER BY id LIMIT 1`))
	if err := db.HandleQueryError(err, ErrBioNotFound, "find first bio", biosTable, start); err != nil {
		return domain.Bio{}, err
	}
	return bio, nil
}

func (r *PgRepository) Create(ctx context.Context, bio domain.Bio) (domain.Bio, error) {
	start := time.Now()
	err := r.db.QueryRow(
		ctx,
		`INSERT INTO bios (full_name, title, summary, detailed_description, email, phone, location,
			linkedin_url, github_url, website_url, profile_image_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id`,
		bio.FullName,
		bio.Title,
		bio.Summary,
		bio.DetailedDescription,
		bio.Email,
		bio.Phone,
		bio.Location,
		bio.LinkedInURL,
		bio.GitHubURL,
		bio.WebsiteURL,
		bio.ProfileImageURL,
		bio.CreatedAt,
		bio.UpdatedAt,
	).Scan(&bio.ID)
	if err := db.HandleExecError(err, "create bio", biosTable, start); err != nil {
		return domain.Bio{}, err
	}
	return bio, nil
}

// Update overwrites every mutable column of bio.ID and returns the stored
// row, so created_at comes back from the database untouched.
func (r *PgRepository) Update(ctx context.Context, bio domain.Bio) (domain.Bio, error) {
	start := time.Now()
	updated, err := scanBio(r.db.QueryRow(
		ctx,
		`UPDATE bios
		 SET full_name = $2, title = $3, summary = $4, detailed_description = $5, email = $6,
			phone = $7, location = $8, linkedin_url = $9, github_url = $10, website_url = $11,
			profile_image_url = $12, updated_at = $13
		 WHERE id = $1
		 RETURNING `+bioColumns,
		bio.ID,
		bio.FullName,
		bio.Title,
		bio.Summary,
		bio.DetailedDescription,
		bio.Email,
		bio.Phone,
		bio.Location,
		bio.LinkedInURL,
		bio.GitHubURL,
		bio.WebsiteURL,
		bio.ProfileImageURL,
		bio.UpdatedAt,
	))
	if err := db.HandleQueryError(err, ErrBioNotFound, "update bio", biosTable, start); err != nil {
		return domain.Bio{}, err
	}
	return updated, nil
}

type row interface {
	Scan(dest ...interface{}) error
}

func scanBio(r row) (domain.Bio, error) {
	var bio domain.Bio
	err := r.Scan(
		&bio.ID,
		&bio.FullName,
		&bio.Title,
		&bio.Summary,
		&bio.DetailedDescription,
		&bio.Email,
		&bio.Phone,
		&bio.Location,
		&bio.LinkedInURL,
		&bio.GitHubURL,
		&bio.WebsiteURL,
		&bio.ProfileImageURL,
		&bio.CreatedAt,
		&bio.UpdatedAt,
	)
	return bio, err
}

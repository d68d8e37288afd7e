package repository

import (
	"context"
	"errors"
	"time"

	"github.com/AlibekovAA/portfolio-api/internal/common/db"
	"github.com/AlibekovAA/portfolio-api/internal/contact/domain"
)

const contactsTable = "contacts"

var ErrContactNotFound = errors.New("contact not found")

type Repository interface {
	List(ctx context.Context) ([]domain.Contact, error)
	FindByID(ctx context.Context, id int64) (domain.Contact, error)
	Create(ctx context.Context, contact domain.Contact) (domain.Contact, error)
	MarkRead(ctx context.Context, id int64) error
}

type PgRepository struct {
	db db.DBTX
}

func NewPgRepository(conn db.DBTX) *PgRepository {
	return &PgRepository{db: conn}
}

const contactColumns = `id, name, email, subject, message, is_read, created_at`

// List returns the inbox newest first.
func (r *PgRepository) List(ctx context.Context) ([]domain.Contact, error) {
	start := time.Now()
	rows, err := r.db.Query(ctx, `SELECT `+contactColumns+` FROM contacts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "list contacts", contactsTable, start)
	}
	defer rows.Close()

	contacts := make([]domain.Contact, 0)
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.IsRead, &c.CreatedAt); err != nil {
			return nil, db.HandleQueryError(err, nil, "scan contact", contactsTable, start)
		}
		contacts = append(contacts, c)
	}
	if err := db.HandleQueryError(rows.Err(), nil, "list contacts", contactsTable, start); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id int64) (domain.Contact, error) {
	start := time.Now()

	var c domain.Contact
	err := r.db.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.IsRead, &c.CreatedAt)
	if err := db.HandleQueryError(err, ErrContactNotFound, "find contact by id", contactsTable, start); err != nil {
		return domain.Contact{}, err
	}
	return c, nil
}

func (r *PgRepository) Create(ctx context.Context, contact domain.Contact) (domain.Contact, error) {
	start := time.Now()
	err := r.db.QueryRow(
		ctx,
		`INSERT INTO contacts (name, email, subject, message, is_read, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		contact.Name,
		contact.Email,
		contact.Subject,
		contact.Message,
		contact.IsRead,
		contact.CreatedAt,
	).Scan(&contact.ID)
	if err := db.HandleExecError(err, "create contact", contactsTable, start); err != nil {
		return domain.Contact{}, err
	}
	return contact, nil
}

func (r *PgRepository) MarkRead(ctx context.Context, id int64) error {
	start := time.Now()
	tag, err := r.db.Exec(ctx, `UPDATE contacts SET is_read = TRUE WHERE id = $1`, id)
	if err := db.HandleExecError(err, "mark contact read", contactsTable, start); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

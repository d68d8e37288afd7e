package domain

import (
	"strconv"
	"strings"
	"time"
)

type ID int64

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

type User struct {
	ID           ID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// NormalizeEmail is applied before every email lookup and write so the
// unique constraint is effectively case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package mapper

import (
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	contactdomain "github.com/AlibekovAA/portfolio-api/internal/contact/domain"
	contactdto "github.com/AlibekovAA/portfolio-api/internal/contact/service/dto"
)

func ContactToDTO(c contactdomain.Contact) contactdto.Contact {
	return contactdto.Contact{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Subject:   c.Subject,
		Message:   c.Message,
		IsRead:    c.IsRead,
		CreatedAt: c.CreatedAt,
	}
}

func ContactsToDTO(contacts []contactdomain.Contact) []contactdto.Contact {
	result := make([]contactdto.Contact, len(contacts))
	for i, c := range contacts {
		result[i] = ContactToDTO(c)
	}
	return result
}

// Submissions come from anonymous visitors and are shown in the admin inbox,
// so all markup is stripped.
var strictPolicy = bluemonday.StrictPolicy()

// stripMarkup removes tags but keeps the text as typed: the policy
// entity-encodes what it leaves, and the API serves JSON, not HTML.
func stripMarkup(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// SanitizeInput trims the fields and strips markup. Validation runs on its
// result so length limits apply to what is stored.
func SanitizeInput(input contactdto.ContactInput) contactdto.ContactInput {
	return contactdto.ContactInput{
		Name:    stripMarkup(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Subject: stripMarkup(input.Subject),
		Message: stripMarkup(input.Message),
	}
}

// ContactFromInput builds an unread message received at now from sanitised
// input.
func ContactFromInput(input contactdto.ContactInput, now time.Time) contactdomain.Contact {
	return contactdomain.Contact{
		Name:      input.Name,
		Email:     input.Email,
		Subject:   input.Subject,
		Message:   input.Message,
		IsRead:    false,
		CreatedAt: now,
	}
}

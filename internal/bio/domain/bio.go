package domain

import "time"

type Bio struct {
	ID                  int64
	FullName            string
	Title               string
	Summary             string
	DetailedDescription *string
	Email               string
	Phone               *string
	Location            *string
	LinkedInURL         *string
	GitHubURL           *string
	WebsiteURL          *string
	ProfileImageURL     *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

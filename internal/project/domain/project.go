package domain

import "time"

type Project struct {
	ID                  int64
	Title               string
	Description         string
	DetailedDescription *string
	Technologies        []string
	ProjectURL          *string
	GitHubURL           *string
	ImageURL            *string
	StartDate           *time.Time
	EndDate             *time.Time
	IsActive            bool
	DisplayOrder        int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

package dto

import "time"

type Bio struct {
	ID                  int64     `json:"id"`
	FullName            string    `json:"fullName"`
	Title               string    `json:"title"`
	Summary             string    `json:"summary"`
	DetailedDescription *string   `json:"detailedDescription"`
	Email               string    `json:"email"`
	Phone               *string   `json:"phone"`
	Location            *string   `json:"location"`
	LinkedInURL         *string   `json:"linkedInUrl"`
	GitHubURL           *string   `json:"gitHubUrl"`
	WebsiteURL          *string   `json:"websiteUrl"`
	ProfileImageURL     *string   `json:"profileImageUrl"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// BioInput is the body of both create and update requests.
type BioInput struct {
	FullName            string  `json:"fullName" validate:"required,max=200"`
	Title               string  `json:"title" validate:"required,max=200"`
	Summary             string  `json:"summary" validate:"required,max=1000"`
	DetailedDescription *string `json:"detailedDescription" validate:"omitempty,max=5000"`
	Email               string  `json:"email" validate:"required,email,max=200"`
	Phone               *string `json:"phone" validate:"omitempty,max=50"`
	Location            *string `json:"location" validate:"omitempty,max=200"`
	LinkedInURL         *string `json:"linkedInUrl" validate:"omitempty,url,max=500"`
	GitHubURL           *string `json:"gitHubUrl" validate:"omitempty,url,max=500"`
	WebsiteURL          *string `json:"websiteUrl" validate:"omitempty,url,max=500"`
	ProfileImageURL     *string `json:"profileImageUrl" validate:"omitempty,url,max=500"`
}

package dto

import "time"

type Project struct {
	ID                  int64      `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	DetailedDescription *string    `json:"detailedDescription"`
	Technologies        []string   `json:"technologies"`
	ProjectURL          *string    `json:"projectUrl"`
	GitHubURL           *string    `json:"gitHubUrl"`
	ImageURL            *string    `json:"imageUrl"`
	StartDate           *time.Time `json:"startDate"`
	EndDate             *time.Time `json:"endDate"`
	IsActive            bool       `json:"isActive"`
	DisplayOrder        int        `json:"displayOrder"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// ProjectInput is the body of both create and update requests. A missing
// isActive means active.
type ProjectInput struct {
	Title               string     `json:"title" validate:"required,max=200"`
	Description         string     `json:"description" validate:"required,max=1000"`
	DetailedDescription *string    `json:"detailedDescription" validate:"omitempty,max=5000"`
	Technologies        []string   `json:"technologies" validate:"max=50,dive,required,max=100"`
	ProjectURL          *string    `json:"projectUrl" validate:"omitempty,url,max=500"`
	GitHubURL           *string    `json:"gitHubUrl" validate:"omitempty,url,max=500"`
	ImageURL            *string    `json:"imageUrl" validate:"omitempty,url,max=500"`
	StartDate           *time.Time `json:"startDate"`
	EndDate             *time.Time `json:"endDate"`
	IsActive            *bool      `json:"isActive"`
	DisplayOrder        int        `json:"displayOrder" validate:"gte=0"`
}

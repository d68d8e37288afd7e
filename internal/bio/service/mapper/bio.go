package mapper

import (
	"time"

	biodomain "github.com/AlibekovAA/portfolio-api/internal/bio/domain"
	biodto "github.com/AlibekovAA/portfolio-api/internal/bio/service/dto"
)

func BioToDTO(bio biodomain.Bio) biodto.Bio {
	return biodto.Bio{
		ID:                  bio.ID,
		FullName:            bio.FullName,
		Title:               bio.Title,
		Summary:             bio.Summary,
		DetailedDescription: bio.DetailedDescription,
		Email:               bio.Email,
		Phone:               bio.Phone,
		Location:            bio.Location,
		LinkedInURL:         bio.LinkedInURL,
		GitHubURL:           bio.GitHubURL,
		WebsiteURL:          bio.WebsiteURL,
		ProfileImageURL:     bio.ProfileImageURL,
		CreatedAt:           bio.CreatedAt,
		UpdatedAt:           bio.UpdatedAt,
	}
}

// BioFromInput builds an entity stamped with now for both timestamps.
func BioFromInput(id int64, input biodto.BioInput, now time.Time) biodomain.Bio {
	return biodomain.Bio{
		ID:                  id,
		FullName:            input.FullName,
		Title:               input.Title,
		Summary:             input.Summary,
		DetailedDescription: input.DetailedDescription,
		Email:               input.Email,
		Phone:               input.Phone,
		Location:            input.Location,
		LinkedInURL:         input.LinkedInURL,
		GitHubURL:           input.GitHubURL,
		WebsiteURL:          input.WebsiteURL,
		ProfileImageURL:     input.ProfileImageURL,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

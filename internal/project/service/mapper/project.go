package mapper

import (
	"time"

	projectdomain "github.com/AlibekovAA/portfolio-api/internal/project/domain"
	projectdto "github.com/AlibekovAA/portfolio-api/internal/project/service/dto"
)

func ProjectToDTO(p projectdomain.Project) projectdto.Project {
	technologies := p.Technologies
	if technologies == nil {
		technologies = []string{}
	}
	return projectdto.Project{
		ID:                  p.ID,
		Title:               p.Title,
		Description:         p.Description,
		DetailedDescription: p.DetailedDescription,
		Technologies:        technologies,
		ProjectURL:          p.ProjectURL,
		GitHubURL:           p.GitHubURL,
		ImageURL:            p.ImageURL,
		StartDate:           p.StartDate,
		EndDate:             p.EndDate,
		IsActive:            p.IsActive,
		DisplayOrder:        p.DisplayOrder,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

func ProjectsToDTO(projects []projectdomain.Project) []projectdto.Project {
	result := make([]projectdto.Project, len(projects))
	for i, p := range projects {
		result[i] = ProjectToDTO(p)
	}
	return result
}

func ProjectFromInput(id int64, input projectdto.ProjectInput, now time.Time) projectdomain.Project {
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	return projectdomain.Project{
		ID:                  id,
		Title:               input.Title,
		Description:         input.Description,
		DetailedDescription: input.DetailedDescription,
		Technologies:        input.Technologies,
		ProjectURL:          input.ProjectURL,
		GitHubURL:           input.GitHubURL,
		ImageURL:            input.ImageURL,
		StartDate:           input.StartDate,
		EndDate:             input.EndDate,
		IsActive:            isActive,
		DisplayOrder:        input.DisplayOrder,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

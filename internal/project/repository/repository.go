package repository

import (
	"context"
	"errors"
	"time"

	"github.com/AlibekovAA/portfolio-api/internal/common/db"
	"github.com/AlibekovAA/portfolio-api/internal/project/domain"
)

const projectsTable = "projects"

var ErrProjectNotFound = errors.New("project not found")

type Repository interface {
	List(ctx context.Context) ([]domain.Project, error)
	FindByID(ctx context.Context, id int64) (domain.Project, error)
	Create(ctx context.Context, project domain.Project) (domain.Project, error)
	Update(ctx context.Context, project domain.Project) (domain.Project, error)
	Delete(ctx context.Context, id int64) error
}

type PgRepository struct {
	db db.DBTX
}

func NewPgRepository(conn db.DBTX) *PgRepository {
	return &PgRepository{db: conn}
}

const projectColumns = `id, title, description, detailed_description, technologies, project_url, github_url,
	image_url, start_date, end_date, is_active, display_order, created_at, updated_at`

// List returns every project ordered by display_order, ties broken by id.
func (r *PgRepository) List(ctx context.Context) ([]domain.Project, error) {
	start := time.Now()
	rows, err := r.db.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY display_order, id`)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "list projects", projectsTable, start)
	}
	defer rows.Close()

	projects := make([]domain.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, db.HandleQueryError(err, nil, "scan project", projectsTable, start)
		}
		projects = append(projects, project)
	}
	if err := db.HandleQueryError(rows.Err(), nil, "list projects", projectsTable, start); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id int64) (domain.Project, error) {
	start := time.Now()
	project, err := scanProject(r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err := db.HandleQueryError(err, ErrProjectNotFound, "find project by id", projectsTable, start); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

func (r *PgRepository) Create(ctx context.Context, project domain.Project) (domain.Project, error) {
	start := time.Now()
	project.Technologies = nonNil(project.Technologies)

	err := r.db.QueryRow(
		ctx,
		`INSERT INTO projects (title, description, detailed_description, technologies, project_url, github_url,
			image_url, start_date, end_date, is_active, display_order, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id`,
		project.Title,
		project.Description,
		project.DetailedDescription,
		project.Technologies,
		project.ProjectURL,
		project.GitHubURL,
		project.ImageURL,
		project.StartDate,
		project.EndDate,
		project.IsActive,
		project.DisplayOrder,
		project.CreatedAt,
		project.UpdatedAt,
	).Scan(&project.ID)
	if err := db.HandleExecError(err, "create project", projectsTable, start); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

func (r *PgRepository) Update(ctx context.Context, project domain.Project) (domain.Project, error) {
	start := time.Now()
	updated, err := scanProject(r.db.QueryRow(
		ctx,
		`UPDATE projects
		 SET title = $2, description = $3, detailed_description = $4, technologies = $5, project_url = $6,
			github_url = $7, image_url = $8, start_date = $9, end_date = $10, is_active = $11,
			display_order = $12, updated_at = $13
		 WHERE id = $1
		 RETURNING `+projectColumns,
		project.ID,
		project.Title,
		project.Description,
		project.DetailedDescription,
		nonNil(project.Technologies),
		project.ProjectURL,
		project.GitHubURL,
		project.ImageURL,
		project.StartDate,
		project.EndDate,
		project.IsActive,
		project.DisplayOrder,
		project.UpdatedAt,
	))
	if err := db.HandleQueryError(err, ErrProjectNotFound, "update project", projectsTable, start); err != nil {
		return domain.Project{}, err
	}
	return updated, nil
}

// Delete removes the project if present. Deleting a missing id is not an error.
func (r *PgRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	_, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return db.HandleExecError(err, "delete project", projectsTable, start)
}

type row interface {
	Scan(dest ...interface{}) error
}

func scanProject(r row) (domain.Project, error) {
	var p domain.Project
	err := r.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.DetailedDescription,
		&p.Technologies,
		&p.ProjectURL,
		&p.GitHubURL,
		&p.ImageURL,
		&p.StartDate,
		&p.EndDate,
		&p.IsActive,
		&p.DisplayOrder,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

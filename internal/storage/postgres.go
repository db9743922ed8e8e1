package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/solobuddy/hub/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config DatabaseConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	s := &PostgresStorage{db: db}
	if err := s.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %w", err)
	}
	return s, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %w", err)
	}
	if _, err := s.db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("error executing migrations: %w", err)
	}
	return nil
}

func (s *PostgresStorage) ListBacklog(ctx context.Context) ([]models.BacklogItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, priority, format, project_ref, created_at, updated_at
		FROM backlog_items
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing backlog: %w", err)
	}
	defer rows.Close()

	var items []models.BacklogItem
	for rows.Next() {
		var item models.BacklogItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Priority, &item.Format,
			&item.ProjectRef, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning backlog item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *PostgresStorage) AddBacklogItem(ctx context.Context, item *models.BacklogItem) error {
	if item.Priority == "" {
		item.Priority = models.PriorityMedium
	}
	if item.Format == "" {
		item.Format = models.FormatThread
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO backlog_items (title, priority, format, project_ref)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		item.Title, item.Priority, item.Format, item.ProjectRef,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting backlog item: %w", err)
	}
	return nil
}

func (s *PostgresStorage) UpdatePriority(ctx context.Context, id int64, priority models.Priority) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE backlog_items SET priority = $1, updated_at = NOW() WHERE id = $2`,
		priority, id)
	if err != nil {
		return fmt.Errorf("error updating priority: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("backlog item %d not found", id)
	}
	return nil
}

func (s *PostgresStorage) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, path, github_url FROM projects ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("error listing projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.Name, &p.Path, &p.GithubURL); err != nil {
			return nil, fmt.Errorf("error scanning project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *PostgresStorage) SaveProject(ctx context.Context, project models.Project) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (name, path, github_url)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET path = EXCLUDED.path, github_url = EXCLUDED.github_url`,
		project.Name, project.Path, project.GithubURL)
	if err != nil {
		return fmt.Errorf("error saving project: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

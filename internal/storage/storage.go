package storage

import (
	"context"

	"github.com/solobuddy/hub/internal/models"
)

// Storage persists backlog items and tracked projects. The intent pipeline
// never sees this interface; the server and the telegram gateway read
// snapshots from it and apply confirmed action cards against it.
type Storage interface {
	ListBacklog(ctx context.Context) ([]models.BacklogItem, error)
	AddBacklogItem(ctx context.Context, item *models.BacklogItem) error
	UpdatePriority(ctx context.Context, id int64, priority models.Priority) error

	ListProjects(ctx context.Context) ([]models.Project, error)
	SaveProject(ctx context.Context, project models.Project) error

	Close() error
}

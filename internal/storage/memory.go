package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/solobuddy/hub/internal/models"
)

// MemoryStorage keeps everything in process memory. Used for development and
// tests; same contract as the postgres implementation.
type MemoryStorage struct {
	mu       sync.RWMutex
	nextID   int64
	backlog  map[int64]*models.BacklogItem
	projects map[string]models.Project
	order    []string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		nextID:   1,
		backlog:  make(map[int64]*models.BacklogItem),
		projects: make(map[string]models.Project),
	}
}

func (s *MemoryStorage) ListBacklog(ctx context.Context) ([]models.BacklogItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.BacklogItem, 0, len(s.backlog))
	for _, item := range s.backlog {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *MemoryStorage) AddBacklogItem(ctx context.Context, item *models.BacklogItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.nextID
	s.nextID++
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.Priority == "" {
		item.Priority = models.PriorityMedium
	}
	if item.Format == "" {
		item.Format = models.FormatThread
	}
	stored := *item
	s.backlog[item.ID] = &stored
	return nil
}

func (s *MemoryStorage) UpdatePriority(ctx context.Context, id int64, priority models.Priority) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.backlog[id]
	if !ok {
		return fmt.Errorf("backlog item %d not found", id)
	}
	item.Priority = priority
	item.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStorage) ListProjects(ctx context.Context) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]models.Project, 0, len(s.order))
	for _, name := range s.order {
		projects = append(projects, s.projects[name])
	}
	return projects, nil
}

func (s *MemoryStorage) SaveProject(ctx context.Context, project models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[project.Name]; !exists {
		s.order = append(s.order, project.Name)
	}
	s.projects[project.Name] = project
	return nil
}

func (s *MemoryStorage) Close() error {
	return nil
}

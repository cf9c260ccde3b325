package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/mateoAlonso06/educatech-api/internal/repositories"
)

// RepositoryManager wires the repository aggregate and verifies the
// database is reachable before the service layer starts.
type RepositoryManager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

func NewRepositoryManager(config RepositoryConfig) *RepositoryManager {
	return &RepositoryManager{
		config: config,
		repo:   NewPostgreSQLRepository(config),
	}
}

func (m *RepositoryManager) Initialize() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.repo.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func (m *RepositoryManager) GetRepository() repositories.Repository {
	return m.repo
}

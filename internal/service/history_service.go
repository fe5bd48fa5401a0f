package service

import (
	"go.uber.org/zap"

	"github.com/driftlab/drift-backend-go/internal/models"
	"github.com/driftlab/drift-backend-go/internal/repository"
)

// HistoryService handles business logic for saved generations
type HistoryService struct {
	repo   *repository.HistoryRepository
	logger *zap.Logger
}

// NewHistoryService creates a new history service
func NewHistoryService(repo *repository.HistoryRepository, logger *zap.Logger) *HistoryService {
	return &HistoryService{repo: repo, logger: logger}
}

// List returns saved generations, most recent first
func (s *HistoryService) List(limit, offset int) ([]*models.HistoryEntry, error) {
	if limit <= 0 {
		limit = repository.DefaultMaxEntries
	}
	return s.repo.List(limit, offset)
}

// Get returns a single saved generation by ID
func (s *HistoryService) Get(id string) (*models.HistoryEntry, error) {
	return s.repo.GetByID(id)
}

// Update applies annotation changes to a saved generation
func (s *HistoryService) Update(id string, update models.HistoryUpdate) error {
	if err := s.repo.Update(id, update); err != nil {
		return err
	}
	s.logger.Debug("updated history entry", zap.String("id", id))
	return nil
}

// Delete removes a saved generation
func (s *HistoryService) Delete(id string) error {
	return s.repo.Delete(id)
}

// Clear removes all saved generations
func (s *HistoryService) Clear() error {
	count, err := s.repo.Count()
	if err != nil {
		return err
	}
	if err := s.repo.Clear(); err != nil {
		return err
	}
	s.logger.Info("cleared history", zap.Int("removed", count))
	return nil
}

// Count returns the number of saved generations
func (s *HistoryService) Count() (int, error) {
	return s.repo.Count()
}

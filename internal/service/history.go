package service

import (
	"context"
	"fmt"

	"github.com/octobees/lead-enrichment/internal/dto"
	"github.com/octobees/lead-enrichment/internal/repository"
)

// HistoryService exposes a user's lookup history.
type HistoryService struct {
	history repository.HistoryRepository
}

// NewHistoryService constructs a new HistoryService.
func NewHistoryService(history repository.HistoryRepository) *HistoryService {
	return &HistoryService{history: history}
}

// History returns the user's visited domains keyed by domain. Users
// with no recorded lookups get an empty map, not an error.
func (s *HistoryService) History(ctx context.Context, userID string) (map[string]dto.HistoryVisit, error) {
	entries, err := s.history.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	visits := make(map[string]dto.HistoryVisit, len(entries))
	for _, entry := range entries {
		visits[entry.Domain] = dto.HistoryVisit{LastVisited: entry.LastVisited}
	}
	return visits, nil
}

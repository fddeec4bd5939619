package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fanclubhq/fanclub/internal/domain"
	"github.com/fanclubhq/fanclub/internal/repository"
)

// chapterListTTL bounds staleness of the cached chapter directory.
const chapterListTTL = 10 * time.Minute

// chapterListKey caches the full directory; it is small and rarely changes.
const chapterListKey = "network:chapters"

// NetworkService serves the global-network chapter directory.
type NetworkService struct {
	chapterRepo repository.ChapterRepository
	cache       Cache
	logger      *slog.Logger
}

// NewNetworkService creates a network service.
func NewNetworkService(
	chapterRepo repository.ChapterRepository,
	cache Cache,
	logger *slog.Logger,
) *NetworkService {
	return &NetworkService{
		chapterRepo: chapterRepo,
		cache:       cache,
		logger:      logger,
	}
}

// ListChapters returns all chapters, read through the cache.
func (s *NetworkService) ListChapters(ctx context.Context) ([]domain.Chapter, error) {
	var cached []domain.Chapter
	if cachedJSON(ctx, s.cache, s.logger, chapterListKey, &cached) {
		return cached, nil
	}

	chapters, err := s.chapterRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}

	storeJSON(ctx, s.cache, s.logger, chapterListKey, chapters, chapterListTTL)

	return chapters, nil
}

package app

import (
	"context"
	"fmt"

	"github.com/glabrego/coinboard/internal/market"
	"github.com/glabrego/coinboard/internal/storage"
)

const (
	// DisplayCount is the number of rows shown per page.
	DisplayCount = 50
	// FetchBatchSize leaves headroom for rows removed by exclusions.
	FetchBatchSize = 60
	// PreviewBatchSize is the sample fetched for a hovered page.
	PreviewBatchSize = 10
	// PreviewAttempts is a single try; preview failures degrade to unknown.
	PreviewAttempts = 1
)

type MarketClient interface {
	ListMarkets(ctx context.Context, page, perPage, maxAttempts int) ([]market.Item, error)
}

type Repository interface {
	LoadUIPreferences(ctx context.Context) (storage.UIPreferences, error)
	SaveUIPreferences(ctx context.Context, prefs storage.UIPreferences) error
}

type Service struct {
	client   MarketClient
	repo     Repository
	attempts int
}

func NewService(client MarketClient, repo Repository, attempts int) *Service {
	if attempts < 1 {
		attempts = 1
	}
	return &Service{client: client, repo: repo, attempts: attempts}
}

// LoadPage fetches the market batch backing page, already stripped of
// stable assets.
func (s *Service) LoadPage(ctx context.Context, page int) ([]market.Item, error) {
	items, err := s.client.ListMarkets(ctx, page, FetchBatchSize, s.attempts)
	if err != nil {
		return nil, fmt.Errorf("fetch market page %d: %w", page, err)
	}
	return items, nil
}

// PreviewPage fetches the small sample used for a hovered page's aggregate.
func (s *Service) PreviewPage(ctx context.Context, page int) ([]market.Item, error) {
	items, err := s.client.ListMarkets(ctx, page, PreviewBatchSize, PreviewAttempts)
	if err != nil {
		return nil, fmt.Errorf("fetch preview for page %d: %w", page, err)
	}
	return items, nil
}

func (s *Service) LoadUIPreferences(ctx context.Context) (storage.UIPreferences, error) {
	prefs, err := s.repo.LoadUIPreferences(ctx)
	if err != nil {
		return storage.UIPreferences{}, fmt.Errorf("load ui preferences from cache: %w", err)
	}
	return prefs, nil
}

func (s *Service) SaveUIPreferences(ctx context.Context, prefs storage.UIPreferences) error {
	if err := s.repo.SaveUIPreferences(ctx, prefs); err != nil {
		return fmt.Errorf("save ui preferences to cache: %w", err)
	}
	return nil
}

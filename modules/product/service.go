package product

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/servekit/pkg/logger"
)

// Service holds the product use cases.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService creates a Service. A nil logger disables logging.
func NewService(repo Repository, log *slog.Logger) *Service {
	if log == nil {
		log = logger.Noop()
	}
	return &Service{repo: repo, log: log}
}

// Create stores a product and logs its id.
func (s *Service) Create(ctx context.Context, in CreateInput) (Product, error) {
	p, err := s.repo.Create(ctx, in)
	if err != nil {
		return Product{}, err
	}
	s.log.InfoContext(ctx, "product created",
		logger.Component("product"),
		slog.String("product_id", p.ID),
	)
	return p, nil
}

// List returns every product.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

// GetByID returns ErrNotFound when no product has the id.
func (s *Service) GetByID(ctx context.Context, id string) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

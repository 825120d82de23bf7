package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"productsapi/internal/models"
	"productsapi/internal/repositories"
	"productsapi/internal/schemas"
)

// EventPublisher delivers product lifecycle events. pkg/rabbitmq.Client
// implements it.
type EventPublisher interface {
	PublishProductEvent(event schemas.ProductEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	events EventPublisher // may be nil
	log    zerolog.Logger
}

// NewProductService creates a new ProductService. events may be nil, in
// which case no lifecycle events are published.
func NewProductService(repo repositories.ProductRepository, events EventPublisher, log zerolog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
		log:    log,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct stores a new product built from a validated payload.
// Duplicate names are allowed.
func (s *ProductService) CreateProduct(ctx context.Context, in schemas.ProductCreate) (*models.Product, error) {
	product := in.ToModel()
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.publish(schemas.EventProductCreated, product.ID, product)
	return product, nil
}

// UpdateProduct overwrites only the fields present in the payload.
func (s *ProductService) UpdateProduct(ctx context.Context, id int, in schemas.ProductUpdate) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Apply(product)
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.publish(schemas.EventProductUpdated, product.ID, product)
	return product, nil
}

// DeleteProduct permanently removes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(schemas.EventProductDeleted, id, nil)
	return nil
}

// publish runs after the write has committed, so a failure is logged and
// does not change the outcome of the request.
func (s *ProductService) publish(eventType string, productID int, product *models.Product) {
	if s.events == nil {
		return
	}
	event := schemas.ProductEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		ProductID:  productID,
		OccurredAt: time.Now().UTC(),
	}
	if product != nil {
		read := schemas.NewProductRead(product)
		event.Product = &read
	}
	if err := s.events.PublishProductEvent(event); err != nil {
		s.log.Warn().Err(err).
			Str("event_type", eventType).
			Int("product_id", productID).
			Msg("failed to publish product event")
	}
}

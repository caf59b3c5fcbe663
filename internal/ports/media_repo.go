package ports

import (
	"context"

	"github.com/Vovarama1992/voci-api/internal/models"
)

type MediaTypeRepository interface {
	List(ctx context.Context) ([]models.MediaType, error)
	// GetByID returns nil, nil when the row does not exist.
	GetByID(ctx context.Context, id int) (*models.MediaType, error)
	Create(ctx context.Context, name string) (int, error)
	Update(ctx context.Context, id int, name string) error
	Delete(ctx context.Context, id int) error
}

type AuthorRepository interface {
	List(ctx context.Context) ([]models.Author, error)
	GetByID(ctx context.Context, id int) (*models.Author, error)
	Create(ctx context.Context, name, surname string) (int, error)
	Update(ctx context.Context, id int, name, surname string) error
	Delete(ctx context.Context, id int) error
}

type ContentRepository interface {
	List(ctx context.Context, filter models.ContentFilter) ([]models.Content, error)
	GetByID(ctx context.Context, id int) (*models.Content, error)

	// Create, Update and Delete are all-or-nothing: the content row and its
	// author associations are written in one transaction.
	Create(ctx context.Context, in models.ContentInput) (int, error)
	Update(ctx context.Context, id int, in models.ContentInput) error
	Delete(ctx context.Context, id int) error
}

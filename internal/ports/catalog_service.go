package ports

import (
	"context"

	"github.com/Vovarama1992/voci-api/internal/models"
)

type MediaTypeService interface {
	List(ctx context.Context) ([]models.MediaType, error)
	Get(ctx context.Context, id int) (*models.MediaType, error)
	Create(ctx context.Context, name string) (int, error)
	Update(ctx context.Context, id int, name string) error
	Delete(ctx context.Context, id int) error
}

type AuthorService interface {
	List(ctx context.Context) ([]models.Author, error)
	Get(ctx context.Context, id int) (*models.Author, error)
	Create(ctx context.Context, name, surname string) (int, error)
	Update(ctx context.Context, id int, name, surname string) error
	Delete(ctx context.Context, id int) error
}

type ContentService interface {
	List(ctx context.Context, filter models.ContentFilter) ([]models.Content, error)
	Get(ctx context.Context, id int) (*models.Content, error)
	Create(ctx context.Context, in models.ContentInput) (int, error)
	Update(ctx context.Context, id int, in models.ContentInput) error
	Delete(ctx context.Context, id int) error
}

package domain

import (
	"context"

	"github.com/Vovarama1992/voci-api/internal/models"
	"github.com/Vovarama1992/voci-api/internal/ports"
)

type authorService struct {
	repo ports.AuthorRepository
}

func NewAuthorService(repo ports.AuthorRepository) ports.AuthorService {
	return &authorService{repo: repo}
}

func (s *authorService) List(ctx context.Context) ([]models.Author, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, storage("list authors", err)
	}
	return out, nil
}

func (s *authorService) Get(ctx context.Context, id int) (*models.Author, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storage("get author", err)
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *authorService) Create(ctx context.Context, name, surname string) (int, error) {
	id, err := s.repo.Create(ctx, name, surname)
	if err != nil {
		return 0, storage("create author", err)
	}
	return id, nil
}

func (s *authorService) Update(ctx context.Context, id int, name, surname string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, name, surname); err != nil {
		return storage("update author", err)
	}
	return nil
}

func (s *authorService) Delete(ctx context.Context, id int) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return storage("delete author", err)
	}
	return nil
}

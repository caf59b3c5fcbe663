package domain

import (
	"context"

	"github.com/Vovarama1992/voci-api/internal/models"
	"github.com/Vovarama1992/voci-api/internal/ports"
)

type mediaTypeService struct {
	repo ports.MediaTypeRepository
}

func NewMediaTypeService(repo ports.MediaTypeRepository) ports.MediaTypeService {
	return &mediaTypeService{repo: repo}
}

func (s *mediaTypeService) List(ctx context.Context) ([]models.MediaType, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, storage("list media types", err)
	}
	return out, nil
}

func (s *mediaTypeService) Get(ctx context.Context, id int) (*models.MediaType, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storage("get media type", err)
	}
	if m == nil {
		return nil, ErrNotFound
	}
	return m, nil
}

func (s *mediaTypeService) Create(ctx context.Context, name string) (int, error) {
	id, err := s.repo.Create(ctx, name)
	if err != nil {
		return 0, storage("create media type", err)
	}
	return id, nil
}

func (s *mediaTypeService) Update(ctx context.Context, id int, name string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, name); err != nil {
		return storage("update media type", err)
	}
	return nil
}

func (s *mediaTypeService) Delete(ctx context.Context, id int) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return storage("delete media type", err)
	}
	return nil
}

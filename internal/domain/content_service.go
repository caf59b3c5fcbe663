package domain

import (
	"context"

	"github.com/Vovarama1992/voci-api/internal/models"
	"github.com/Vovarama1992/voci-api/internal/ports"
)

const (
	msgInvalidMediaType = "invalid media type"
	msgInvalidAuthors   = "one or more author ids are invalid"
)

type contentService struct {
	contents   ports.ContentRepository
	mediaTypes ports.MediaTypeRepository
	authors    ports.AuthorRepository
}

func NewContentService(
	contents ports.ContentRepository,
	mediaTypes ports.MediaTypeRepository,
	authors ports.AuthorRepository,
) ports.ContentService {
	return &contentService{
		contents:   contents,
		mediaTypes: mediaTypes,
		authors:    authors,
	}
}

func (s *contentService) List(ctx context.Context, filter models.ContentFilter) ([]models.Content, error) {
	out, err := s.contents.List(ctx, filter)
	if err != nil {
		return nil, storage("list contents", err)
	}
	return out, nil
}

func (s *contentService) Get(ctx context.Context, id int) (*models.Content, error) {
	c, err := s.contents.GetByID(ctx, id)
	if err != nil {
		return nil, storage("get content", err)
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *contentService) Create(ctx context.Context, in models.ContentInput) (int, error) {
	in.AuthorIDs = in.UniqueAuthorIDs()

	if err := s.checkReferences(ctx, in); err != nil {
		return 0, err
	}

	id, err := s.contents.Create(ctx, in)
	if err != nil {
		return 0, storage("create content", err)
	}
	return id, nil
}

func (s *contentService) Update(ctx context.Context, id int, in models.ContentInput) error {
	in.AuthorIDs = in.UniqueAuthorIDs()

	if err := s.checkReferences(ctx, in); err != nil {
		return err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.contents.Update(ctx, id, in); err != nil {
		return storage("update content", err)
	}
	return nil
}

func (s *contentService) Delete(ctx context.Context, id int) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.contents.Delete(ctx, id); err != nil {
		return storage("delete content", err)
	}
	return nil
}

// checkReferences verifies the media type and every author exist before
// anything is written.
func (s *contentService) checkReferences(ctx context.Context, in models.ContentInput) error {
	mt, err := s.mediaTypes.GetByID(ctx, in.MediaTypeID)
	if err != nil {
		return storage("check media type", err)
	}
	if mt == nil {
		return invalid(msgInvalidMediaType)
	}

	for _, authorID := range in.AuthorIDs {
		a, err := s.authors.GetByID(ctx, authorID)
		if err != nil {
			return storage("check author", err)
		}
		if a == nil {
			return invalid(msgInvalidAuthors)
		}
	}
	return nil
}

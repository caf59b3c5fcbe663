// Package testutil holds an in-memory implementation of the repository ports
// for service and handler tests.
package testutil

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Vovarama1992/voci-api/internal/models"
	"github.com/Vovarama1992/voci-api/internal/ports"
)

var ErrDuplicate = errors.New("duplicate entry")

type contentRow struct {
	models.Content
}

// Store mimics the relational schema closely enough for behaviour tests:
// unique media type names, content -> author links and newest-first listing.
type Store struct {
	mu sync.Mutex

	mediaTypes map[int]models.MediaType
	authors    map[int]models.Author
	contents   map[int]contentRow
	links      map[int]map[int]struct{}
	nextID     map[string]int
	now        time.Time

	// FailWrites makes every write return this error without changing state.
	FailWrites error
}

func NewStore() *Store {
	return &Store{
		mediaTypes: map[int]models.MediaType{},
		authors:    map[int]models.Author{},
		contents:   map[int]contentRow{},
		links:      map[int]map[int]struct{}{},
		nextID:     map[string]int{},
		now:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *Store) MediaTypes() ports.MediaTypeRepository { return mediaTypeRepo{s} }
func (s *Store) Authors() ports.AuthorRepository       { return authorRepo{s} }
func (s *Store) Contents() ports.ContentRepository     { return contentRepo{s} }

// ContentCount and LinkCount expose raw table sizes.
func (s *Store) ContentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.contents)
}

func (s *Store) LinkCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, set := range s.links {
		n += len(set)
	}
	return n
}

func (s *Store) id(table string) int {
	s.nextID[table]++
	return s.nextID[table]
}

func (s *Store) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

type mediaTypeRepo struct{ s *Store }

func (r mediaTypeRepo) List(ctx context.Context) ([]models.MediaType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []models.MediaType{}
	for _, m := range r.s.mediaTypes {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r mediaTypeRepo) GetByID(ctx context.Context, id int) (*models.MediaType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.mediaTypes[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r mediaTypeRepo) Create(ctx context.Context, name string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.FailWrites != nil {
		return 0, r.s.FailWrites
	}
	for _, m := range r.s.mediaTypes {
		if m.Name == name {
			return 0, ErrDuplicate
		}
	}
	id := r.s.id("media_types")
	r.s.mediaTypes[id] = models.MediaType{ID: id, Name: name}
	return id, nil
}

func (r mediaTypeRepo) Update(ctx context.Context, id int, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.FailWrites != nil {
		return r.s.FailWrites
	}
	for _, m := range r.s.mediaTypes {
		if m.Name == name && m.ID != id {
			return ErrDuplicate
		}
	}
	if _, ok := r.s.mediaTypes[id]; ok {
		r.s.mediaTypes[id] = models.MediaType{ID: id, Name: name}
	}
	return nil
}

func (r mediaTypeRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.FailWrites != nil {
		return r.s.FailWrites
	}
	for _, c := range r.s.contents {
		if c.MediaTypeID == id {
			return errors.New("foreign key constraint fails")
		}
	}
	delete(r.s.mediaTypes, id)
	return nil
}

type authorRepo struct{ s *Store }

func (r authorRepo) List(ctx context.Context) ([]models.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []models.Author{}
	for _, a := range r.s.authors {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r authorRepo) GetByID(ctx context.Context, id int) (*models.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.authors[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r authorRepo) Create(ctx context.Context, name, surname string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.FailWrites != nil {
		return 0, r.s.FailWrites
	}
	id := r.s.id("authors")
	r.s.authors[id] = models.Author{ID: id, Name: name, Surname: surname}
	return id, nil
}

func (r authorRepo) Update(ctx context.Context, id int, name, surname string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.FailWrites != nil {
		return r.s.FailWrites
	}
	if _, ok := r.s.authors[id]; ok {
		r.s.authors[id] = models.Author{ID: id, Name: name, Surname: surname}
	}
	return nil
}

func (r authorRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.FailWrites != nil {
		return r.s.FailWrites
	}
	delete(r.s.authors, id)
	// ON DELETE CASCADE
	for _, set := range r.s.links {
		delete(set, id)
	}
	return nil
}

type contentRepo struct{ s *Store }

func (r contentRepo) List(ctx context.Context, filter models.ContentFilter) ([]models.Content, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []models.Content{}
	for id, row := range r.s.contents {
		if filter.AuthorID != nil {
			if _, ok := r.s.links[id][*filter.AuthorID]; !ok {
				continue
			}
		}
		if filter.Name != nil && !strings.Contains(strings.ToLower(row.Name), strings.ToLower(*filter.Name)) {
			continue
		}
		out = append(out, r.materialize(row))
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r contentRepo) GetByID(ctx context.Context, id int) (*models.Content, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.contents[id]
	if !ok {
		return nil, nil
	}
	c := r.materialize(row)
	return &c, nil
}

func (r contentRepo) Create(ctx context.Context, in models.ContentInput) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.FailWrites != nil {
		return 0, r.s.FailWrites
	}
	if err := r.checkRefs(in); err != nil {
		return 0, err
	}

	id := r.s.id("contents")
	now := r.s.tick()
	r.s.contents[id] = contentRow{models.Content{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		MediaTypeID: in.MediaTypeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}}
	r.s.links[id] = linkSet(in.AuthorIDs)
	return id, nil
}

func (r contentRepo) Update(ctx context.Context, id int, in models.ContentInput) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.FailWrites != nil {
		return r.s.FailWrites
	}
	if err := r.checkRefs(in); err != nil {
		return err
	}

	row, ok := r.s.contents[id]
	if !ok {
		return nil
	}
	row.Name = in.Name
	row.Description = in.Description
	row.MediaTypeID = in.MediaTypeID
	row.UpdatedAt = r.s.tick()
	r.s.contents[id] = row
	r.s.links[id] = linkSet(in.AuthorIDs)
	return nil
}

func (r contentRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.FailWrites != nil {
		return r.s.FailWrites
	}
	delete(r.s.links, id)
	delete(r.s.contents, id)
	return nil
}

// checkRefs plays the part of the foreign key constraints.
func (r contentRepo) checkRefs(in models.ContentInput) error {
	if _, ok := r.s.mediaTypes[in.MediaTypeID]; !ok {
		return errors.New("foreign key constraint fails: media_type_id")
	}
	for _, a := range in.AuthorIDs {
		if _, ok := r.s.authors[a]; !ok {
			return errors.New("foreign key constraint fails: author_id")
		}
	}
	return nil
}

func (r contentRepo) materialize(row contentRow) models.Content {
	c := row.Content
	c.MediaTypeName = r.s.mediaTypes[c.MediaTypeID].Name
	c.Authors = []models.Author{}
	c.AuthorIDs = []int{}

	ids := make([]int, 0, len(r.s.links[c.ID]))
	for a := range r.s.links[c.ID] {
		ids = append(ids, a)
	}
	sort.Ints(ids)
	for _, a := range ids {
		c.Authors = append(c.Authors, r.s.authors[a])
		c.AuthorIDs = append(c.AuthorIDs, a)
	}
	return c
}

func linkSet(ids []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

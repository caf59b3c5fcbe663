package models

import "time"

type Content struct {
	ID            int       `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Description   string    `db:"description" json:"description"`
	MediaTypeID   int       `db:"media_type_id" json:"media_type_id"`
	MediaTypeName string    `db:"media_type_name" json:"media_type_name"`
	Authors       []Author  `json:"authors"`    // sorted by id, never nil
	AuthorIDs     []int     `json:"author_ids"` // same order as Authors
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// ContentInput carries the writable fields of a content item.
// AuthorIDs is treated as a set.
type ContentInput struct {
	Name        string
	Description string
	MediaTypeID int
	AuthorIDs   []int
}

// ContentFilter narrows a content listing. Nil fields are ignored;
// set fields combine with AND.
type ContentFilter struct {
	AuthorID *int
	Name     *string
}

// UniqueAuthorIDs returns AuthorIDs without repeats, keeping first-seen order.
func (in ContentInput) UniqueAuthorIDs() []int {
	seen := make(map[int]struct{}, len(in.AuthorIDs))
	out := make([]int, 0, len(in.AuthorIDs))
	for _, id := range in.AuthorIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

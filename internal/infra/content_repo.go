package infra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Vovarama1992/voci-api/internal/models"
	"github.com/Vovarama1992/voci-api/internal/ports"
)

const contentSelect = `
	SELECT c.id, c.name, c.description, c.media_type_id, mt.name, c.created_at, c.updated_at
	FROM contents c
	JOIN media_types mt ON mt.id = c.media_type_id`

type SQLContentRepo struct {
	db *DB
}

func NewContentRepo(db *DB) ports.ContentRepository {
	return &SQLContentRepo{db: db}
}

func (r *SQLContentRepo) List(ctx context.Context, filter models.ContentFilter) ([]models.Content, error) {
	var (
		where []string
		args  []any
	)

	if filter.AuthorID != nil {
		where = append(where, `EXISTS (
			SELECT 1 FROM content_authors fa
			WHERE fa.content_id = c.id AND fa.author_id = ?
		)`)
		args = append(args, *filter.AuthorID)
	}
	if filter.Name != nil {
		where = append(where, `LOWER(c.name) LIKE ?`)
		args = append(args, "%"+escapeLike(strings.ToLower(*filter.Name))+"%")
	}

	query := contentSelect
	if len(where) > 0 {
		query += "\n\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\tORDER BY c.created_at DESC, c.id DESC"

	rows, err := r.db.QueryContext(ctx, r.db.Dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}
	defer rows.Close()

	out := []models.Content{}
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}

	if err := r.attachAuthors(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLContentRepo) GetByID(ctx context.Context, id int) (*models.Content, error) {
	query := r.db.Dialect.Rebind(contentSelect + "\n\tWHERE c.id = ?")

	c, err := scanContent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	items := []models.Content{c}
	if err := r.attachAuthors(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (r *SQLContentRepo) Create(ctx context.Context, in models.ContentInput) (int, error) {
	var id int

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = r.db.Dialect.insertID(ctx, tx,
			`INSERT INTO contents (name, description, media_type_id) VALUES (?, ?, ?)`,
			in.Name, in.Description, in.MediaTypeID,
		)
		if err != nil {
			return fmt.Errorf("insert content: %w", err)
		}
		return r.insertAuthors(ctx, tx, id, in.UniqueAuthorIDs())
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *SQLContentRepo) Update(ctx context.Context, id int, in models.ContentInput) error {
	d := r.db.Dialect

	return r.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, d.Rebind(`
			UPDATE contents
			SET name = ?, description = ?, media_type_id = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?`),
			in.Name, in.Description, in.MediaTypeID, id,
		)
		if err != nil {
			return fmt.Errorf("update content: %w", err)
		}

		if _, err := tx.ExecContext(ctx, d.Rebind(`DELETE FROM content_authors WHERE content_id = ?`), id); err != nil {
			return fmt.Errorf("clear content authors: %w", err)
		}

		return r.insertAuthors(ctx, tx, id, in.UniqueAuthorIDs())
	})
}

func (r *SQLContentRepo) Delete(ctx context.Context, id int) error {
	d := r.db.Dialect

	return r.withTx(ctx, func(tx *sql.Tx) error {
		// contents -> content_authors also cascades in the schema
		if _, err := tx.ExecContext(ctx, d.Rebind(`DELETE FROM content_authors WHERE content_id = ?`), id); err != nil {
			return fmt.Errorf("delete content authors: %w", err)
		}
		if _, err := tx.ExecContext(ctx, d.Rebind(`DELETE FROM contents WHERE id = ?`), id); err != nil {
			return fmt.Errorf("delete content: %w", err)
		}
		return nil
	})
}

func (r *SQLContentRepo) insertAuthors(ctx context.Context, tx *sql.Tx, contentID int, authorIDs []int) error {
	if len(authorIDs) == 0 {
		return nil
	}

	args := make([]any, 0, len(authorIDs)*2)
	for _, a := range authorIDs {
		args = append(args, contentID, a)
	}

	query := `INSERT INTO content_authors (content_id, author_id) VALUES ` + placeholders(len(authorIDs), 2)
	if _, err := tx.ExecContext(ctx, r.db.Dialect.Rebind(query), args...); err != nil {
		return fmt.Errorf("insert content authors: %w", err)
	}
	return nil
}

// attachAuthors fills Authors and AuthorIDs for every item with one query.
func (r *SQLContentRepo) attachAuthors(ctx context.Context, items []models.Content) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]any, len(items))
	index := make(map[int]int, len(items))
	for i := range items {
		ids[i] = items[i].ID
		index[items[i].ID] = i
		items[i].Authors = []models.Author{}
		items[i].AuthorIDs = []int{}
	}

	query := r.db.Dialect.Rebind(`
		SELECT ca.content_id, a.id, a.name, a.surname
		FROM content_authors ca
		JOIN authors a ON a.id = ca.author_id
		WHERE ca.content_id IN (` + inList(len(ids)) + `)
		ORDER BY ca.content_id, a.id`)

	rows, err := r.db.QueryContext(ctx, query, ids...)
	if err != nil {
		return fmt.Errorf("load content authors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			contentID int
			a         models.Author
		)
		if err := rows.Scan(&contentID, &a.ID, &a.Name, &a.Surname); err != nil {
			return fmt.Errorf("scan content author: %w", err)
		}

		i, ok := index[contentID]
		if !ok {
			continue
		}
		items[i].Authors = append(items[i].Authors, a)
		items[i].AuthorIDs = append(items[i].AuthorIDs, a.ID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load content authors: %w", err)
	}
	return nil
}

// withTx commits when fn succeeds and rolls back on any error or panic.
func (r *SQLContentRepo) withTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContent(row rowScanner) (models.Content, error) {
	var c models.Content
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.MediaTypeID,
		&c.MediaTypeName,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, err
		}
		return c, fmt.Errorf("scan content: %w", err)
	}
	return c, nil
}

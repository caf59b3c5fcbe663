package infra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Vovarama1992/voci-api/internal/models"
	"github.com/Vovarama1992/voci-api/internal/ports"
)

type SQLMediaTypeRepo struct {
	db *DB
}

func NewMediaTypeRepo(db *DB) ports.MediaTypeRepository {
	return &SQLMediaTypeRepo{db: db}
}

func (r *SQLMediaTypeRepo) List(ctx context.Context) ([]models.MediaType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM media_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list media types: %w", err)
	}
	defer rows.Close()

	out := []models.MediaType{}
	for rows.Next() {
		var m models.MediaType
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("scan media type: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list media types: %w", err)
	}
	return out, nil
}

func (r *SQLMediaTypeRepo) GetByID(ctx context.Context, id int) (*models.MediaType, error) {
	query := r.db.Dialect.Rebind(`SELECT id, name FROM media_types WHERE id = ?`)

	var m models.MediaType
	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get media type by id: %w", err)
	}
	return &m, nil
}

func (r *SQLMediaTypeRepo) Create(ctx context.Context, name string) (int, error) {
	id, err := r.db.Dialect.insertID(ctx, r.db, `INSERT INTO media_types (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("insert media type: %w", err)
	}
	return id, nil
}

func (r *SQLMediaTypeRepo) Update(ctx context.Context, id int, name string) error {
	query := r.db.Dialect.Rebind(`UPDATE media_types SET name = ? WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, query, name, id); err != nil {
		return fmt.Errorf("update media type: %w", err)
	}
	return nil
}

func (r *SQLMediaTypeRepo) Delete(ctx context.Context, id int) error {
	query := r.db.Dialect.Rebind(`DELETE FROM media_types WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete media type: %w", err)
	}
	return nil
}

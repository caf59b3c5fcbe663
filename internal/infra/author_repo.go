package infra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Vovarama1992/voci-api/internal/models"
	"github.com/Vovarama1992/voci-api/internal/ports"
)

type SQLAuthorRepo struct {
	db *DB
}

func NewAuthorRepo(db *DB) ports.AuthorRepository {
	return &SQLAuthorRepo{db: db}
}

func (r *SQLAuthorRepo) List(ctx context.Context) ([]models.Author, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, surname FROM authors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	out := []models.Author{}
	for rows.Next() {
		var a models.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Surname); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return out, nil
}

func (r *SQLAuthorRepo) GetByID(ctx context.Context, id int) (*models.Author, error) {
	query := r.db.Dialect.Rebind(`SELECT id, name, surname FROM authors WHERE id = ?`)

	var a models.Author
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Name, &a.Surname)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get author by id: %w", err)
	}
	return &a, nil
}

func (r *SQLAuthorRepo) Create(ctx context.Context, name, surname string) (int, error) {
	id, err := r.db.Dialect.insertID(ctx, r.db,
		`INSERT INTO authors (name, surname) VALUES (?, ?)`,
		name, surname,
	)
	if err != nil {
		return 0, fmt.Errorf("insert author: %w", err)
	}
	return id, nil
}

func (r *SQLAuthorRepo) Update(ctx context.Context, id int, name, surname string) error {
	query := r.db.Dialect.Rebind(`UPDATE authors SET name = ?, surname = ? WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, query, name, surname, id); err != nil {
		return fmt.Errorf("update author: %w", err)
	}
	return nil
}

func (r *SQLAuthorRepo) Delete(ctx context.Context, id int) error {
	query := r.db.Dialect.Rebind(`DELETE FROM authors WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	return nil
}

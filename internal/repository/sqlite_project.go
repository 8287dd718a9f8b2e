package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/domain"
)

const projectColumns = `id, path, name, registered_at, last_seen_at`

// SQLiteProjectRepo implements ProjectRepo over any DBTX, so the same repo
// type serves plain connections and transactions.
type SQLiteProjectRepo struct {
	db db.DBTX
}

func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

func (r *SQLiteProjectRepo) Upsert(ctx context.Context, p *domain.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			name = excluded.name,
			last_seen_at = excluded.last_seen_at`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Path,
		p.Name,
		formatTime(p.RegisteredAt),
		formatTime(p.LastSeenAt),
	)
	if err != nil {
		return fmt.Errorf("upserting project %s: %w", p.Path, err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByPath(ctx context.Context, path string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE path = ?`, path)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", path, ErrNotFound)
	}
	return p, err
}

// List returns projects ordered by path.
func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (*domain.Project, error) {
	var p domain.Project
	var registeredAt, lastSeenAt string
	if err := s.Scan(&p.ID, &p.Path, &p.Name, &registeredAt, &lastSeenAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	var err error
	if p.RegisteredAt, err = parseTime("registered_at", registeredAt); err != nil {
		return nil, err
	}
	if p.LastSeenAt, err = parseTime("last_seen_at", lastSeenAt); err != nil {
		return nil, err
	}
	return &p, nil
}

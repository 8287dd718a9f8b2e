// Package repository persists the global project registry.
package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/tally/internal/domain"
)

var ErrNotFound = errors.New("not found")

type ProjectRepo interface {
	// Upsert inserts p or, when its path is already registered, refreshes
	// name and last_seen_at while keeping the stored ID and registered_at.
	Upsert(ctx context.Context, p *domain.Project) error
	GetByPath(ctx context.Context, path string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

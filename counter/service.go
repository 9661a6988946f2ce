package counter

import (
	"context"
	"errors"
)

// Service exposes the counter operations over a Store
type Service struct {
	store Store
}

// NewService create counter service
func NewService(store Store) (*Service, error) {
	if store == nil {
		return nil, errors.New("no store")
	}
	return &Service{store: store}, nil
}

// Store returns the backing store
func (p *Service) Store() Store {
	return p.store
}

// GetVisits returns the current visits of name without creating it
func (p *Service) GetVisits(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, ErrInvalidName
	}
	visits, err := p.store.Get(ctx, name)
	if err != nil {
		return 0, &QueryError{Op: "get", Name: name, Err: err}
	}
	return visits, nil
}

// IncrementVisits adds one visit to name and returns the new value.
// A failed increment is not retried here.
func (p *Service) IncrementVisits(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, ErrInvalidName
	}
	visits, err := p.store.Incr(ctx, name)
	if err != nil {
		return 0, &QueryError{Op: "increment", Name: name, Err: err}
	}
	return visits, nil
}

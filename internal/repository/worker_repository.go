package repository

import (
	"context"
	"fmt"

	"github.com/spec-kit/ticket-workflow/internal/domain"
)

// WorkerRepository is the fixed registry of employees and supervisors.
type WorkerRepository interface {
	FindEmployee(ctx context.Context, name string) (*domain.Worker, error)
	FindSupervisor(ctx context.Context, name string) (*domain.Worker, error)
	List(ctx context.Context, role domain.WorkerRole) []*domain.Worker
}

type workerRepository struct {
	employees   []*domain.Worker
	supervisors []*domain.Worker
}

// NewWorkerRepository builds the registry from the startup roster. Names
// must be unique within each role.
func NewWorkerRepository(employees, supervisors []string) (WorkerRepository, error) {
	r := &workerRepository{}
	var err error
	if r.employees, err = buildWorkers(employees, domain.WorkerRoleEmployee); err != nil {
		return nil, err
	}
	if r.supervisors, err = buildWorkers(supervisors, domain.WorkerRoleSupervisor); err != nil {
		return nil, err
	}
	return r, nil
}

func buildWorkers(names []string, role domain.WorkerRole) ([]*domain.Worker, error) {
	seen := make(map[string]struct{}, len(names))
	workers := make([]*domain.Worker, 0, len(names))
	for _, name := range names {
		if name == "" {
			return nil, fmt.Errorf("repository: empty %s name", role)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("repository: duplicate %s %q", role, name)
		}
		seen[name] = struct{}{}
		workers = append(workers, domain.NewWorker(name, role))
	}
	return workers, nil
}

func (r *workerRepository) FindEmployee(_ context.Context, name string) (*domain.Worker, error) {
	return findByName(r.employees, name)
}

func (r *workerRepository) FindSupervisor(_ context.Context, name string) (*domain.Worker, error) {
	return findByName(r.supervisors, name)
}

// List returns the workers of a role in roster order.
func (r *workerRepository) List(_ context.Context, role domain.WorkerRole) []*domain.Worker {
	switch role {
	case domain.WorkerRoleEmployee:
		return append([]*domain.Worker(nil), r.employees...)
	case domain.WorkerRoleSupervisor:
		return append([]*domain.Worker(nil), r.supervisors...)
	}
	return nil
}

func findByName(workers []*domain.Worker, name string) (*domain.Worker, error) {
	for _, w := range workers {
		if w.Name == name {
			return w, nil
		}
	}
	return nil, ErrNotFound
}

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-workflow/internal/domain"
)

func TestTicketRepository_SequentialIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewTicketRepository()

	for want := int64(1); want <= 3; want++ {
		ticket := domain.NewTicket(domain.TicketTypeOthers, "x")
		require.NoError(t, repo.Create(ctx, ticket))
		assert.Equal(t, want, ticket.ID)
		assert.False(t, ticket.CreatedAt.IsZero())
	}

	got, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ID)

	_, err = repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, repo.Create(ctx, nil))
	next := domain.NewTicket(domain.TicketTypeOthers, "y")
	require.NoError(t, repo.Create(ctx, next))
	assert.Equal(t, int64(4), next.ID)
}

func TestTicketRepository_QueuesAreAppendOnly(t *testing.T) {
	ctx := context.Background()
	repo := NewTicketRepository()

	a := domain.NewTicket(domain.TicketTypeOthers, "a")
	b := domain.NewTicket(domain.TicketTypeOthers, "b")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	repo.EnqueueOpen(ctx, a)
	repo.EnqueueOpen(ctx, b)
	repo.EnqueueVerification(ctx, b)

	open := repo.OpenQueue(ctx)
	require.Len(t, open, 2)
	assert.Same(t, a, open[0])
	assert.Same(t, b, open[1])

	// mutating the returned slice must not reorder the store's queue
	open[0] = b
	assert.Same(t, a, repo.OpenQueue(ctx)[0])

	verification := repo.VerificationQueue(ctx)
	require.Len(t, verification, 1)
	assert.Same(t, b, verification[0])

	assert.Len(t, repo.List(ctx), 2)
}

func TestWorkerRepository_Lookup(t *testing.T) {
	ctx := context.Background()
	repo, err := NewWorkerRepository([]string{"tom", "bob"}, []string{"sam", "neil"})
	require.NoError(t, err)

	tom, err := repo.FindEmployee(ctx, "tom")
	require.NoError(t, err)
	assert.Equal(t, domain.WorkerRoleEmployee, tom.Role)

	_, err = repo.FindEmployee(ctx, "sam")
	assert.ErrorIs(t, err, ErrNotFound)

	sam, err := repo.FindSupervisor(ctx, "sam")
	require.NoError(t, err)
	assert.Equal(t, domain.WorkerRoleSupervisor, sam.Role)

	_, err = repo.FindSupervisor(ctx, "Sam")
	assert.ErrorIs(t, err, ErrNotFound)

	employees := repo.List(ctx, domain.WorkerRoleEmployee)
	require.Len(t, employees, 2)
	assert.Equal(t, "tom", employees[0].Name)
	assert.Equal(t, "bob", employees[1].Name)
	assert.Nil(t, repo.List(ctx, domain.WorkerRole("GUEST")))
}

func TestWorkerRepository_RejectsBadRoster(t *testing.T) {
	_, err := NewWorkerRepository([]string{"tom", "tom"}, nil)
	assert.ErrorContains(t, err, "duplicate")

	_, err = NewWorkerRepository(nil, []string{""})
	assert.ErrorContains(t, err, "empty")

	// the same name may appear once per role
	_, err = NewWorkerRepository([]string{"alex"}, []string{"alex"})
	assert.NoError(t, err)
}

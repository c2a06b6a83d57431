package domain

// WorkerRole enumerates the two kinds of workers in the pool.
type WorkerRole string

const (
	WorkerRoleEmployee   WorkerRole = "EMPLOYEE"
	WorkerRoleSupervisor WorkerRole = "SUPERVISOR"
)

// Worker is an employee or supervisor holding at most one ticket.
type Worker struct {
	Name          string
	Role          WorkerRole
	CurrentTicket *Ticket
}

// NewWorker creates an idle worker.
func NewWorker(name string, role WorkerRole) *Worker {
	return &Worker{Name: name, Role: role}
}

// Idle reports whether the worker can take a new ticket.
func (w *Worker) Idle() bool {
	return w.CurrentTicket == nil
}

// Take marks t as the worker's current ticket.
func (w *Worker) Take(t *Ticket) {
	w.CurrentTicket = t
}

// Release frees the worker.
func (w *Worker) Release() {
	w.CurrentTicket = nil
}

// NameOrEmpty is safe to call on a nil worker.
func (w *Worker) NameOrEmpty() string {
	if w == nil {
		return ""
	}
	return w.Name
}

func (w *Worker) String() string {
	return w.Name
}

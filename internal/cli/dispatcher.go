package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-workflow/internal/domain"
	"github.com/spec-kit/ticket-workflow/internal/observability"
	"github.com/spec-kit/ticket-workflow/internal/service"
	apperrors "github.com/spec-kit/ticket-workflow/pkg/util/errorutil"
)

// Command verbs understood by the dispatcher.
const (
	VerbCreateTicket = "create-ticket"
	VerbStatus       = "status"
	VerbAssign       = "assign-ticket"
	VerbResolve      = "resolve-ticket"
	VerbVerify       = "verify-ticket-resolution"
	VerbExit         = "exit"
)

// Workflow is the engine surface the dispatcher drives.
type Workflow interface {
	CreateTicket(ctx context.Context, input service.TicketCreateInput) (*domain.Ticket, error)
	GetTicket(ctx context.Context, rawID string) (*domain.Ticket, error)
	Summary(ctx context.Context) domain.StatusSummary
	AssignTicket(ctx context.Context, workerName string) (*service.Assignment, error)
	ResolveTicket(ctx context.Context, employeeName, comment string) (*domain.Ticket, error)
	VerifyTicket(ctx context.Context, supervisorName string) (*domain.Ticket, error)
}

// Dispatcher turns command lines into workflow calls and prints the result.
type Dispatcher struct {
	workflow Workflow
	out      io.Writer
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// NewDispatcher constructs a dispatcher writing to out. logger and metrics
// may be nil.
func NewDispatcher(workflow Workflow, out io.Writer, logger *zap.Logger, metrics *observability.Metrics) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{workflow: workflow, out: out, logger: logger, metrics: metrics}
}

// Run reads commands line by line until "exit" or end of input.
func (d *Dispatcher) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Execute(ctx, scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// Execute runs a single command line. It returns false once the loop
// should stop.
func (d *Dispatcher) Execute(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	verb, args := fields[0], fields[1:]

	var err error
	switch verb {
	case VerbCreateTicket:
		err = d.createTicket(ctx, args)
	case VerbStatus:
		err = d.status(ctx, args)
	case VerbAssign:
		err = d.assignTicket(ctx, args)
	case VerbResolve:
		err = d.resolveTicket(ctx, args)
	case VerbVerify:
		err = d.verifyTicket(ctx, args)
	case VerbExit:
		d.printf("Program Exited")
		d.metrics.RecordCommand(verb, "ok")
		return false
	default:
		d.printf("Error! Unknown command: %s", verb)
		d.metrics.RecordCommand("unknown", apperrors.CodeValidationFailed)
		return true
	}

	outcome := "ok"
	if err != nil {
		outcome = apperrors.ToDomainError(err).Code
		d.report(verb, args, err)
	}
	d.metrics.RecordCommand(verb, outcome)
	return true
}

func (d *Dispatcher) createTicket(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return apperrors.NewInvalidTicketType("")
	}
	ticket, err := d.workflow.CreateTicket(ctx, service.TicketCreateInput{
		Type:        args[0],
		Description: strings.Join(args[1:], " "),
	})
	if err != nil {
		return err
	}
	d.printf("%d", ticket.ID)
	return nil
}

func (d *Dispatcher) status(ctx context.Context, args []string) error {
	if len(args) == 0 {
		summary := d.workflow.Summary(ctx)
		d.printf("%d - OPEN TICKETS", summary.Open)
		d.printf("%d - ASSIGNED TICKETS", summary.Assigned)
		d.printf("%d - CLOSED TICKETS", summary.Closed)
		d.printf("%d - TOTAL TICKETS", summary.Total)
		return nil
	}
	ticket, err := d.workflow.GetTicket(ctx, args[0])
	if err != nil {
		return err
	}
	d.printf("Ticket-%d status: %s comment: %s resolved_by: %s verified_by: %s",
		ticket.ID, ticket.State, ticket.Comment,
		orNone(ticket.ResolverName()), orNone(ticket.VerifierName()))
	return nil
}

func (d *Dispatcher) assignTicket(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError(VerbAssign, "<worker>")
	}
	assignment, err := d.workflow.AssignTicket(ctx, args[0])
	if err != nil {
		return err
	}
	d.printf("Ticket: %d -> %s", assignment.Ticket.ID, assignment.Worker)
	return nil
}

func (d *Dispatcher) resolveTicket(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError(VerbResolve, "<employee> [comment...]")
	}
	ticket, err := d.workflow.ResolveTicket(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	d.printf("Ticket-%d resolved by %s with comment %s", ticket.ID, args[0], ticket.Comment)
	return nil
}

func (d *Dispatcher) verifyTicket(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError(VerbVerify, "<supervisor>")
	}
	ticket, err := d.workflow.VerifyTicket(ctx, args[0])
	if err != nil {
		return err
	}
	d.printf("Ticket-%d resolution verified by supervisor %s", ticket.ID, args[0])
	return nil
}

// report prints the user-facing line for a failed command.
func (d *Dispatcher) report(verb string, args []string, err error) {
	de := apperrors.ToDomainError(err)
	d.logger.Debug("command rejected",
		zap.String("verb", verb),
		zap.Strings("args", args),
		zap.String("code", de.Code),
		zap.Error(err))

	switch de.Code {
	case apperrors.CodeInvalidTicketType:
		d.printf("Error! Invalid Ticket Type.")
	case apperrors.CodeInvalidID:
		d.printf("Error! Invalid format of ticket Id-%s", args[0])
	case apperrors.CodeTicketNotFound:
		d.printf("Error! No Ticket defined with this Id: %s", args[0])
	case apperrors.CodeNoTicketAssigned:
		d.printf("Error! %s has no ticket assigned.", args[0])
	case apperrors.CodeNoEligibleTicket:
		d.printf("No Open Tickets found for %s.", args[0])
	case apperrors.CodeValidationFailed:
		d.printf("Error! %s", de.Message)
	default:
		d.logger.Error("command failed", zap.String("verb", verb), zap.Error(err))
		d.printf("Error! %s", de.Message)
	}
}

func (d *Dispatcher) printf(format string, a ...any) {
	fmt.Fprintf(d.out, format+"\n", a...)
}

func usageError(verb, args string) error {
	return apperrors.NewValidationError(fmt.Sprintf("Usage: %s %s", verb, args), nil)
}

func orNone(name string) string {
	if name == "" {
		return "None"
	}
	return name
}

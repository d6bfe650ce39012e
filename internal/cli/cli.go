// Package cli implements the command-line interface for the task tracker.
// It parses arguments, calls the task service and renders the results; all
// business rules live below it.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"text/tabwriter"

	"github.com/veranemoloko/task-tracker/internal/config"
	"github.com/veranemoloko/task-tracker/internal/domain"
	errpkg "github.com/veranemoloko/task-tracker/internal/errors"
	"github.com/veranemoloko/task-tracker/internal/repository"
	"github.com/veranemoloko/task-tracker/internal/service"
)

const timeLayout = "2006-01-02 15:04"

const usageText = `Usage: tasktracker [-db path] <command> [arguments]

Commands:
  create <title> [-d description]        Create a new task
  list [-status todo|in_progress|done]   List tasks, optionally by status
  status <id> <status>                   Change the status of a task
  update <id> [-title t] [-description d] Update a task's details
  delete <id>                            Delete a task
  help                                   Show this help

Global flags:
  -db path   Path to the JSON file used for storage (default: ./data/tasks.json)
`

// Run executes the task tracker CLI against the given arguments, writing
// command output to out. Errors are returned for the caller to render.
func Run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("tasktracker", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { fmt.Fprint(out, usageText) }

	dbPath := fs.String("db", "", "Path to the JSON file used for storage")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *dbPath != "" {
		cfg.StorePath = *dbPath
	}
	config.SetupLogger(cfg)

	store := repository.NewTaskStore(cfg.StorePath)
	svc := service.NewTaskService(store, slog.Default())

	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprint(out, usageText)
		return errors.New("missing command")
	}
	command, rest := rest[0], rest[1:]

	switch command {
	case "create":
		return createCommand(ctx, svc, rest, out)
	case "list":
		return listCommand(ctx, svc, rest, out)
	case "status":
		return statusCommand(ctx, svc, rest, out)
	case "update":
		return updateCommand(ctx, svc, rest, out)
	case "delete":
		return deleteCommand(ctx, svc, rest, out)
	case "help":
		fmt.Fprint(out, usageText)
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func createCommand(ctx context.Context, svc *service.TaskService, args []string, out io.Writer) error {
	// title comes first so the trailing -d flag still parses
	if len(args) < 1 {
		return errors.New("usage: create <title> [-d description]")
	}
	title := args[0]

	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(out)
	description := fs.String("d", "", "Optional description")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return errors.New("usage: create <title> [-d description]")
	}

	task, err := svc.CreateTask(ctx, title, *description)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Created task with id=%d\n", task.ID)
	return nil
}

func listCommand(ctx context.Context, svc *service.TaskService, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(out)
	statusFlag := fs.String("status", "", "Filter by task status")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var filter *domain.TaskStatus
	if *statusFlag != "" {
		status, err := domain.ParseStatus(*statusFlag)
		if err != nil {
			return fmt.Errorf("%w: %v", errpkg.ErrValidation, err)
		}
		filter = &status
	}

	tasks, err := svc.ListTasks(ctx, filter)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found.")
		return nil
	}

	renderTable(out, tasks)
	return nil
}

func statusCommand(ctx context.Context, svc *service.TaskService, args []string, out io.Writer) error {
	if len(args) != 2 {
		return errors.New("usage: status <id> <status>")
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	status, err := domain.ParseStatus(args[1])
	if err != nil {
		return fmt.Errorf("%w: %v", errpkg.ErrValidation, err)
	}

	task, err := svc.ChangeStatus(ctx, id, status)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Updated task id=%d to status %s\n", task.ID, task.Status)
	return nil
}

func updateCommand(ctx context.Context, svc *service.TaskService, args []string, out io.Writer) error {
	if len(args) < 1 {
		return errors.New("usage: update <id> [-title t] [-description d]")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(out)
	title := fs.String("title", "", "New title")
	description := fs.String("description", "", "New description")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return errors.New("usage: update <id> [-title t] [-description d]")
	}

	// Only flags explicitly set become part of the patch; an unset flag
	// leaves the field untouched.
	var patch domain.TaskPatch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			patch.Title = title
		case "description":
			patch.Description = description
		}
	})
	if patch.Title == nil && patch.Description == nil {
		return errors.New("usage: update <id> [-title t] [-description d]")
	}

	task, err := svc.UpdateDetails(ctx, id, patch)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Updated task id=%d\n", task.ID)
	return nil
}

func deleteCommand(ctx context.Context, svc *service.TaskService, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: delete <id>")
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := svc.DeleteTask(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(out, "Deleted task with id=%d\n", id)
	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid task id %q", errpkg.ErrValidation, raw)
	}
	return id, nil
}

func renderTable(out io.Writer, tasks []domain.Task) {
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tCREATED\tUPDATED")
	for _, task := range tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			task.ID,
			task.Title,
			task.Status,
			task.CreatedAt.Format(timeLayout),
			task.UpdatedAt.Format(timeLayout),
		)
	}
	_ = w.Flush()
}

// FormatError renders a domain failure as a user-facing message. This is the
// only place error text is formatted.
func FormatError(err error) string {
	var storageErr *errpkg.StorageError
	switch {
	case errors.Is(err, errpkg.ErrValidation):
		return fmt.Sprintf("Validation error: %v", err)
	case errors.Is(err, errpkg.ErrTaskNotFound):
		return fmt.Sprintf("Error: %v", err)
	case errors.As(err, &storageErr):
		return fmt.Sprintf("Storage error: %v", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

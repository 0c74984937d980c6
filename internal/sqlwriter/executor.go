package sqlwriter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Executor applies a rendered SQL artifact to a database
type Executor interface {
	Execute(ctx context.Context, path string, statements []string) error
}

// CommandExecutor runs an external database tool against the written file,
// e.g. "npx wrangler d1 execute <db> --local --file=<path>".
type CommandExecutor struct {
	tool   []string
	dbName string
	dir    string
	stdout io.Writer
	stderr io.Writer
}

// NewCommandExecutor splits tool on whitespace. The child inherits the
// process's standard streams.
func NewCommandExecutor(tool, dbName string) (*CommandExecutor, error) {
	fields := strings.Fields(tool)
	if len(fields) == 0 {
		return nil, fmt.Errorf("database tool command is empty")
	}
	return &CommandExecutor{
		tool:   fields,
		dbName: dbName,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}, nil
}

// Execute blocks until the tool exits; a non-zero exit is returned as an error
func (e *CommandExecutor) Execute(ctx context.Context, path string, _ []string) error {
	args := append([]string{}, e.tool[1:]...)
	if e.dbName != "" {
		args = append(args, e.dbName)
	}
	args = append(args, "--local", "--file="+path)

	cmd := exec.CommandContext(ctx, e.tool[0], args...)
	cmd.Dir = e.dir
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", strings.Join(cmd.Args, " "), err)
	}
	return nil
}

// DBExecutor applies each batch statement through database/sql. A failing
// batch is logged and the remaining batches still run.
type DBExecutor struct {
	db  *sql.DB
	log *logrus.Logger
}

// NewDBExecutor initializes a new executor over an open database
func NewDBExecutor(db *sql.DB, log *logrus.Logger) *DBExecutor {
	return &DBExecutor{db: db, log: log}
}

func (e *DBExecutor) Execute(ctx context.Context, _ string, statements []string) error {
	var errs []error
	for i, stmt := range statements {
		res, err := e.db.ExecContext(ctx, stmt)
		if err != nil {
			e.log.Errorf("Batch %d/%d failed: %v", i+1, len(statements), err)
			errs = append(errs, fmt.Errorf("batch %d: %w", i+1, err))
			continue
		}
		if n, err := res.RowsAffected(); err == nil {
			e.log.Debugf("Batch %d/%d inserted %d rows", i+1, len(statements), n)
		}
	}
	return errors.Join(errs...)
}

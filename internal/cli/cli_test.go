package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errpkg "github.com/veranemoloko/task-tracker/internal/errors"
)

func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := Run(context.Background(), append([]string{"-db", db}, args...), &out)
	return out.String(), err
}

func TestRun_Lifecycle(t *testing.T) {
	db := t.TempDir() + "/tasks.json"

	out, err := run(t, db, "create", "Learn Go", "-d", "read the tour")
	require.NoError(t, err)
	assert.Contains(t, out, "Created task with id=1")

	out, err = run(t, db, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Learn Go")
	assert.Contains(t, out, "todo")

	out, err = run(t, db, "status", "1", "done")
	require.NoError(t, err)
	assert.Contains(t, out, "status done")

	out, err = run(t, db, "list", "-status", "done")
	require.NoError(t, err)
	assert.Contains(t, out, "Learn Go")

	out, err = run(t, db, "list", "-status", "todo")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks found.")

	out, err = run(t, db, "update", "1", "-title", "Learn Go well")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated task id=1")

	out, err = run(t, db, "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted task with id=1")

	out, err = run(t, db, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks found.")
}

func TestRun_ValidationFailures(t *testing.T) {
	db := t.TempDir() + "/tasks.json"

	_, err := run(t, db, "create", "   ")
	assert.ErrorIs(t, err, errpkg.ErrValidation)

	_, err = run(t, db, "status", "1", "bogus")
	assert.ErrorIs(t, err, errpkg.ErrValidation)

	_, err = run(t, db, "delete", "zero")
	assert.ErrorIs(t, err, errpkg.ErrValidation)

	_, err = run(t, db, "list", "-status", "bogus")
	assert.ErrorIs(t, err, errpkg.ErrValidation)
}

func TestRun_NotFound(t *testing.T) {
	db := t.TempDir() + "/tasks.json"

	_, err := run(t, db, "status", "7", "done")
	assert.ErrorIs(t, err, errpkg.ErrTaskNotFound)

	_, err = run(t, db, "delete", "7")
	assert.ErrorIs(t, err, errpkg.ErrTaskNotFound)
}

func TestRun_UnknownCommand(t *testing.T) {
	db := t.TempDir() + "/tasks.json"

	_, err := run(t, db, "frobnicate")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unknown command"))
}

func TestFormatError(t *testing.T) {
	assert.True(t, strings.HasPrefix(FormatError(errpkg.ErrValidation), "Validation error:"))
	assert.True(t, strings.HasPrefix(FormatError(errpkg.ErrTaskNotFound), "Error:"))

	storageErr := errpkg.NewStorageError("read", "tasks.json", assert.AnError)
	assert.True(t, strings.HasPrefix(FormatError(storageErr), "Storage error:"))
}

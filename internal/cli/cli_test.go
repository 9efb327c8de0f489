package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/orgchart/pkg/types"
)

// testEnv runs orgchart invocations against an isolated config and data
// directory.
type testEnv struct {
	t   *testing.T
	dir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("ORGCHART_CONFIG_DIR", "")
	t.Setenv("ORGCHART_DATA_DIR", "")
	return &testEnv{t: t, dir: t.TempDir()}
}

func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	base := []string{
		"--config-dir", filepath.Join(e.dir, "config"),
		"--data-dir", filepath.Join(e.dir, "data"),
		"--env-file", "",
	}
	var out, errOut bytes.Buffer
	err := run(context.Background(), append(base, args...), &out, &errOut)
	return out.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, "orgchart %s", strings.Join(args, " "))
	return out
}

// mustCreate runs an add command with JSON output and returns the new id.
func (e *testEnv) mustCreate(args ...string) int64 {
	e.t.Helper()
	out := e.mustRun(append(args, "--output", "json")...)
	var res types.InsertResult
	require.NoError(e.t, json.Unmarshal([]byte(out), &res), out)
	require.Positive(e.t, res.ID)
	return res.ID
}

func id(n int64) string { return strconv.FormatInt(n, 10) }

type seeded struct {
	eng, sales      int64
	lead, dev, rep  int64
	ada, grace, sam int64
}

func (e *testEnv) seed() seeded {
	var s seeded
	s.eng = e.mustCreate("department", "add", "Engineering")
	s.sales = e.mustCreate("department", "add", "Sales")
	s.lead = e.mustCreate("role", "add", "--title", "Lead", "--salary", "75000", "--department", id(s.eng))
	s.dev = e.mustCreate("role", "add", "--title", "Engineer", "--salary", "50000", "--department", id(s.eng))
	s.rep = e.mustCreate("role", "add", "--title", "Account Rep", "--salary", "40000", "--department", id(s.sales))
	s.ada = e.mustCreate("employee", "add", "--first", "Ada", "--last", "Lovelace", "--role", id(s.lead))
	s.grace = e.mustCreate("employee", "add", "--first", "Grace", "--last", "Hopper", "--role", id(s.dev), "--manager", id(s.ada))
	s.sam = e.mustCreate("employee", "add", "--first", "Sam", "--last", "Rivera", "--role", id(s.rep))
	return s
}

func TestVersion(t *testing.T) {
	e := newTestEnv(t)
	out := e.mustRun("version")
	assert.Contains(t, out, "orgchart v"+Version)
	assert.NoFileExists(t, filepath.Join(e.dir, "config", "config.yaml"), "version skips configuration")
}

func TestInit(t *testing.T) {
	e := newTestEnv(t)

	out := e.mustRun("init")
	assert.Contains(t, out, "orgchart initialized (sqlite store)")
	assert.FileExists(t, filepath.Join(e.dir, "config", "config.yaml"))
	assert.FileExists(t, filepath.Join(e.dir, "data", "orgchart.db"))

	// Idempotent.
	e.mustRun("init")
}

func TestDepartmentCommands(t *testing.T) {
	e := newTestEnv(t)

	out := e.mustRun("department", "add", "O'Brien & Co.")
	assert.Equal(t, "Created department 1.\n", out)

	out = e.mustRun("department", "list")
	assert.Contains(t, out, "All Departments")
	assert.Contains(t, out, "O'Brien & Co.")

	out = e.mustRun("department", "update", "1", "Research")
	assert.Equal(t, "Updated department 1.\n", out)

	out = e.mustRun("department", "list", "--ids", "--output", "yaml")
	var rows []types.DepartmentRow
	require.NoError(t, yaml.Unmarshal([]byte(out), &rows))
	assert.Equal(t, []types.DepartmentRow{{ID: 1, Name: "Research"}}, rows)

	out = e.mustRun("department", "delete", "1")
	assert.Equal(t, "Deleted department 1.\n", out)

	out = e.mustRun("department", "list")
	assert.Contains(t, out, "(no rows)")
}

func TestBudgetsAndMembers(t *testing.T) {
	e := newTestEnv(t)
	s := e.seed()
	e.mustCreate("department", "add", "Facilities")

	out := e.mustRun("department", "budgets")
	assert.Contains(t, out, "$125,000.00")
	assert.Contains(t, out, "$40,000.00")
	assert.Contains(t, out, "$0.00")

	out = e.mustRun("department", "members", id(s.eng))
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "Grace Hopper")
	assert.NotContains(t, out, "Sam Rivera")
}

func TestEmployeeList(t *testing.T) {
	e := newTestEnv(t)
	s := e.seed()

	out := e.mustRun("employee", "list", "--ids", "--with-manager", "--output", "json")
	var rows []types.EmployeeRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)
	for _, r := range rows {
		if r.ID == s.grace {
			require.NotNil(t, r.ManagerName)
			assert.Equal(t, "Ada Lovelace", *r.ManagerName)
		} else {
			assert.Nil(t, r.ManagerName)
		}
	}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "by department", args: []string{"--department", id(s.sales)}, want: []string{"Sam"}},
		{name: "by role", args: []string{"--role", id(s.dev)}, want: []string{"Grace"}},
		{name: "by manager", args: []string{"--manager", id(s.ada)}, want: []string{"Grace"}},
		{name: "combined", args: []string{"--department", id(s.eng), "--role", id(s.lead)}, want: []string{"Ada"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := e.mustRun(append([]string{"employee", "list", "--output", "json"}, tt.args...)...)
			var rows []types.EmployeeRow
			require.NoError(t, json.Unmarshal([]byte(out), &rows))
			var got []string
			for _, r := range rows {
				got = append(got, r.FirstName)
			}
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestEmployeeManagersAndUpdate(t *testing.T) {
	e := newTestEnv(t)
	s := e.seed()

	out := e.mustRun("employee", "managers", "--output", "json")
	var managers []types.ManagerRow
	require.NoError(t, json.Unmarshal([]byte(out), &managers))
	assert.Len(t, managers, 2)

	e.mustRun("employee", "update", id(s.sam), "--first", "Sam", "--last", "Rivera", "--role", id(s.rep), "--manager", id(s.ada))

	out = e.mustRun("employee", "managers", "--department", id(s.sales))
	assert.Contains(t, out, "(no rows)")

	_, err := e.run("employee", "update", id(s.ada), "--first", "Ada", "--last", "Lovelace", "--role", id(s.lead), "--manager", id(s.grace))
	assert.ErrorIs(t, err, types.ErrInvalidArgument, "cycle through grace")
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestGet(t *testing.T) {
	e := newTestEnv(t)
	s := e.seed()

	out := e.mustRun("employee", "get", id(s.grace), "--output", "json")
	var emp types.Employee
	require.NoError(t, json.Unmarshal([]byte(out), &emp), out)
	assert.Equal(t, "Grace Hopper", emp.FullName())
	assert.Equal(t, s.dev, emp.RoleID)
	require.NotNil(t, emp.ManagerID)
	assert.Equal(t, s.ada, *emp.ManagerID)

	out = e.mustRun("department", "get", id(s.sales))
	var dept types.Department
	require.NoError(t, yaml.Unmarshal([]byte(out), &dept), out)
	assert.Equal(t, types.Department{ID: s.sales, Name: "Sales"}, dept)

	out = e.mustRun("role", "get", id(s.rep), "--output", "json")
	assert.Contains(t, out, `"title": "Account Rep"`)

	_, err := e.run("employee", "get", "999")
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestErrors(t *testing.T) {
	e := newTestEnv(t)
	s := e.seed()

	tests := []struct {
		name     string
		args     []string
		wantErr  error
		wantCode int
	}{
		{name: "update missing department", args: []string{"department", "update", "99", "Ghost"}, wantErr: types.ErrNotFound, wantCode: exitUserError},
		{name: "delete missing employee", args: []string{"employee", "delete", "99"}, wantErr: types.ErrNotFound, wantCode: exitUserError},
		{name: "delete referenced department", args: []string{"department", "delete", id(s.eng)}, wantErr: types.ErrConstraintViolation, wantCode: exitUserError},
		{name: "unknown role", args: []string{"employee", "add", "--first", "X", "--last", "Y", "--role", "99"}, wantErr: types.ErrConstraintViolation, wantCode: exitUserError},
		{name: "bad id", args: []string{"role", "delete", "abc"}, wantErr: types.ErrInvalidArgument, wantCode: exitUserError},
		{name: "bad salary", args: []string{"role", "add", "--title", "T", "--salary", "lots", "--department", id(s.eng)}, wantErr: types.ErrInvalidArgument, wantCode: exitUserError},
		{name: "generic delete unknown table", args: []string{"delete", "users", "1"}, wantErr: types.ErrInvalidArgument, wantCode: exitUserError},
		{name: "bad output format", args: []string{"department", "list", "--output", "csv"}, wantErr: types.ErrInvalidArgument, wantCode: exitUserError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.run(tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantCode, exitCode(err))
		})
	}
}

func TestInvalidConfigIsUserError(t *testing.T) {
	e := newTestEnv(t)
	configDir := filepath.Join(e.dir, "config")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("store:\n  driver: oracle\n"), 0o644))

	_, err := e.run("department", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestGenericDelete(t *testing.T) {
	e := newTestEnv(t)
	s := e.seed()

	out := e.mustRun("delete", "employee", id(s.sam))
	assert.Equal(t, fmt.Sprintf("Deleted employee %d.\n", s.sam), out)

	out = e.mustRun("delete", "roles", id(s.rep), "--output", "json")
	assert.JSONEq(t, fmt.Sprintf(`{"id": %d, "rows_affected": 1}`, s.rep), out)
}

func TestUsageErrors(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.run("department", "add")
	assert.Equal(t, exitUserError, exitCode(err))

	_, err = e.run("frobnicate")
	assert.Equal(t, exitUserError, exitCode(err))

	_, err = e.run("--no-such-flag", "version")
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", want: exitSuccess},
		{name: "not found", err: fmt.Errorf("role 3: %w", types.ErrNotFound), want: exitUserError},
		{name: "connection", err: &types.Error{Op: "open store", Code: types.CodeConnection}, want: exitSysError},
		{name: "internal", err: errors.New("disk full"), want: exitSysError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

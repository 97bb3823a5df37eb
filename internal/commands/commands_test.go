package commands_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"taskman/internal/api"
	"taskman/internal/commands"
	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/logging"
	"taskman/internal/session"
	"taskman/internal/testutil"
)

type runOpts struct {
	quiet   bool
	session *session.Store
	in      io.Reader
}

// runCommand runs a command against FakeService with bob logged in unless
// opts.session says otherwise.
func runCommand(t *testing.T, cmd commands.Command, svc *testutil.FakeService, args []string, opts runOpts) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	store := opts.session
	if store == nil {
		store = session.NewMemoryStore("bob")
	}
	env := &commands.Env{
		Config:  &config.Config{Dir: t.TempDir(), Quiet: opts.quiet},
		Session: store,
		Logger:  logging.Discard(),
		In:      opts.in,
		Out:     &outBuf,
		ErrOut:  &errBuf,
	}
	if svc != nil {
		env.Client = api.New(svc, store, nil)
	}

	code = cmd.Run(context.Background(), env, args)
	return outBuf.String(), errBuf.String(), code
}

func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, runOpts{})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskman 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

func TestHelpCommand(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.HelpCmd{}, nil, nil, runOpts{})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	for _, want := range []string{"Usage:", "login [--remember] <username>", "rm [--yes] <n>", "(also: create)", "--server <url>"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output should contain %q:\n%s", want, stdout)
		}
	}
}

func TestHelpCommand_CustomRegistry(t *testing.T) {
	reg := commands.NewRegistry()
	if err := reg.Register(&commands.VersionCmd{}); err != nil {
		t.Fatal(err)
	}
	stdout, _, _ := runCommand(t, &commands.HelpCmd{Registry: reg}, nil, nil, runOpts{})
	if strings.Contains(stdout, "login") {
		t.Errorf("expected only registered commands, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "version") {
		t.Errorf("expected version listed, got:\n%s", stdout)
	}
}

func TestRegistry_DuplicateAlias(t *testing.T) {
	reg := commands.NewRegistry()
	if err := reg.Register(&commands.AddCmd{}); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(&commands.AddCmd{}); err == nil {
		t.Error("expected duplicate registration to fail")
	}
	if cmd, ok := reg.Find("create"); !ok || cmd.Name() != "add" {
		t.Error("expected create to resolve to add")
	}
}

func TestLoginCommand_Success(t *testing.T) {
	svc := testutil.NewFakeService()
	store := session.NewMemoryStore("")

	stdout, stderr, code := runCommand(t, &commands.LoginCmd{}, svc, []string{"bob_42"}, runOpts{session: store})

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d: %s", code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected ok, got %q", stdout)
	}
	if name, ok := store.Username(); !ok || name != "bob_42" {
		t.Errorf("expected session bob_42, got %q", name)
	}
	if !svc.HasUser("bob_42") {
		t.Error("expected login call")
	}
}

func TestLoginCommand_InvalidUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  string
	}{
		{"too short", "ab", "error: Username must be at least 3 characters long\n"},
		{"too long", strings.Repeat("a", 21), "error: Username must be at most 20 characters long\n"},
		{"bad chars", "bob!", "error: Username can only contain letters, numbers, and underscores\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewFakeService()
			store := session.NewMemoryStore("")

			_, stderr, code := runCommand(t, &commands.LoginCmd{}, svc, []string{tt.username}, runOpts{session: store})

			if code != exitcode.UserError {
				t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
			}
			if stderr != tt.wantErr {
				t.Errorf("expected %q, got %q", tt.wantErr, stderr)
			}
			if svc.TotalCalls() != 0 {
				t.Errorf("expected no API calls, got %d", svc.TotalCalls())
			}
			if _, ok := store.Username(); ok {
				t.Error("expected no session")
			}
		})
	}
}

func TestLoginCommand_ServerUnreachable(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.LoginErr = testutil.ErrUnreachable
	store := session.NewMemoryStore("")

	_, stderr, code := runCommand(t, &commands.LoginCmd{}, svc, []string{"bob_42"}, runOpts{session: store})

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !strings.Contains(stderr, "No response from server") {
		t.Errorf("expected network message, got %q", stderr)
	}
	if _, ok := store.Username(); ok {
		t.Error("expected no session after failed login")
	}
}

func TestLogoutCommand(t *testing.T) {
	store := session.NewMemoryStore("bob")

	stdout, _, code := runCommand(t, &commands.LogoutCmd{}, nil, nil, runOpts{session: store})

	if code != exitcode.Success || stdout != "ok\n" {
		t.Errorf("expected ok, got %d %q", code, stdout)
	}
	if _, ok := store.Username(); ok {
		t.Error("expected session cleared")
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.LogoutCmd{}, nil, nil, runOpts{session: session.NewMemoryStore("")})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "not logged in\n" {
		t.Errorf("expected 'not logged in', got %q", stdout)
	}
}

func TestLogoutCommand_NotLoggedInQuiet(t *testing.T) {
	stdout, _, _ := runCommand(t, &commands.LogoutCmd{}, nil, nil, runOpts{session: session.NewMemoryStore(""), quiet: true})
	if stdout != "" {
		t.Errorf("expected no output, got %q", stdout)
	}
}

func TestWhoamiCommand(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.WhoamiCmd{}, nil, nil, runOpts{})
	if code != exitcode.Success || stdout != "bob\n" {
		t.Errorf("expected bob, got %d %q", code, stdout)
	}
}

func TestListCommand_WithTasks(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Buy milk", "bob")
	id := svc.AddTask("t2", "Buy eggs", "bob")
	svc.AddTask("t3", "Alice's task", "alice")
	if _, err := svc.CompleteTask(context.Background(), id); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, svc, nil, runOpts{})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "   1  [ ] Buy milk\n   2  [x] Buy eggs\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_Empty(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ListCmd{}, testutil.NewFakeService(), nil, runOpts{})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("expected 'no tasks found', got %q", stdout)
	}
}

func TestListCommand_EmptyQuiet(t *testing.T) {
	stdout, _, _ := runCommand(t, &commands.ListCmd{}, testutil.NewFakeService(), nil, runOpts{quiet: true})
	if stdout != "" {
		t.Errorf("expected no output, got %q", stdout)
	}
}

func TestListCommand_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListErr = testutil.ErrUnreachable

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, svc, nil, runOpts{})

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: No response from server. Please check your connection.\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestAddCommand_Success(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"Buy", "milk"}, runOpts{})

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d: %s", code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected ok, got %q", stdout)
	}
	tasks, _ := svc.ListTasks(context.Background(), "bob")
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" || tasks[0].Completed {
		t.Errorf("expected created task, got %+v", tasks)
	}
}

func TestAddCommand_Quiet(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.AddCmd{}, testutil.NewFakeService(), []string{"Buy milk"}, runOpts{quiet: true})
	if code != exitcode.Success || stdout != "" {
		t.Errorf("expected silent success, got %d %q", code, stdout)
	}
}

func TestAddCommand_InvalidTitle(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no title", nil, "error: title required\n"},
		{"blank", []string{"   "}, "error: Task title is required\n"},
		{"too short", []string{"ab"}, "error: Task title must be at least 3 characters long\n"},
		{"too long", []string{strings.Repeat("x", 101)}, "error: Task title must be at most 100 characters long\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewFakeService()
			_, stderr, code := runCommand(t, &commands.AddCmd{}, svc, tt.args, runOpts{})

			if code != exitcode.UserError {
				t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
			}
			if stderr != tt.wantErr {
				t.Errorf("expected %q, got %q", tt.wantErr, stderr)
			}
			if svc.TotalCalls() != 0 {
				t.Errorf("expected no API calls, got %d", svc.TotalCalls())
			}
		})
	}
}

func TestEditCommand_Success(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Old title", "bob")

	_, stderr, code := runCommand(t, &commands.EditCmd{}, svc, []string{"1", "New", "title"}, runOpts{})

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d: %s", code, stderr)
	}
	task, _ := svc.Task("t1")
	if task.Title != "New title" || task.Completed {
		t.Errorf("unexpected task after edit: %+v", task)
	}
}

func TestEditCommand_EmptyTitleLeavesTaskUnchanged(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Keep me", "bob")

	_, stderr, code := runCommand(t, &commands.EditCmd{}, svc, []string{"1", " "}, runOpts{})

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: Task title is required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if svc.Calls("UpdateTask") != 0 {
		t.Error("expected no update call")
	}
	if task, _ := svc.Task("t1"); task.Title != "Keep me" {
		t.Errorf("expected title unchanged, got %q", task.Title)
	}
}

func TestDoneCommand_Success(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Buy milk", "bob")
	svc.AddTask("t2", "Buy eggs", "bob")

	stdout, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"2"}, runOpts{})

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d: %s", code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected ok, got %q", stdout)
	}
	if task, _ := svc.Task("t2"); !task.Completed {
		t.Error("expected t2 completed")
	}
	if task, _ := svc.Task("t1"); task.Completed {
		t.Error("expected t1 untouched")
	}
}

func TestDoneCommand_AlreadyCompleted(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Buy milk", "bob")
	if _, err := svc.CompleteTask(context.Background(), "t1"); err != nil {
		t.Fatal(err)
	}

	stdout, _, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"1"}, runOpts{})

	if code != exitcode.Success || stdout != "already completed\n" {
		t.Errorf("expected no-op, got %d %q", code, stdout)
	}
	if svc.Calls("CompleteTask") != 1 {
		t.Errorf("expected no further complete call, got %d", svc.Calls("CompleteTask"))
	}
}

func TestDoneCommand_NoRef(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.DoneCmd{}, testutil.NewFakeService(), nil, runOpts{})

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task number required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDoneCommand_InvalidRef(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.DoneCmd{}, testutil.NewFakeService(), []string{"abc"}, runOpts{})

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid task number: abc\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDoneCommand_OutOfRange(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Buy milk", "bob")

	_, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"5"}, runOpts{})

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task number out of range: 5\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if svc.Calls("CompleteTask") != 0 {
		t.Error("expected no complete call")
	}
}

func TestDoneCommand_ServerError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Buy milk", "bob")
	svc.CompleteErr = testutil.ErrNotFound

	_, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"1"}, runOpts{})

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: Task not found\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestReopenCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Buy milk", "bob")
	if _, err := svc.CompleteTask(context.Background(), "t1"); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := runCommand(t, &commands.ReopenCmd{}, svc, []string{"1"}, runOpts{})

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d: %s", code, stderr)
	}
	task, _ := svc.Task("t1")
	if task.Completed || task.Title != "Buy milk" {
		t.Errorf("expected pending task with same title, got %+v", task)
	}
}

func TestReopenCommand_AlreadyPending(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Buy milk", "bob")

	stdout, _, code := runCommand(t, &commands.ReopenCmd{}, svc, []string{"1"}, runOpts{})

	if code != exitcode.Success || stdout != "already pending\n" {
		t.Errorf("expected no-op, got %d %q", code, stdout)
	}
	if svc.Calls("UpdateTask") != 0 {
		t.Error("expected no update call")
	}
}

func TestRmCommand_Yes(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Buy milk", "bob")
	svc.AddTask("t2", "Buy eggs", "bob")

	cmd := &commands.RmCmd{}
	cmd.SetYes(true)
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"1"}, runOpts{})

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d: %s", code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected ok, got %q", stdout)
	}
	tasks, _ := svc.ListTasks(context.Background(), "bob")
	if len(tasks) != 1 || tasks[0].ID != "t2" {
		t.Errorf("expected only t2 left, got %+v", tasks)
	}
}

func TestRmCommand_Prompt(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantDeleted bool
		wantOut     string
	}{
		{"yes", "y\n", true, "ok\n"},
		{"yes word", "YES\n", true, "ok\n"},
		{"no", "n\n", false, "cancelled\n"},
		{"empty", "\n", false, "cancelled\n"},
		{"eof", "", false, "cancelled\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewFakeService()
			svc.AddTask("t1", "Buy milk", "bob")

			stdout, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"1"}, runOpts{in: strings.NewReader(tt.input)})

			if code != exitcode.Success {
				t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
			}
			if stdout != tt.wantOut {
				t.Errorf("expected %q, got %q", tt.wantOut, stdout)
			}
			if !strings.Contains(stderr, `delete "Buy milk"? [y/N]`) {
				t.Errorf("expected prompt, got %q", stderr)
			}
			_, exists := svc.Task("t1")
			if exists == tt.wantDeleted {
				t.Errorf("expected deleted=%v", tt.wantDeleted)
			}
		})
	}
}

func TestRmCommand_NoRef(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.RmCmd{}, testutil.NewFakeService(), nil, runOpts{})

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task number required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

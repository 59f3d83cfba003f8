package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Course(ctx context.Context) error   { return f.record("course") }
func (f *fakeExec) Thread(ctx context.Context) error   { return f.record("thread") }
func (f *fakeExec) List(ctx context.Context) error     { return f.record("list") }
func (f *fakeExec) Refresh(ctx context.Context) error  { return f.record("refresh") }
func (f *fakeExec) Add(ctx context.Context) error      { return f.record("add") }
func (f *fakeExec) Remove(ctx context.Context) error   { return f.record("remove") }
func (f *fakeExec) Pending(ctx context.Context) error  { return f.record("pending") }
func (f *fakeExec) Commit(ctx context.Context) error   { return f.record("commit") }
func (f *fakeExec) CheckIn(ctx context.Context) error  { return f.record("checkin") }
func (f *fakeExec) CheckOut(ctx context.Context) error { return f.record("checkout") }
func (f *fakeExec) Delete(ctx context.Context) error   { return f.record("delete") }
func (f *fakeExec) Show(ctx context.Context) error     { return f.record("show") }
func (f *fakeExec) Ask(ctx context.Context) error      { return f.record("ask") }
func (f *fakeExec) Watch(ctx context.Context) error    { return f.record("watch") }

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"course",
		"add",
		"l",
		"commit",
		"checkin",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "course", "add", "list", "commit", "checkin"}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_EmptyLinesAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("\n  \nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

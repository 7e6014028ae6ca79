package cluster

import (
	"context"
	"os/exec"
	"strings"

	"testing"

	"intelligent-cd/internal/application/port/output"
)

type stubRunner struct {
	stdout string
	stderr string
	err    error

	gotStdin string
	gotArgs  []string
}

func (s *stubRunner) Run(ctx context.Context, stdin string, args ...string) (string, string, error) {
	s.gotStdin = stdin
	s.gotArgs = args
	return s.stdout, s.stderr, s.err
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any)                 {}
func (nopLogger) Info(msg string, args ...any)                  {}
func (nopLogger) Warn(msg string, args ...any)                  {}
func (nopLogger) Error(msg string, args ...any)                 {}
func (n nopLogger) WithField(string, any) output.LoggerPort     { return n }
func (n nopLogger) WithFields(map[string]any) output.LoggerPort { return n }
func (nopLogger) Close() error                                  { return nil }

func newTestClient(runner Runner) *Client {
	return &Client{runner: runner, logger: nopLogger{}}
}

func TestApply_PipesManifestToStdin(t *testing.T) {
	runner := &stubRunner{stdout: "deployment.apps/nginx created\n"}
	client := newTestClient(runner)

	out, err := client.Apply(context.Background(), "demo", "kind: Deployment\n")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if out != "deployment.apps/nginx created" {
		t.Errorf("Expected trimmed output, got %q", out)
	}
	if runner.gotStdin != "kind: Deployment\n" {
		t.Errorf("Expected manifest on stdin, got %q", runner.gotStdin)
	}
	want := "apply -n demo -f -"
	if got := strings.Join(runner.gotArgs, " "); got != want {
		t.Errorf("Expected args %q, got %q", want, got)
	}
}

func TestApplyClusterScoped_OmitsNamespace(t *testing.T) {
	runner := &stubRunner{stdout: "created"}
	client := newTestClient(runner)

	if _, err := client.ApplyClusterScoped(context.Background(), "kind: Namespace\n"); err != nil {
		t.Fatalf("ApplyClusterScoped failed: %v", err)
	}
	for _, arg := range runner.gotArgs {
		if arg == "-n" {
			t.Error("Expected no namespace flag for cluster-scoped apply")
		}
	}
}

func TestDeleteNamespace_IgnoresNotFound(t *testing.T) {
	runner := &stubRunner{stdout: "namespace \"demo\" deleted"}
	client := newTestClient(runner)

	if _, err := client.DeleteNamespace(context.Background(), "demo"); err != nil {
		t.Fatalf("DeleteNamespace failed: %v", err)
	}
	found := false
	for _, arg := range runner.gotArgs {
		if arg == "--ignore-not-found=true" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected --ignore-not-found flag, got %v", runner.gotArgs)
	}
}

func TestRun_CombinesStderrIntoOutput(t *testing.T) {
	runner := &stubRunner{
		stdout: "deployment.apps/nginx created\n",
		stderr: "Warning: resource is missing the managed-by annotation\n",
	}
	client := newTestClient(runner)

	out, err := client.Apply(context.Background(), "demo", "kind: Deployment")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !strings.Contains(out, "nginx created") || !strings.Contains(out, "Warning:") {
		t.Errorf("Expected stdout and stderr combined, got %q", out)
	}
}

func TestRun_BinaryMissing(t *testing.T) {
	runner := &stubRunner{err: &exec.Error{Name: "kubectl", Err: exec.ErrNotFound}}
	client := newTestClient(runner)

	_, err := client.Apply(context.Background(), "demo", "kind: Deployment")
	if err == nil {
		t.Fatal("Expected error when binary is missing")
	}
	if !strings.Contains(err.Error(), "kubectl binary not found") {
		t.Errorf("Expected binary-missing error, got %v", err)
	}
}

func TestRun_NonzeroExitWrapsStderr(t *testing.T) {
	runner := &stubRunner{
		stderr: "error validating data: unknown field \"replicsa\"\n",
		err:    &exec.ExitError{},
	}
	client := newTestClient(runner)

	_, err := client.Apply(context.Background(), "demo", "kind: Deployment")
	if err == nil {
		t.Fatal("Expected error for nonzero exit")
	}
	if !strings.Contains(err.Error(), "unknown field") {
		t.Errorf("Expected stderr detail in error, got %v", err)
	}
}

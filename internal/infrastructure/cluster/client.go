package cluster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"intelligent-cd/internal/application/port/output"
)

var _ output.ClusterPort = (*Client)(nil)

// Runner executes a single kubectl invocation. Split out so tests can stub
// the binary.
type Runner interface {
	Run(ctx context.Context, stdin string, args ...string) (stdout, stderr string, err error)
}

type execRunner struct {
	binary string
}

func (r *execRunner) Run(ctx context.Context, stdin string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, r.binary, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

type Config struct {
	KubectlPath string
	Logger      output.LoggerPort
}

func DefaultConfig(logger output.LoggerPort) Config {
	return Config{
		KubectlPath: "kubectl",
		Logger:      logger,
	}
}

// Client shells out to kubectl for everything the form appliers need. The
// manifest always travels on stdin so nothing is written to disk.
type Client struct {
	runner Runner
	logger output.LoggerPort
}

func NewClient(cfg Config) *Client {
	return &Client{
		runner: &execRunner{binary: cfg.KubectlPath},
		logger: cfg.Logger,
	}
}

func (c *Client) Apply(ctx context.Context, namespace, manifest string) (string, error) {
	return c.run(ctx, manifest, "apply", "-n", namespace, "-f", "-")
}

func (c *Client) ApplyClusterScoped(ctx context.Context, manifest string) (string, error) {
	return c.run(ctx, manifest, "apply", "-f", "-")
}

func (c *Client) DeleteNamespace(ctx context.Context, namespace string) (string, error) {
	return c.run(ctx, "", "delete", "namespace", namespace, "--ignore-not-found=true")
}

func (c *Client) CreateNamespace(ctx context.Context, namespace string) (string, error) {
	return c.run(ctx, "", "create", "namespace", namespace)
}

func (c *Client) run(ctx context.Context, stdin string, args ...string) (string, error) {
	c.logger.Debug("Running kubectl", "args", strings.Join(args, " "))

	stdout, stderr, err := c.runner.Run(ctx, stdin, args...)
	combined := combineOutput(stdout, stderr)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return combined, fmt.Errorf("kubectl binary not found: %w", err)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail := combined
			if detail == "" {
				detail = err.Error()
			}
			return combined, fmt.Errorf("kubectl %s exited with code %d: %s", args[0], exitErr.ExitCode(), detail)
		}
		return combined, fmt.Errorf("kubectl %s failed: %w", args[0], err)
	}
	return combined, nil
}

func combineOutput(stdout, stderr string) string {
	parts := make([]string, 0, 2)
	if s := strings.TrimSpace(stdout); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(stderr); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n")
}

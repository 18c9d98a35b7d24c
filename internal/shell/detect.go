package shell

import (
	"context"
	"os"

	"github.com/shirou/gopsutil/v4/process"
)

// DetectShell reports the user's shell from $SHELL, falling back to the
// name of the parent process. An undetectable shell is ShellUnknown, not
// an error.
func DetectShell(ctx context.Context) (*DetectionResult, error) {
	return detect(ctx, os.Getenv, parentProcessName)
}

func detect(ctx context.Context, getenv func(string) string, parent func(context.Context) (string, error)) (*DetectionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if shell := getenv("SHELL"); shell != "" {
		if s := parseShellFromPath(shell); s.IsValid() {
			return &DetectionResult{Shell: s, Method: "$SHELL environment variable", ShellPath: shell}, nil
		}
	}

	if name, err := parent(ctx); err == nil {
		if s := parseShellFromPath(name); s.IsValid() {
			return &DetectionResult{Shell: s, Method: "parent process", ShellPath: name}, nil
		}
	}

	return &DetectionResult{Shell: ShellUnknown, Method: "detection failed"}, nil
}

func parentProcessName(ctx context.Context) (string, error) {
	p, err := process.NewProcessWithContext(ctx, int32(os.Getppid()))
	if err != nil {
		return "", err
	}
	return p.NameWithContext(ctx)
}

package exec

import (
	"context"
	"strings"
	"testing"
)

func TestRun_ExitCode(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		expectCode int
	}{
		{"exit 0", []string{"-c", "exit 0"}, 0},
		{"exit 1", []string{"-c", "exit 1"}, 1},
		{"exit 42", []string{"-c", "exit 42"}, 42},
	}

	r := NewRealRunner()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := r.Run(context.Background(), "sh", tt.args, RunOpts{})
			if err != nil {
				t.Fatalf("Run returned error: %v", err)
			}
			if result.ExitCode != tt.expectCode {
				t.Errorf("exit code = %d, want %d", result.ExitCode, tt.expectCode)
			}
		})
	}
}

func TestRun_StdoutStderr(t *testing.T) {
	r := NewRealRunner()
	result, err := r.Run(context.Background(), "sh", []string{"-c", "echo stdout; echo stderr >&2"}, RunOpts{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if !strings.Contains(result.Stdout, "stdout") {
		t.Errorf("stdout = %q, want to contain 'stdout'", result.Stdout)
	}
	if !strings.Contains(result.Stderr, "stderr") {
		t.Errorf("stderr = %q, want to contain 'stderr'", result.Stderr)
	}
}

func TestRun_Dir(t *testing.T) {
	r := NewRealRunner()
	dir := t.TempDir()
	result, err := r.Run(context.Background(), "pwd", nil, RunOpts{Dir: dir})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(result.Stdout, dir) {
		t.Errorf("pwd = %q, want to contain %q", result.Stdout, dir)
	}
}

func TestRun_StartFailure(t *testing.T) {
	r := NewRealRunner()
	_, err := r.Run(context.Background(), "no_such_command_abc123", nil, RunOpts{})
	if err == nil {
		t.Error("Run with non-existent command should return error")
	}
}

func TestStubRunner_Responses(t *testing.T) {
	s := NewStubRunner()
	s.Responses["git rev-parse"] = CmdResult{Stdout: "/repo\n"}
	s.Responses["git status"] = CmdResult{ExitCode: 1}

	res, err := s.Run(context.Background(), "git", []string{"rev-parse", "--show-toplevel"}, RunOpts{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if res.Stdout != "/repo\n" {
		t.Errorf("Stdout = %q, want %q", res.Stdout, "/repo\n")
	}

	res, _ = s.Run(context.Background(), "git", []string{"status"}, RunOpts{})
	if res.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", res.ExitCode)
	}

	if len(s.Calls) != 2 {
		t.Fatalf("recorded %d calls, want 2", len(s.Calls))
	}
	if s.CommandLines()[0] != "git rev-parse --show-toplevel" {
		t.Errorf("first call = %q", s.CommandLines()[0])
	}
}

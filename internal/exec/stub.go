package exec

import (
	"context"
	"strings"
)

// StubCall records a single invocation made through a StubRunner.
type StubCall struct {
	Name string
	Args []string
	Dir  string
}

// StubRunner is a scripted CommandRunner for tests. Responses are matched by
// command line prefix; unmatched commands succeed with empty output.
type StubRunner struct {
	Responses map[string]CmdResult // key: "git init", "git rev-parse", ...
	Errors    map[string]error
	Calls     []StubCall
}

// NewStubRunner creates an empty StubRunner.
func NewStubRunner() *StubRunner {
	return &StubRunner{
		Responses: make(map[string]CmdResult),
		Errors:    make(map[string]error),
	}
}

// Run records the call and returns the scripted response, if any.
func (s *StubRunner) Run(_ context.Context, name string, args []string, opts RunOpts) (CmdResult, error) {
	s.Calls = append(s.Calls, StubCall{Name: name, Args: args, Dir: opts.Dir})

	line := name + " " + strings.Join(args, " ")
	for key, err := range s.Errors {
		if strings.HasPrefix(line, key) {
			return CmdResult{}, err
		}
	}
	for key, res := range s.Responses {
		if strings.HasPrefix(line, key) {
			return res, nil
		}
	}
	return CmdResult{}, nil
}

// CommandLines returns each recorded call as a single space-joined string.
func (s *StubRunner) CommandLines() []string {
	lines := make([]string, len(s.Calls))
	for i, c := range s.Calls {
		lines[i] = c.Name + " " + strings.Join(c.Args, " ")
	}
	return lines
}

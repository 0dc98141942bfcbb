package msvc

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"testing"
)

type execCall struct {
	name string
	args []string
}

// fakeVSWhere replaces the vswhere process with the test binary running
// TestHelperProcess, which prints stdout and stderr and exits with code.
func fakeVSWhere(t *testing.T, stdout, stderr string, code int) *[]execCall {
	t.Helper()

	prevExec, prevLookPath := execCommandContext, lookPath
	t.Cleanup(func() {
		execCommandContext, lookPath = prevExec, prevLookPath
	})

	var calls []execCall

	lookPath = func(file string) (string, error) {
		return file, nil
	}
	execCommandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		calls = append(calls, execCall{name: name, args: args})

		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess", "--")
		cmd.Env = append(os.Environ(),
			"BFFGEN_HELPER_PROCESS=1",
			"BFFGEN_HELPER_STDOUT="+stdout,
			"BFFGEN_HELPER_STDERR="+stderr,
			"BFFGEN_HELPER_EXIT="+strconv.Itoa(code),
		)
		return cmd
	}

	return &calls
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("BFFGEN_HELPER_PROCESS") != "1" {
		return
	}

	fmt.Fprint(os.Stdout, os.Getenv("BFFGEN_HELPER_STDOUT"))
	fmt.Fprint(os.Stderr, os.Getenv("BFFGEN_HELPER_STDERR"))

	code, _ := strconv.Atoi(os.Getenv("BFFGEN_HELPER_EXIT"))
	os.Exit(code)
}

// Package conversion shells out to an external odgi executable to
// convert between the GFA interchange text format and odgi's native
// binary format.
//
// The executable location is runtime configuration — an explicit path
// on the Runner or the PANGRAPH_ODGI environment variable — never a
// path baked in at build time. Failures carry the tool's captured
// stderr and are surfaced to the caller, never retried.
package conversion

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EnvExe is the environment variable consulted for the odgi executable
// when the Runner does not name one explicitly.
const EnvExe = "PANGRAPH_ODGI"

// DefaultExe is the bare command name resolved through PATH when
// neither the Runner nor the environment names an executable.
const DefaultExe = "odgi"

// Error reports an abnormal exit of the external conversion tool.
type Error struct {
	// Op is the conversion step that failed, e.g. "odgi build".
	Op string
	// Stderr is the tool's captured diagnostic output.
	Stderr string
	// Err is the underlying execution error.
	Err error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("conversion: %s failed: %v", e.Op, e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Runner invokes the external odgi tool.
type Runner struct {
	// Exe is the odgi executable. Empty means: $PANGRAPH_ODGI, then
	// "odgi" resolved through PATH.
	Exe string
}

func (r *Runner) exe() string {
	if r.Exe != "" {
		return r.Exe
	}
	if exe := os.Getenv(EnvExe); exe != "" {
		return exe
	}
	return DefaultExe
}

// GFAToODGI converts a GFA file to odgi's native format by running
// `odgi build`.
func (r *Runner) GFAToODGI(ctx context.Context, gfaPath, odgiPath string) error {
	return r.run(ctx, "odgi build", nil, "build", "-g", gfaPath, "-o", odgiPath)
}

// ODGIToGFA converts an odgi-format file to GFA text by running
// `odgi view` and writing its stdout to gfaPath.
func (r *Runner) ODGIToGFA(ctx context.Context, odgiPath, gfaPath string) error {
	var stdout bytes.Buffer
	if err := r.run(ctx, "odgi view", &stdout, "view", "-i", odgiPath, "-g"); err != nil {
		return err
	}
	if err := os.WriteFile(gfaPath, stdout.Bytes(), 0o644); err != nil {
		return &Error{Op: "odgi view", Err: fmt.Errorf("write GFA output: %w", err)}
	}
	return nil
}

func (r *Runner) run(ctx context.Context, op string, stdout *bytes.Buffer, args ...string) error {
	cmd := exec.CommandContext(ctx, r.exe(), args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if stdout != nil {
		cmd.Stdout = stdout
	}

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return &Error{Op: op, Stderr: stderr.String(), Err: err}
	}
	return nil
}

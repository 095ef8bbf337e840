package sudoers

import (
	"os/exec"
	"strings"

	"github.com/thoreinstein/basm/internal/errors"
)

// Validator checks a candidate sudoers file for syntax errors.
// Implementations return a *ValidationError when the content is rejected
// and a plain error for any other failure (validator missing, I/O).
type Validator interface {
	Validate(path string) error
}

// ValidationError indicates the external validator rejected staged
// sudoers content. The live file is guaranteed untouched when this error
// is returned.
type ValidationError struct {
	// Output is the validator's captured diagnostic text. It is passed
	// through verbatim; basm does not parse it.
	Output string
}

func (e *ValidationError) Error() string {
	msg := "sudoers validation failed"
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

// Visudo validates candidate files by running the system's visudo-style
// checker as "<executable> -c -f <path>". The exit status is the sole
// pass/fail signal; stdout and stderr are captured as diagnostics.
type Visudo struct {
	executable string
}

// NewVisudo creates a Visudo validator running the given executable.
func NewVisudo(executable string) *Visudo {
	return &Visudo{executable: executable}
}

// Validate implements Validator.
func (v *Visudo) Validate(path string) error {
	cmd := exec.Command(v.executable, "-c", "-f", path)
	out, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ValidationError{Output: string(out)}
	}

	// The validator could not be run at all (not found, not executable).
	return errors.Wrapf(err, "running %s", v.executable)
}

package osal

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"grimm.is/icewall/internal/brand"
)

var (
	ErrNotSet  = errors.New("environment variable not set")
	ErrInvalid = errors.New("bad file descriptor")

	// ErrUntrustedParent is returned when the payload was not sent by a
	// process running this executable.
	ErrUntrustedParent = errors.New("exec payload not sent by this program")
)

// checkParent compares the executable of the parent process with our own.
func checkParent(parent, self string) error {
	if strings.HasSuffix(parent, " (deleted)") {
		return fmt.Errorf("%w: parent executable %q has been deleted", ErrUntrustedParent, parent)
	}
	if parent != self {
		return fmt.Errorf("%w: parent executable is %q", ErrUntrustedParent, parent)
	}
	return nil
}

// ExecFDEnv names the variable carrying the payload descriptor number.
func ExecFDEnv() string {
	return brand.EnvVar("EXEC_FD")
}

// IsChildProcess reports whether this process was started by Spawn.
func IsChildProcess() bool {
	_, ok := os.LookupEnv(ExecFDEnv())
	return ok
}

// Setup appends the read end of a pipe for payload transmission to
// extraFiles and returns its descriptor number in the child together with
// the write end.
func Setup(extraFiles *[]*os.File) (int, *os.File, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return -1, nil, err
	}
	fd := len(*extraFiles)
	*extraFiles = append(*extraFiles, r)
	return fd, w, nil
}

// Send encodes spec onto w and closes it.
func Send(w *os.File, spec Spec) error {
	err := gob.NewEncoder(w).Encode(spec)
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	return err
}

// Receive reads the payload announced in the environment into spec, then
// closes the pipe and removes the variable so it does not leak further.
func Receive(spec *Spec) error {
	s, ok := os.LookupEnv(ExecFDEnv())
	if !ok {
		return ErrNotSet
	}
	fd, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	// the standard streams are never payload pipes
	if fd < 3 {
		return ErrInvalid
	}
	setup := os.NewFile(uintptr(fd), "setup")
	if setup == nil {
		return ErrInvalid
	}
	defer setup.Close()

	if err := gob.NewDecoder(setup).Decode(spec); err != nil {
		return err
	}
	return os.Unsetenv(ExecFDEnv())
}

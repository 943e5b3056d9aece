//go:build linux

package executor

import (
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/icewall/internal/osal"
)

// A payload handed to the child entry by anything other than this
// executable is refused before it is decoded.
func TestChildMain_RefusesForeignParent(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	require.NoError(t, osal.Send(w, osal.Spec{Path: "/bin/true", Argv: []string{"true"}}))

	// sh stays in between, so the child's parent is not the test binary
	c := exec.Command("/bin/sh", "-c", `"$0" `+osal.ExecCommand+`; exit $?`, os.Args[0])
	c.Env = append(os.Environ(), osal.ExecFDEnv()+"=3")
	c.ExtraFiles = []*os.File{r}

	err = c.Run()
	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), "child ran the payload: %v", err)
	assert.Equal(t, ExitParentRejected, exitErr.ExitCode())
}

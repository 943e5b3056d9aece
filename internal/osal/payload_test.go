package osal

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReceiveErrors(t *testing.T) {
	var spec Spec

	t.Setenv(ExecFDEnv(), "")
	os.Unsetenv(ExecFDEnv())
	assert.ErrorIs(t, Receive(&spec), ErrNotSet)
	assert.False(t, IsChildProcess())

	t.Setenv(ExecFDEnv(), "not-a-number")
	assert.Error(t, Receive(&spec))

	for _, fd := range []string{"0", "1", "2", "-1"} {
		t.Setenv(ExecFDEnv(), fd)
		assert.ErrorIs(t, Receive(&spec), ErrInvalid, "fd %s", fd)
	}
}

func TestCheckParent(t *testing.T) {
	assert.NoError(t, checkParent("/usr/sbin/icewall", "/usr/sbin/icewall"))
	assert.ErrorIs(t, checkParent("/bin/sh", "/usr/sbin/icewall"), ErrUntrustedParent)
	assert.ErrorIs(t, checkParent("/usr/sbin/icewall (deleted)", "/usr/sbin/icewall"), ErrUntrustedParent)
	assert.ErrorIs(t, checkParent("", "/usr/sbin/icewall"), ErrUntrustedParent)
}

func TestExitStatus(t *testing.T) {
	assert.True(t, ExitStatus{}.Success())
	assert.False(t, ExitStatus{Code: 1}.Success())
	assert.False(t, ExitStatus{Signaled: true, Signal: 9}.Success())
	assert.Equal(t, "exit 3", ExitStatus{Code: 3}.String())
	assert.Equal(t, "signal 9", ExitStatus{Signaled: true, Signal: 9}.String())
}

func TestReseedIsDeterministic(t *testing.T) {
	reseed(42)
	a := []uint64{Uint64(), Uint64()}
	reseed(42)
	b := []uint64{Uint64(), Uint64()}
	assert.Equal(t, a, b)

	reseed(43)
	assert.NotEqual(t, a[0], Uint64())
}

func TestBranchString(t *testing.T) {
	assert.Equal(t, "parent", BranchParent.String())
	assert.Equal(t, "child", BranchChild.String())
}

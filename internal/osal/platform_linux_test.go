//go:build linux

package osal

import (
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestLinuxPlatformIdentity(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	assert.Equal(t, os.Getpid(), p.Getpid())
	assert.Equal(t, os.Getuid(), p.Getuid())
	assert.Equal(t, os.Geteuid(), p.Geteuid())
	assert.Equal(t, os.Getgid(), p.Getgid())
	assert.Equal(t, os.Getegid(), p.Getegid())

	a := p.Monotonic()
	b := p.Monotonic()
	assert.Greater(t, a, int64(0))
	assert.GreaterOrEqual(t, b, a)
}

func TestLinuxPlatformIsOpen(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	f, err := os.Open(os.DevNull)
	require.NoError(t, err)
	fd := int(f.Fd())
	assert.True(t, p.IsOpen(fd))

	require.NoError(t, f.Close())
	assert.False(t, p.IsOpen(fd))
}

func TestLinuxPlatformOpenNull(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	// grab a free descriptor number, then release it
	f, err := os.Open(os.DevNull)
	require.NoError(t, err)
	fd := int(f.Fd())
	require.NoError(t, f.Close())

	require.NoError(t, p.OpenNull(fd))
	assert.True(t, p.IsOpen(fd))
	unix.Close(fd)
}

func TestChildPlatformSpawn(t *testing.T) {
	p, err := NewChild()
	require.NoError(t, err)

	out, err := p.Spawn(Spec{Path: "/bin/true", Argv: []string{"/bin/true"}})
	require.NoError(t, err)
	assert.Equal(t, BranchChild, out.Branch)
	assert.Equal(t, os.Getpid(), out.PID)
}

func TestSetupSendReceive(t *testing.T) {
	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	fd, w, err := Setup(&files)
	require.NoError(t, err)
	assert.Equal(t, 3, fd)
	require.Len(t, files, 4)

	want := Spec{
		Path:  "/sbin/iptables",
		Argv:  []string{"/sbin/iptables", "-P", "OUTPUT", "ACCEPT"},
		Env:   []string{"PATH=/usr/sbin:/usr/bin:/sbin:/bin"},
		Flags: 0xf,
	}
	go func() {
		_ = Send(w, want)
	}()

	// Receive takes ownership of the descriptor it is given, so hand it a
	// duplicate and let files[fd] keep its own.
	dup, err := unix.Dup(int(files[fd].Fd()))
	require.NoError(t, err)
	defer files[fd].Close()
	t.Setenv(ExecFDEnv(), strconv.Itoa(dup))
	assert.True(t, IsChildProcess())

	var got Spec
	require.NoError(t, Receive(&got))
	assert.Equal(t, want, got)

	_, stillSet := os.LookupEnv(ExecFDEnv())
	assert.False(t, stillSet, "payload variable must be removed after receipt")
}

//go:build linux

package osal

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sys/unix"

	"grimm.is/icewall/internal/brand"
)

const nullDevice = "/dev/null"

type linuxPlatform struct {
	child bool
	exe   string
}

// New returns the parent-side platform. Spawn re-executes the running binary.
func New() (Platform, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("cannot read executable path: %w", err)
	}
	return &linuxPlatform{exe: exe}, nil
}

// NewChild returns the platform used inside a process started by Spawn.
// Its Spawn reports BranchChild without creating anything.
func NewChild() (Platform, error) {
	return &linuxPlatform{child: true}, nil
}

// VerifyParent refuses a payload unless the parent process runs the same
// executable as this one. Spawn is the only legitimate sender.
func VerifyParent() error {
	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("cannot read executable path: %w", err)
	}
	parent, err := os.Readlink(filepath.Join("/proc", strconv.Itoa(os.Getppid()), "exe"))
	if err != nil {
		return fmt.Errorf("cannot read parent executable path: %w", err)
	}
	return checkParent(parent, self)
}

func (p *linuxPlatform) Spawn(spec Spec) (Outcome, error) {
	if p.child {
		return Outcome{Branch: BranchChild, PID: unix.Getpid()}, nil
	}

	// a closed standard stream stays closed in the child
	files := []*os.File{
		p.inherit(0, os.Stdin),
		p.inherit(1, os.Stdout),
		p.inherit(2, os.Stderr),
	}
	fd, w, err := Setup(&files)
	if err != nil {
		return Outcome{}, fmt.Errorf("cannot create payload pipe: %w", err)
	}
	r := files[fd]

	proc, err := os.StartProcess(p.exe, []string{brand.BinaryName, ExecCommand}, &os.ProcAttr{
		Env:   []string{ExecFDEnv() + "=" + strconv.Itoa(fd)},
		Files: files,
	})
	r.Close()
	if err != nil {
		w.Close()
		return Outcome{}, err
	}
	pid := proc.Pid

	if err := Send(w, spec); err != nil {
		// the child cannot proceed without its payload
		_ = proc.Kill()
		_, _ = proc.Wait()
		return Outcome{}, fmt.Errorf("cannot send payload to pid %d: %w", pid, err)
	}
	// reaped through Wait by pid from here on
	_ = proc.Release()

	return Outcome{Branch: BranchParent, PID: pid}, nil
}

func (p *linuxPlatform) inherit(fd int, f *os.File) *os.File {
	if !p.IsOpen(fd) {
		return nil
	}
	return f
}

func (p *linuxPlatform) Wait(pid int) (ExitStatus, error) {
	var ws unix.WaitStatus
	if _, err := unix.Wait4(pid, &ws, 0, nil); err != nil {
		return ExitStatus{}, err
	}
	if ws.Signaled() {
		return ExitStatus{Signaled: true, Signal: ws.Signal()}, nil
	}
	return ExitStatus{Code: ws.ExitStatus()}, nil
}

func (p *linuxPlatform) Exec(path string, argv, env []string) error {
	return unix.Exec(path, argv, env)
}

func (p *linuxPlatform) Exit(code int) {
	unix.Exit(code)
}

func (p *linuxPlatform) Getpid() int { return unix.Getpid() }

func (p *linuxPlatform) Monotonic() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0
	}
	return ts.Nano()
}

func (p *linuxPlatform) Reseed(seed uint64) { reseed(seed) }

// CloseFrom marks every descriptor from fd upwards close-on-exec. The Go
// runtime owns some of them (epoll, wakeup pipes) so they cannot be closed
// outright; the kernel drops them when the image is replaced.
func (p *linuxPlatform) CloseFrom(fd int) error {
	err := unix.CloseRange(uint(fd), math.MaxUint32, unix.CLOSE_RANGE_CLOEXEC)
	if err == nil {
		return nil
	}
	if !errors.Is(err, unix.ENOSYS) && !errors.Is(err, unix.EINVAL) {
		return err
	}

	// kernels before 5.11
	entries, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		return err
	}
	for _, e := range entries {
		n, err := strconv.Atoi(e.Name())
		if err != nil || n < fd {
			continue
		}
		if _, err := unix.FcntlInt(uintptr(n), unix.F_SETFD, unix.FD_CLOEXEC); err != nil && !errors.Is(err, unix.EBADF) {
			return fmt.Errorf("fd %d: %w", n, err)
		}
	}
	return nil
}

func (p *linuxPlatform) IsOpen(fd int) bool {
	_, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
	return !errors.Is(err, unix.EBADF)
}

func (p *linuxPlatform) OpenNull(fd int) error {
	nfd, err := unix.Open(nullDevice, unix.O_RDWR, 0)
	if err != nil {
		return err
	}
	if nfd == fd {
		return nil
	}
	err = unix.Dup3(nfd, fd, 0)
	unix.Close(nfd)
	return err
}

func (p *linuxPlatform) Getuid() int  { return unix.Getuid() }
func (p *linuxPlatform) Geteuid() int { return unix.Geteuid() }
func (p *linuxPlatform) Getgid() int  { return unix.Getgid() }
func (p *linuxPlatform) Getegid() int { return unix.Getegid() }

func (p *linuxPlatform) Setgroups(gids []int) error {
	return unix.Setgroups(gids)
}

func (p *linuxPlatform) Setregid(rgid, egid int) error {
	return unix.Setregid(rgid, egid)
}

func (p *linuxPlatform) Setreuid(ruid, euid int) error {
	return unix.Setreuid(ruid, euid)
}

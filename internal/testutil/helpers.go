package testutil

import (
	"os"
	"testing"

	"grimm.is/icewall/internal/brand"
)

// VMTestEnv is the environment variable that enables tests needing a real
// kernel: netlink, namespaces, privileged process spawning.
var VMTestEnv = brand.EnvVar("VM_TEST")

// RequireVM skips the test unless VMTestEnv is set.
func RequireVM(t testing.TB) {
	t.Helper()
	if os.Getenv(VMTestEnv) == "" {
		t.Skipf("Skipping test: requires %s environment", VMTestEnv)
	}
}

// RequireRoot skips the test unless it runs with euid 0.
func RequireRoot(t testing.TB) {
	t.Helper()
	if os.Geteuid() != 0 {
		t.Skip("Skipping test: requires root")
	}
}

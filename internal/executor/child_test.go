package executor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"grimm.is/icewall/internal/osal"
)

func TestChildFlags(t *testing.T) {
	tests := []struct {
		name                   string
		ruid, euid, rgid, egid int
		in, want               Flags
	}{
		{name: "unprivileged keeps flags", ruid: 1000, euid: 1000, rgid: 100, egid: 100, in: 0, want: 0},
		{name: "root keeps flags", in: WaitForCompletion, want: WaitForCompletion},
		{name: "setuid forces hardening", ruid: 65534, euid: 0, rgid: 100, egid: 100, in: 0, want: SanitizeDescriptors | DropPrivileges},
		{name: "setgid forces hardening", ruid: 1000, euid: 1000, rgid: 100, egid: 0, in: ReseedRandomness, want: ReseedRandomness | SanitizeDescriptors | DropPrivileges},
		{name: "already hardened", ruid: 65534, euid: 0, in: DefaultFlags, want: DefaultFlags},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(osal.MockPlatform)
			m.On("Getuid").Return(tt.ruid).Maybe()
			m.On("Geteuid").Return(tt.euid).Maybe()
			m.On("Getgid").Return(tt.rgid).Maybe()
			m.On("Getegid").Return(tt.egid).Maybe()

			assert.Equal(t, tt.want, childFlags(m, tt.in))
		})
	}
}

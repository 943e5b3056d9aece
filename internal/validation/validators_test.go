package validation

import (
	"strings"
	"testing"
)

func TestValidateInterfaceName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		// Happy paths
		{"simple", "eth0", false},
		{"loopback", "lo", false},
		{"with dash", "eth-0", false},
		{"with underscore", "eth_0", false},
		{"with dot (vlan)", "eth0.100", false},
		{"max length", "eth0123456789ab", false}, // 15 chars

		// Sad paths
		{"empty", "", true},
		{"too long", "eth01234567890123", true}, // 17 chars
		{"space", "eth 0", true},
		{"semicolon injection", "eth0;rm", true},
		{"pipe injection", "eth0|cat", true},
		{"dollar sign", "eth0$USER", true},
		{"backtick", "eth0`whoami`", true},
		{"newline", "eth0\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInterfaceName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInterfaceName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "allow-ssh", false},
		{"underscore", "nat_masquerade", false},
		{"alphanumeric", "r1", false},

		{"empty", "", true},
		{"space", "my rule", true},
		{"dot", "my.rule", true},
		{"semicolon", "rule;drop", true},
		{"long", strings.Repeat("a", 256), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateControlPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"sysctl", "/proc/sys/net/ipv4/ip_forward", false},
		{"dev null", "/dev/null", false},
		{"dotted name", "/proc/sys/net/ipv4/conf/eth0.100/rp_filter", false},

		{"empty", "", true},
		{"relative", "proc/sys/net/ipv4/ip_forward", true},
		{"traversal", "/proc/sys/../../etc/shadow", true},
		{"null byte", "/proc/sys/net\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateControlPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateControlPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name    string
		cmd     string
		wantErr bool
	}{
		{"iptables", "/sbin/iptables -P OUTPUT ACCEPT", false},
		{"metacharacters pass through", "/bin/echo a;b|c", false},

		{"empty", "", true},
		{"multi line", "/bin/true\n/bin/false", true},
		{"null byte", "/bin/true\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCommand(tt.cmd)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCommand(%q) error = %v, wantErr %v", tt.cmd, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEnvEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   string
		wantErr bool
	}{
		{"simple", "LANG=C", false},
		{"empty value", "XTABLES_LIBDIR=", false},
		{"value with equals", "OPTS=a=b", false},

		{"no equals", "LANG", true},
		{"empty key", "=value", true},
		{"digit first", "1A=b", true},
		{"dash in key", "MY-VAR=1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEnvEntry(tt.entry)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEnvEntry(%q) error = %v, wantErr %v", tt.entry, err, tt.wantErr)
			}
		})
	}
}

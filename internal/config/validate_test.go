package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Network: InterfaceSpec{
			Names:             []string{"lo", "eth0.10"},
			InterfaceCommands: []string{"/sbin/ip link set eth0 up"},
			LayerCommands:     []LayerCommand{{Pathname: "/proc/sys/net/ipv4/ip_forward", Value: "1"}},
		},
		Rules: []RuleSpec{
			{Name: "default-drop", Commands: []string{"/sbin/iptables -P INPUT DROP"}},
			{Name: "empty"},
		},
		Environment: []string{"LC_ALL=C"},
	}
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, Validate(validConfig()))
	assert.NoError(t, Validate(&Config{}))

	cfg := validConfig()
	cfg.Rules = []RuleSpec{{Name: "allow ssh"}, {Name: "nat:v4"}, {Name: "nat:v4"}}
	assert.NoError(t, Validate(cfg))
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty rule name", func(c *Config) { c.Rules[0].Name = "" }, "rules[0].name"},
		{"blank rule name", func(c *Config) { c.Rules[1].Name = "  " }, "rules[1].name"},
		{"invalid interface name", func(c *Config) { c.Network.Names[1] = "eth0;reboot" }, "network.interfaceNames[1]"},
		{"long interface name", func(c *Config) { c.Network.Names[0] = "averyveryverylongname" }, "network.interfaceNames[0]"},
		{"empty interface command", func(c *Config) { c.Network.InterfaceCommands[0] = "" }, "network.interfaceCommands[0]"},
		{"empty rule command", func(c *Config) { c.Rules[0].Commands = []string{""} }, "rules[0].commands[0]"},
		{"relative layer path", func(c *Config) { c.Network.LayerCommands[0].Pathname = "proc/sys/x" }, "network.layerCommands[0].pathname"},
		{"layer path traversal", func(c *Config) { c.Network.LayerCommands[0].Pathname = "/proc/../etc/passwd" }, "network.layerCommands[0].pathname"},
		{"malformed environment", func(c *Config) { c.Environment = []string{"NOVALUE"} }, "environment[0]"},
		{"bad namespace", func(c *Config) { c.Network.Namespace = "../../x" }, "network.namespace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			verrs, ok := err.(ValidationErrors)
			require.True(t, ok)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.False(t, errs.HasErrors())
	assert.Equal(t, "", errs.Error())

	errs = ValidationErrors{
		{Field: "a", Message: "bad"},
		{Field: "b", Message: "worse"},
	}
	assert.True(t, errs.HasErrors())
	assert.Equal(t, "a: bad; b: worse", errs.Error())
}

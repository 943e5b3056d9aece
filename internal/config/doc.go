// Package config holds the icewall configuration model and its loaders.
//
// A configuration can be written as JSON, HCL or YAML; the loader is chosen
// by file extension. Whatever the syntax, the result is the same Config value
// or a *ConfigError whose Kind tells the caller what went wrong.
//
// JSON (the default):
//
//	{
//	  "network": {
//	    "interfaceNames": ["eth0"],
//	    "interfaceCommands": ["/sbin/ip link set eth0 up"],
//	    "layerCommands": [{"pathname": "/proc/sys/net/ipv4/ip_forward", "value": "1"}]
//	  },
//	  "rules": [{"name": "default-drop", "commands": ["/sbin/iptables -P INPUT DROP"]}]
//	}
//
// HCL:
//
//	network {
//	  interface_names    = ["eth0"]
//	  interface_commands = ["/sbin/ip link set eth0 up"]
//
//	  layer_command {
//	    pathname = "/proc/sys/net/ipv4/ip_forward"
//	    value    = "1"
//	  }
//	}
//
//	rule "default-drop" {
//	  commands = ["/sbin/iptables -P INPUT DROP"]
//	}
//
// HCL expressions may refer to the invoking environment as env.NAME.
package config

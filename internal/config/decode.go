package config

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v2"
)

// document is the on-disk shape shared by the JSON and YAML loaders.
// Pointers distinguish a missing required field from an empty one.
type document struct {
	Network     *networkDocument `json:"network" yaml:"network"`
	Rules       []ruleDocument   `json:"rules" yaml:"rules"`
	Environment []string         `json:"environment" yaml:"environment"`
}

type networkDocument struct {
	Namespace         string          `json:"namespace" yaml:"namespace"`
	InterfaceNames    *[]string       `json:"interfaceNames" yaml:"interfaceNames"`
	InterfaceCommands *[]string       `json:"interfaceCommands" yaml:"interfaceCommands"`
	LayerCommands     []layerDocument `json:"layerCommands" yaml:"layerCommands"`
}

type layerDocument struct {
	Pathname string `json:"pathname" yaml:"pathname"`
	Value    string `json:"value" yaml:"value"`
}

type ruleDocument struct {
	Name     string   `json:"name" yaml:"name"`
	Commands []string `json:"commands" yaml:"commands"`
}

// config converts the document, reporting missing required fields.
func (d *document) config() (*Config, ValidationErrors) {
	var missing ValidationErrors
	cfg := &Config{Environment: d.Environment}

	if d.Network == nil {
		missing = append(missing, ValidationError{Field: "network", Message: "is required"})
	} else {
		n := d.Network
		if n.InterfaceNames == nil {
			missing = append(missing, ValidationError{Field: "network.interfaceNames", Message: "is required"})
		} else {
			cfg.Network.Names = *n.InterfaceNames
		}
		if n.InterfaceCommands == nil {
			missing = append(missing, ValidationError{Field: "network.interfaceCommands", Message: "is required"})
		} else {
			cfg.Network.InterfaceCommands = *n.InterfaceCommands
		}
		cfg.Network.Namespace = n.Namespace
		for _, l := range n.LayerCommands {
			cfg.Network.LayerCommands = append(cfg.Network.LayerCommands, LayerCommand(l))
		}
	}

	for _, r := range d.Rules {
		cfg.Rules = append(cfg.Rules, RuleSpec(r))
	}
	return cfg, missing
}

func decodeJSON(data []byte) (*document, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func decodeYAML(data []byte) (*document, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// HCL schema. Required attributes are enforced by the decoder itself;
// anything else lands in Remain and is ignored, as JSON and YAML do.
type hclDocument struct {
	Environment []string    `hcl:"environment,optional"`
	Network     *hclNetwork `hcl:"network,block"`
	Rules       []hclRule   `hcl:"rule,block"`
	Remain      hcl.Body    `hcl:",remain"`
}

type hclNetwork struct {
	Namespace         string     `hcl:"namespace,optional"`
	InterfaceNames    []string   `hcl:"interface_names"`
	InterfaceCommands []string   `hcl:"interface_commands"`
	LayerCommands     []hclLayer `hcl:"layer_command,block"`
	Remain            hcl.Body   `hcl:",remain"`
}

type hclLayer struct {
	Pathname string   `hcl:"pathname"`
	Value    string   `hcl:"value"`
	Remain   hcl.Body `hcl:",remain"`
}

type hclRule struct {
	Name     string   `hcl:"name,label"`
	Commands []string `hcl:"commands"`
	Remain   hcl.Body `hcl:",remain"`
}

func decodeHCL(filename string, data []byte, environ []string) (*document, error) {
	// hclsimple picks the syntax from the file suffix
	if !strings.HasSuffix(filename, ".hcl") {
		filename += ".hcl"
	}

	var h hclDocument
	if err := hclsimple.Decode(filename, data, envContext(environ), &h); err != nil {
		return nil, err
	}

	doc := &document{Environment: h.Environment}
	if h.Network != nil {
		names := h.Network.InterfaceNames
		commands := h.Network.InterfaceCommands
		doc.Network = &networkDocument{
			Namespace:         h.Network.Namespace,
			InterfaceNames:    &names,
			InterfaceCommands: &commands,
		}
		for _, l := range h.Network.LayerCommands {
			doc.Network.LayerCommands = append(doc.Network.LayerCommands, layerDocument{Pathname: l.Pathname, Value: l.Value})
		}
	}
	for _, r := range h.Rules {
		doc.Rules = append(doc.Rules, ruleDocument{Name: r.Name, Commands: r.Commands})
	}
	return doc, nil
}

// envContext exposes environ to HCL expressions as env.NAME.
func envContext(environ []string) *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" || !utf8.ValidString(v) {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

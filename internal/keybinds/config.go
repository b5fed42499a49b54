package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
)

// Config represents the user's keybinding configuration.
// Each section maps an action to a comma-separated list of keys.
type Config struct {
	Version  string            `json:"version,omitempty"`
	Global   map[string]string `json:"global,omitempty"`
	Products map[string]string `json:"products,omitempty"`
	Form     map[string]string `json:"form,omitempty"`
}

// sections pairs each config section with its context
func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:   c.Global,
		ContextProducts: c.Products,
		ContextForm:     c.Form,
	}
}

// ParseConfig decodes keybinds.json. Comments and trailing commas are allowed.
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}
	return &config, nil
}

// LoadConfig loads keybinding configuration from a file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SplitKeys turns "up, k" into ["up", "k"]
func SplitKeys(value string) []string {
	var keys []string
	for _, k := range strings.Split(value, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// ApplyConfig applies user configuration to a registry.
// A configured action replaces all default keys of that action in its context.
func ApplyConfig(registry *Registry, config *Config) error {
	for context, section := range config.sections() {
		// Sorted so the first error reported is stable
		actions := make([]string, 0, len(section))
		for a := range section {
			actions = append(actions, a)
		}
		sort.Strings(actions)

		for _, name := range actions {
			action := Action(name)
			if err := ValidateAction(name); err != nil {
				return fmt.Errorf("%s: %w", context, err)
			}
			keys := SplitKeys(section[name])
			if len(keys) == 0 {
				return fmt.Errorf("%s: no keys given for action '%s'", context, name)
			}
			for _, key := range keys {
				if err := ValidateKey(key); err != nil {
					return fmt.Errorf("%s: %w", context, err)
				}
			}

			registry.Unbind(context, action)
			registry.RegisterMultiple(context, keys, action)
		}
	}

	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if _, err := os.Stat(configPath); err == nil {
		config, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
		}

		if err := ApplyConfig(registry, config); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}
	}

	return registry, nil
}

// ExportDefaults exports the default keybindings in config form
func ExportDefaults() *Config {
	r := NewDefaultRegistry()
	config := &Config{
		Version:  "1.0",
		Global:   make(map[string]string),
		Products: make(map[string]string),
		Form:     make(map[string]string),
	}

	for context, section := range config.sections() {
		for _, b := range r.ListBindings(context) {
			if b.Context != context {
				continue
			}
			section[string(b.Action)] = strings.Join(r.GetBinding(context, b.Action), ",")
		}
	}

	return config
}

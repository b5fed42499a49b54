package mock

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads a mock configuration from a file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (use .yaml, .yml, or .json)", ext)
	}

	// Validate config
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// validateConfig validates the mock configuration
func validateConfig(config *Config) error {
	if len(config.Routes) == 0 {
		return fmt.Errorf("no routes defined")
	}

	for i, route := range config.Routes {
		if route.Method == "" {
			return fmt.Errorf("route %d: method is required", i)
		}
		if route.Path == "" {
			return fmt.Errorf("route %d: path is required", i)
		}
		if !strings.HasPrefix(route.Path, "/") {
			return fmt.Errorf("route %d: path must start with '/'", i)
		}
		if route.Status != 0 && (route.Status < 100 || route.Status > 599) {
			return fmt.Errorf("route %d: status %d is not a valid HTTP status", i, route.Status)
		}
	}

	return nil
}

// SaveConfig saves a mock configuration to a file
func SaveConfig(config *Config, path string) error {
	var data []byte
	var err error

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
	case ".json":
		data, err = json.MarshalIndent(config, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file format: %s (use .yaml, .yml, or .json)", ext)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultProductConfig returns routes answering every product endpoint with a
// small fixed catalog, for trying the client without a real API server
func DefaultProductConfig() *Config {
	return &Config{
		Port:    8080,
		Host:    "localhost",
		Logging: true,
		Routes: []Route{
			{
				Name:   "list products",
				Method: "GET",
				Path:   "/api/products",
				Body:   `[{"_id":"65f1c0ffee0000000000a001","name":"Widget","price":500},{"_id":"65f1c0ffee0000000000a002","name":"Gadget","price":1250}]`,
			},
			{
				Name:   "product detail",
				Method: "GET",
				Path:   "/api/products/{id}",
				Body:   `{"_id":"65f1c0ffee0000000000a001","name":"Widget","description":"A very ordinary widget","price":500,"quantity":12,"status":"in stock"}`,
			},
			{
				Name:   "create product",
				Method: "POST",
				Path:   "/api/products",
				Status: 201,
				Body:   "65f1c0ffee0000000000a003",
			},
			{
				Name:   "update product",
				Method: "PUT",
				Path:   "/api/products/{id}",
				Body:   "updated",
			},
			{
				Name:   "delete product",
				Method: "DELETE",
				Path:   "/api/products/{id}",
				Status: 204,
			},
		},
	}
}

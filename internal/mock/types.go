package mock

import "time"

// Config represents the mock server configuration
type Config struct {
	Port    int     `json:"port" yaml:"port"`       // Server port (default: 8080)
	Host    string  `json:"host" yaml:"host"`       // Server host (default: localhost)
	Routes  []Route `json:"routes" yaml:"routes"`   // Route definitions
	Logging bool    `json:"logging" yaml:"logging"` // Enable request logging
}

// Route represents a canned response for one method and path pattern
type Route struct {
	Name        string            `json:"name,omitempty" yaml:"name,omitempty"`
	Method      string            `json:"method" yaml:"method"`
	Path        string            `json:"path" yaml:"path"`     // chi pattern, e.g. /api/products/{id}
	Status      int               `json:"status" yaml:"status"` // default 200
	Headers     map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body        string            `json:"body,omitempty" yaml:"body,omitempty"`
	BodyFile    string            `json:"bodyFile,omitempty" yaml:"bodyFile,omitempty"`
	Delay       int               `json:"delay,omitempty" yaml:"delay,omitempty"` // milliseconds
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
}

// RequestLog represents a logged request
type RequestLog struct {
	Timestamp   time.Time         `json:"timestamp"`
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers"`
	Body        string            `json:"body"`
	MatchedRule string            `json:"matchedRule"`
	Status      int               `json:"status"`
	Duration    time.Duration     `json:"duration"`
}

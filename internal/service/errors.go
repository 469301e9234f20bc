package service

import "fmt"

// ConfigError reports a configuration problem that must abort the deployment.
type ConfigError struct {
	// Field names the offending setting (e.g., "functions.hello.handler")
	Field string
	// Message describes what is wrong with it
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Message)
}

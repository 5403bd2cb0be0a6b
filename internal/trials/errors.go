package trials

import "fmt"

// InvalidConfigurationError represents a malformed run request: an unknown
// parameter or variant name, or a non-positive repetition count. It is
// surfaced before any external call is made.
type InvalidConfigurationError struct {
	Field   string
	Message string
}

func (e *InvalidConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid configuration for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid configuration: %s", e.Message)
}

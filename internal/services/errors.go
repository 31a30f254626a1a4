package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrSystemQuestion     = errors.New("system questions are read-only")
	ErrDuplicateKey       = errors.New("question key already exists")
	ErrStorageUnavailable = errors.New("storage service is not configured")
)

// ValidationError carries field-level messages so the admin panel can render
// them inline instead of a single toast.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		names = append(names, field)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/sprouthq/sprout/internal/logger"
)

// Error kinds surfaced by the habit engine and storage layer. Callers match
// them with errors.Is after any number of fmt.Errorf %w wraps.
var (
	// ErrConfiguration marks a malformed habit definition, e.g. a weekday
	// repeat with an empty weekday set.
	ErrConfiguration = errors.New("configuration error")

	// ErrPersistence marks a failed read or write against the store. It is
	// surfaced to the caller for a user-visible retry, never retried here.
	ErrPersistence = errors.New("persistence error")

	// ErrDataIntegrity marks a state that validation should have made
	// unreachable, such as an unknown repeat mode.
	ErrDataIntegrity = errors.New("data integrity error")
)

// Configurationf wraps ErrConfiguration with a formatted detail message.
func Configurationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrConfiguration}, args...)...)
}

// Persistence wraps a store failure so callers can recognize it regardless
// of backend. A nil err returns nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}

// DataIntegrityf wraps ErrDataIntegrity with a formatted detail message.
func DataIntegrityf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrDataIntegrity}, args...)...)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}

// Package logger provides leveled logging for the ghtask CLI.
// Debug and info messages are printed to stderr only when verbose mode is
// enabled via the --verbose flag; warnings and errors are always printed.
//
// Registered secrets, such as API tokens posted to the legacy issues API,
// are masked in every message.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

const mask = "****"

// minSecretLen keeps short values from masking unrelated text.
const minSecretLen = 4

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	secrets = make(map[string]struct{})
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// RegisterSecret masks s in all later messages. Values shorter than four
// characters are ignored.
func RegisterSecret(s string) {
	if len(s) < minSecretLen {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	secrets[s] = struct{}{}
}

// ResetSecrets forgets all registered secrets.
func ResetSecrets() {
	mu.Lock()
	defer mu.Unlock()
	secrets = make(map[string]struct{})
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	printIf(true, "[DEBUG] ", format, args)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	printIf(true, "\n=== ", "%s ===", []any{name})
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	printIf(true, "[INFO] ", format, args)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	printIf(false, "[WARN] ", format, args)
}

// Error prints an error message.
func Error(format string, args ...any) {
	printIf(false, "[ERROR] ", format, args)
}

func printIf(needVerbose bool, prefix, format string, args []any) {
	mu.RLock()
	defer mu.RUnlock()
	if needVerbose && !verbose {
		return
	}
	fmt.Fprintln(output, prefix+redact(fmt.Sprintf(format, args...)))
}

// redact masks registered secrets in msg. Callers hold mu.
func redact(msg string) string {
	for s := range secrets {
		msg = strings.ReplaceAll(msg, s, mask)
	}
	return msg
}

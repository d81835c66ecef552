// Package diag is a process-wide diagnostic sink for the signature
// engine. It is pure observability: nothing in the protocol reads it
// back, and disabling it must never change behavior.
package diag

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	enabled           = os.Getenv("RLWE_DEBUG") == "1"
	out     io.Writer = os.Stderr
)

// Enable turns diagnostic output on.
func Enable() {
	mu.Lock()
	enabled = true
	mu.Unlock()
}

// Disable turns diagnostic output off.
func Disable() {
	mu.Lock()
	enabled = false
	mu.Unlock()
}

// SetOutput redirects diagnostics to w and enables them. Passing nil
// restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	if w == nil {
		w = os.Stderr
	}
	out = w
	enabled = true
	mu.Unlock()
}

// Logf writes a formatted diagnostic line when enabled.
func Logf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	fmt.Fprintf(out, format+"\n", args...)
}

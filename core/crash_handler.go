package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

var (
	cleanupMu sync.Mutex
	cleanup   func()
)

// SetCrashCleanup registers the hook run before a crash report is printed
// The terminal viewer uses it to restore the tty
func SetCrashCleanup(fn func()) {
	cleanupMu.Lock()
	cleanup = fn
	cleanupMu.Unlock()
}

// HandleCrash restores the host terminal and prints the stack trace, then exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	cleanupMu.Lock()
	fn := cleanup
	cleanupMu.Unlock()
	if fn != nil {
		fn()
	}

	os.Stdout.Sync()
	os.Stderr.Sync()

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())

	os.Stderr.Sync()
	os.Exit(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use this instead of the 'go' keyword so a crashing collaborator still restores the terminal
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}

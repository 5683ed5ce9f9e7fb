// Package goroutine launches background work that must never crash the process.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/orris-inc/supportdesk/internal/shared/logger"
)

// SafeGo runs fn in a new goroutine. A panic is logged with its stack trace and swallowed.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer Recover(log, name)
		fn()
	}()
}

// Recover is the deferred half of SafeGo for callers that manage their own goroutine.
func Recover(log logger.Interface, name string) {
	if r := recover(); r != nil {
		log.Errorw("goroutine panicked",
			"goroutine", name,
			"panic", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)
	}
}

package internal

import (
	"fmt"
	"time"
)

var levelMarks = map[string]string{
	"INFO":  "ℹ️",
	"OK":    "✅",
	"WARN":  "⚠️",
	"ERROR": "❌",
}

// Logf prints a timestamped, leveled line to stdout. Unknown levels get a
// neutral mark instead of failing.
func Logf(level, format string, args ...any) {
	mark, ok := levelMarks[level]
	if !ok {
		mark = "📌"
	}
	fmt.Printf("  [%s] %s %s\n", time.Now().Format("15:04:05"), mark, fmt.Sprintf(format, args...))
}

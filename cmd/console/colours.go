package main

const (
	// Standard colors
	Black   = "\033[30m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
	Gray    = "\033[90m" // Bright black, often appears as gray

	ResetColor = "\033[0m" // Reset to default color
)

var statusColors = map[string]string{
	"adopted":   Green,
	"trial":     Cyan,
	"hold":      Yellow,
	"retired":   Gray,
	"active":    Green,
	"completed": Blue,
	"on_hold":   Yellow,
	"archived":  Gray,
}

func colorStatus(status string) string {
	color, ok := statusColors[status]
	if !ok {
		return status
	}
	return color + status + ResetColor
}

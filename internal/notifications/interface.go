package notifications

// Notifier delivers a toast somewhere outside the terminal
type Notifier interface {
	// SendAlert sends an alert with the specified level and message
	SendAlert(level, message string) error
}

package cmd

// Config carries the environment-driven settings for the service.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// AmqpURL is the message broker address for prep station notifications.
	// When empty the service runs without a broker and dispatch notifications
	// are discarded.
	AmqpURL string

	// DefaultDelaySeconds is the holding-window length applied to new items
	// whose request does not specify one.
	DefaultDelaySeconds int

	// SweepIntervalSeconds is the tick period of the expiry sweep.
	SweepIntervalSeconds int

	// SweepGraceSeconds delays the first sweep tick after startup.
	SweepGraceSeconds int
}

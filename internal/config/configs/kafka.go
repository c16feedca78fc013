package configs

import "time"

// Kafka configures the order event publisher. Brokers is a comma separated
// list. When Enabled is false events are dropped.
type Kafka struct {
	Enabled      bool          `env:"ENABLED" envDefault:"false"`
	Brokers      []string      `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic        string        `env:"TOPIC" envDefault:"pautas.events"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
}

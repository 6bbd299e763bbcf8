package config

import (
	"time"

	"github.com/IBM/sarama"
)

type Server interface {
	Host() string
	Port() int
	Address() string
	ReadTimeout() time.Duration
	ShutdownTimeout() time.Duration
}

type CourseAPI interface {
	URL() string
	Timeout() time.Duration
}

type Payment interface {
	URL() string
	PublishableKey() string
	Timeout() time.Duration
}

type Logger interface {
	Level() string
	AsJSON() bool
}

type Kafka interface {
	Enabled() bool
	Brokers() []string
	PurchaseTopic() string
	PurchaseProducerConfig() *sarama.Config
}

type Checkout interface {
	FlowTTL() time.Duration
}

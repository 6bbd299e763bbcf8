package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	envconfig "github.com/you-humble/course-storefront/internal/config/env"
)

var cfg *config

type config struct {
	Server    Server
	CourseAPI CourseAPI
	Payment   Payment
	Logger    Logger
	Kafka     Kafka
	Checkout  Checkout
}

func Load(path ...string) error {
	const op = "config.Load"

	if shouldLoadDotenv() {
		if err := godotenv.Load(path...); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: load .env: %w", op, err)
		}
	}

	serverCfg, err := envconfig.NewHTTPServerConfig()
	if err != nil {
		return fmt.Errorf("%s Server: %w", op, err)
	}

	courseAPICfg, err := envconfig.NewCourseAPIConfig()
	if err != nil {
		return fmt.Errorf("%s CourseAPI: %w", op, err)
	}

	paymentCfg, err := envconfig.NewPaymentConfig()
	if err != nil {
		return fmt.Errorf("%s Payment: %w", op, err)
	}

	loggerCfg, err := envconfig.NewLoggerConfig()
	if err != nil {
		return fmt.Errorf("%s Logger: %w", op, err)
	}

	kafkaCfg, err := envconfig.NewKafkaConfig()
	if err != nil {
		return fmt.Errorf("%s Kafka: %w", op, err)
	}

	checkoutCfg, err := envconfig.NewCheckoutConfig()
	if err != nil {
		return fmt.Errorf("%s Checkout: %w", op, err)
	}

	cfg = &config{
		Server:    serverCfg,
		CourseAPI: courseAPICfg,
		Payment:   paymentCfg,
		Logger:    loggerCfg,
		Kafka:     kafkaCfg,
		Checkout:  checkoutCfg,
	}

	return nil
}

func C() *config { return cfg }

func shouldLoadDotenv() bool {
	return os.Getenv("APP_ENV") == "local"
}

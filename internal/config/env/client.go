package envconfig

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// ======= Course API =======

type courseAPIEnv struct {
	URL     string        `env:"COURSE_API_URL,required,notEmpty"`
	Timeout time.Duration `env:"COURSE_API_TIMEOUT" envDefault:"10s"`
}

type courseAPI struct {
	raw courseAPIEnv
}

func NewCourseAPIConfig() (*courseAPI, error) {
	var raw courseAPIEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &courseAPI{raw: raw}, nil
}

func (cfg *courseAPI) URL() string            { return cfg.raw.URL }
func (cfg *courseAPI) Timeout() time.Duration { return cfg.raw.Timeout }

// ======= Payment =======

type paymentEnv struct {
	URL            string        `env:"PAYMENT_API_URL" envDefault:"https://api.stripe.com"`
	PublishableKey string        `env:"PAYMENT_PUBLISHABLE_KEY,required,notEmpty"`
	Timeout        time.Duration `env:"PAYMENT_TIMEOUT" envDefault:"30s"`
}

type payment struct {
	raw paymentEnv
}

func NewPaymentConfig() (*payment, error) {
	var raw paymentEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &payment{raw: raw}, nil
}

func (cfg *payment) URL() string            { return cfg.raw.URL }
func (cfg *payment) PublishableKey() string { return cfg.raw.PublishableKey }
func (cfg *payment) Timeout() time.Duration { return cfg.raw.Timeout }

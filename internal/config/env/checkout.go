package envconfig

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type checkoutEnv struct {
	FlowTTL time.Duration `env:"CHECKOUT_FLOW_TTL" envDefault:"30m"`
}

type checkout struct {
	raw checkoutEnv
}

func NewCheckoutConfig() (*checkout, error) {
	var raw checkoutEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &checkout{raw: raw}, nil
}

func (cfg *checkout) FlowTTL() time.Duration { return cfg.raw.FlowTTL }

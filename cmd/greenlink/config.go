package main

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const appID = "greenlink"

type config struct {
	HTTPAddr     string        `envconfig:"HTTP_ADDR" default:":8080"`
	GRPCAddr     string        `envconfig:"GRPC_ADDR" default:":9090"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`
	DatabaseDSN  string        `envconfig:"DATABASE_DSN"`
	RedisAddr    string        `envconfig:"REDIS_ADDR"`
	CartTTL      time.Duration `envconfig:"CART_TTL" default:"24h"`
	SeedFile     string        `envconfig:"SEED_FILE"`
	PayeeID      string        `envconfig:"PAYEE_ID" default:"greenlink@paytm"`
	PayeeName    string        `envconfig:"PAYEE_NAME" default:"GreenLink"`
	Currency     string        `envconfig:"CURRENCY" default:"INR"`
	MerchantCode string        `envconfig:"MERCHANT_CODE" default:"1234"`
	Tracing      bool          `envconfig:"TRACING" default:"false"`
}

func parseEnv() (*config, error) {
	c := new(config)
	if err := envconfig.Process(appID, c); err != nil {
		return nil, errors.Wrap(err, "failed to parse env")
	}
	return c, nil
}

func setupLogging(level string) error {
	log.SetFormatter(&log.JSONFormatter{})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	log.SetLevel(lvl)
	return nil
}

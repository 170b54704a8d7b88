package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr          string
	DBDSN             string
	JWTIssuer         string
	JWTSecret         string
	JWTTTL            time.Duration
	WebSocketOrigin   string
	PriceFeedURL      string
	PriceFeedInterval time.Duration
	InitialCash       string
	SnapshotInterval  time.Duration
}

func Load() (Config, error) {
	var c Config
	var missing []string
	c.HTTPAddr = os.Getenv("HTTP_ADDR")
	if c.HTTPAddr == "" {
		missing = append(missing, "HTTP_ADDR")
	}
	c.DBDSN = os.Getenv("DB_DSN")
	if c.DBDSN == "" {
		missing = append(missing, "DB_DSN")
	}
	c.JWTIssuer = os.Getenv("JWT_ISSUER")
	if c.JWTIssuer == "" {
		missing = append(missing, "JWT_ISSUER")
	}
	c.JWTSecret = os.Getenv("JWT_SECRET")
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	jwtTTL := os.Getenv("JWT_TTL")
	if jwtTTL == "" {
		missing = append(missing, "JWT_TTL")
	} else {
		d, err := time.ParseDuration(jwtTTL)
		if err != nil {
			return c, err
		}
		c.JWTTTL = d
	}
	c.WebSocketOrigin = os.Getenv("WS_ORIGIN")
	if c.WebSocketOrigin == "" {
		c.WebSocketOrigin = "*"
	}
	c.PriceFeedURL = os.Getenv("PRICE_FEED_URL")
	if c.PriceFeedURL == "" {
		missing = append(missing, "PRICE_FEED_URL")
	}
	c.PriceFeedInterval = 5 * time.Second
	if v := os.Getenv("PRICE_FEED_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return c, errors.New("invalid PRICE_FEED_INTERVAL")
		}
		c.PriceFeedInterval = d
	}
	c.InitialCash = os.Getenv("INITIAL_CASH")
	if c.InitialCash == "" {
		c.InitialCash = "10000"
	}
	c.SnapshotInterval = time.Hour
	if v := os.Getenv("SNAPSHOT_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return c, errors.New("invalid SNAPSHOT_INTERVAL")
		}
		c.SnapshotInterval = d
	}
	if len(missing) > 0 {
		return c, errors.New("missing required env: " + strings.Join(missing, ","))
	}
	return c, nil
}

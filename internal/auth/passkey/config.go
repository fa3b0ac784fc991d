package passkey

import (
	"errors"
	"time"
)

// Defaults for the relying party.
const (
	DefaultRPID          = "localhost"
	DefaultRPDisplayName = "DynaForm"
	DefaultOrigin        = "http://localhost:4200"
	DefaultTimeout       = 60 * time.Second
)

// Config describes the relying party the ceremonies are bound to.
type Config struct {
	RPID          string
	RPDisplayName string
	RPOrigins     []string

	// Timeout is advertised to the client in ceremony options. Expiry is
	// enforced by the challenge store, not here.
	Timeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.RPID == "" {
		c.RPID = DefaultRPID
	}
	if c.RPDisplayName == "" {
		c.RPDisplayName = DefaultRPDisplayName
	}
	if len(c.RPOrigins) == 0 {
		c.RPOrigins = []string{DefaultOrigin}
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

func (c Config) validate() error {
	for _, o := range c.RPOrigins {
		if o == "" {
			return errors.New("passkey: empty origin")
		}
	}
	return nil
}

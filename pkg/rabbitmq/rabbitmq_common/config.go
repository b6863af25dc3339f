package rabbitmq_common

import (
	"errors"
	"strings"
)

// Config is the part shared by every publisher and consumer.
type Config struct {
	URL string
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return errors.New("rabbitmq: URL is required")
	}
	return nil
}

package blockdrag

import (
	"go.uber.org/zap"

	"github.com/dshills/blockdrag/internal/config"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the debug logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithSettings sets the initial settings.
func WithSettings(s config.Settings) Option {
	return func(c *Controller) {
		c.settings = s
	}
}

// WithConfigManager binds a config manager: its current settings
// become the controller's, and every reload reconfigures the running
// components.
func WithConfigManager(m *config.Manager) Option {
	return func(c *Controller) {
		c.manager = m
	}
}

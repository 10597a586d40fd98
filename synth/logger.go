package synth

import "log"

// WithLogger overrides the *log.Logger Run reports progress through.
// Defaults to log.Default(): plain standard-library logging rather than a
// third-party logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

package sefile

import (
	"github.com/dhanmoti/sweph/format"
	"github.com/dhanmoti/sweph/internal/options"
)

// config collects Open-time settings.
type config struct {
	compression    format.CompressionType
	compressionSet bool
	skipChecksum   bool
}

// Option configures Open and OpenImage.
type Option = options.Option[*config]

// WithCompression forces the image codec instead of inferring it from the
// file name. Use format.CompressionNone for a plain image with a
// misleading name.
func WithCompression(ct format.CompressionType) Option {
	return options.NoError(func(c *config) {
		c.compression = ct
		c.compressionSet = true
	})
}

// WithoutChecksum skips the xxHash64 image checksum computed at open time.
// Useful when opening very large files whose identity is already known.
func WithoutChecksum() Option {
	return options.NoError(func(c *config) {
		c.skipChecksum = true
	})
}

func newConfig(opts ...Option) (*config, error) {
	cfg := &config{compression: format.CompressionNone}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

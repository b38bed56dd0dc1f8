package alienkitty

import "errors"

var (
	// ErrInvalidConfig is returned when a configuration value is out of range
	// or cannot be parsed.
	ErrInvalidConfig = errors.New("alienkitty: invalid config")
	// ErrAssetLoad is returned when an image or font cannot be loaded.
	ErrAssetLoad = errors.New("alienkitty: asset load failed")
	// ErrNotReady is returned when the pipeline is started before Ready
	// succeeded.
	ErrNotReady = errors.New("alienkitty: not ready")
	// ErrDisposed is returned by operations on a disposed App.
	ErrDisposed = errors.New("alienkitty: disposed")
)

/*
DESCRIPTION
  config.go contains the Config struct, its validation and the projection of
  its live tunables.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package config contains the configuration settings for an amplifier.
package config

import (
	"errors"
	"fmt"

	"github.com/ausocean/motionamp/filter"
	"github.com/ausocean/utils/logging"
)

// Enums to define inputs.
const (
	// Indicates no option has been set.
	NothingDefined = iota

	InputCamera
	InputFile
)

// ErrInvalidConfig is wrapped by all validation errors.
var ErrInvalidConfig = errors.New("invalid config")

// MultiError collects the errors found during validation.
type MultiError []error

func (me MultiError) Error() string {
	if len(me) == 0 {
		panic("config: invalid use of MultiError")
	}
	return fmt.Sprintf("%v", []error(me))
}

// Unwrap allows errors.Is and errors.As to inspect each error.
func (me MultiError) Unwrap() []error { return me }

// Config provides parameters relevant to an amplifier instance. A config
// obtained from Default holds the default for every field; the zero Config
// is not valid.
type Config struct {
	// Input defines the video source, either InputCamera or InputFile.
	Input uint8

	// CameraIndex selects the capture device for camera input.
	CameraIndex int

	// InputPath defines the video file location for file input. It must be
	// defined if file input is used.
	InputPath string

	Width  uint // Requested capture width for camera input, 0 leaves the device default.
	Height uint // Requested capture height for camera input, 0 leaves the device default.

	Threshold     float64 // Minimum binarization cutoff, must not be negative.
	Amplification float64 // Gain applied to the difference, must be positive.
	BlurRadius    int     // Gaussian kernel size, 0 disables smoothing.

	// StackSize is the number of recent frames each frame is compared
	// against. Changes take effect when the amplifier is next started.
	StackSize int

	// AdaptiveThreshold selects max(Threshold, 1.5*mean difference) as the
	// binarization cutoff instead of Threshold alone.
	AdaptiveThreshold bool

	FPSSmoothing float64 // Smoothing factor of the FPS readout, in (0,1).
	DesiredFPS   float64 // Frame rate requested from the source, best effort.

	// Logger holds an implementation of the Logger interface. This must be
	// set for the amplifier to work correctly.
	Logger logging.Logger

	// LogLevel is the logging verbosity level.
	LogLevel int8
}

// Default returns a Config holding default values with the given logger.
func Default(l logging.Logger) Config {
	return Config{
		Input:             defaultInput,
		CameraIndex:       defaultCameraIndex,
		Width:             defaultWidth,
		Height:            defaultHeight,
		Threshold:         defaultThreshold,
		Amplification:     defaultAmplification,
		BlurRadius:        defaultBlurRadius,
		StackSize:         defaultStackSize,
		AdaptiveThreshold: defaultAdaptiveThreshold,
		FPSSmoothing:      defaultFPSSmoothing,
		DesiredFPS:        defaultDesiredFPS,
		Logger:            l,
		LogLevel:          defaultVerbosity,
	}
}

// Validate checks for errors in the config fields. Errors for all invalid
// fields are returned together as a MultiError wrapping ErrInvalidConfig.
// Fields that only hint at capture behaviour are defaulted if unset.
func (c *Config) Validate() error {
	var errs MultiError
	for _, v := range Variables {
		if v.Validate == nil {
			continue
		}
		if err := v.Validate(c); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, v.Name, err))
		}
	}
	if len(errs) != 0 {
		return errs
	}
	return nil
}

// Update takes a map of configuration variable names and their corresponding
// values, parses the string values and converting into correct type, and then
// sets the config struct fields as appropriate.
func (c *Config) Update(vars map[string]string) {
	for _, value := range Variables {
		if v, ok := vars[value.Name]; ok && value.Update != nil {
			value.Update(c, v)
		}
	}
}

// Params returns the per frame tunables held by c.
func (c *Config) Params() filter.Params {
	return filter.Params{
		Threshold:         c.Threshold,
		Amplification:     c.Amplification,
		BlurRadius:        c.BlurRadius,
		AdaptiveThreshold: c.AdaptiveThreshold,
	}
}

// Live reports whether the variable named key can be applied to a running
// amplifier without a restart.
func Live(key string) bool {
	for _, v := range Variables {
		if v.Name == key {
			return v.Live
		}
	}
	return false
}

func (c *Config) LogInvalidField(name string, def interface{}) {
	c.Logger.Info(name+" bad or unset, defaulting", name, def)
}

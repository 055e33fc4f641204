/*
DESCRIPTION
  variables.go contains a list of structs that provide a variable Name, type in
  a string format, a function for updating the variable in the Config struct
  from a string, and finally, a validation function to check the validity of the
  corresponding field value in the Config.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ausocean/motionamp/filter"
	"github.com/ausocean/utils/logging"
)

// Config map Keys.
const (
	KeyAdaptiveThreshold = "AdaptiveThreshold"
	KeyAmplification     = "Amplification"
	KeyBlurRadius        = "BlurRadius"
	KeyCameraIndex       = "CameraIndex"
	KeyDesiredFPS        = "DesiredFPS"
	KeyFPSSmoothing      = "FPSSmoothing"
	KeyHeight            = "Height"
	KeyInput             = "Input"
	KeyInputPath         = "InputPath"
	KeyLogging           = "logging"
	KeyStackSize         = "StackSize"
	KeyThreshold         = "Threshold"
	KeyWidth             = "Width"
)

// Config map parameter types.
const (
	typeString = "string"
	typeInt    = "int"
	typeUint   = "uint"
	typeBool   = "bool"
	typeFloat  = "float"
)

// Default variable values.
const (
	defaultInput       = InputCamera
	defaultCameraIndex = 0
	defaultWidth       = 640
	defaultHeight      = 480
	defaultVerbosity   = logging.Info

	// Motion amplification defaults.
	defaultThreshold         = 10
	defaultAmplification     = 10
	defaultBlurRadius        = 3
	defaultStackSize         = 5
	defaultAdaptiveThreshold = true

	// Timing defaults.
	defaultFPSSmoothing = 0.9
	defaultDesiredFPS   = 60
)

// Validation errors.
var (
	errNegative    = errors.New("must not be negative")
	errNotPositive = errors.New("must be positive")
	errStackSize   = fmt.Errorf("must be at least %d", filter.MinStackSize)
	errSmoothing   = errors.New("must be within (0,1)")
	errNoPath      = errors.New("file input requires an input path")
	errBadInput    = errors.New("unknown input")
)

// Variables describes the variables that can be used for amplifier control.
// These structs provide the name and type of variable, a function for updating
// this variable in a Config, a function for validating the value of the
// variable, and whether the variable can be applied while running.
var Variables = []struct {
	Name     string
	Type     string
	Live     bool
	Update   func(*Config, string)
	Validate func(*Config) error
}{
	{
		Name:   KeyAdaptiveThreshold,
		Type:   typeBool,
		Live:   true,
		Update: func(c *Config, v string) { c.AdaptiveThreshold = parseBool(KeyAdaptiveThreshold, v, c) },
	},
	{
		Name:   KeyAmplification,
		Type:   typeFloat,
		Live:   true,
		Update: func(c *Config, v string) { c.Amplification = parseFloat(KeyAmplification, v, c) },
		Validate: func(c *Config) error {
			if c.Amplification <= 0 {
				return errNotPositive
			}
			return nil
		},
	},
	{
		Name:   KeyBlurRadius,
		Type:   typeUint,
		Live:   true,
		Update: func(c *Config, v string) { c.BlurRadius = parseInt(KeyBlurRadius, v, c) },
		Validate: func(c *Config) error {
			if c.BlurRadius < 0 {
				return errNegative
			}
			return nil
		},
	},
	{
		Name:   KeyCameraIndex,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.CameraIndex = parseInt(KeyCameraIndex, v, c) },
		Validate: func(c *Config) error {
			if c.Input == InputCamera && c.CameraIndex < 0 {
				return errNegative
			}
			return nil
		},
	},
	{
		Name:   KeyDesiredFPS,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.DesiredFPS = parseFloat(KeyDesiredFPS, v, c) },
		Validate: func(c *Config) error {
			if c.DesiredFPS <= 0 {
				c.LogInvalidField(KeyDesiredFPS, defaultDesiredFPS)
				c.DesiredFPS = defaultDesiredFPS
			}
			return nil
		},
	},
	{
		Name:   KeyFPSSmoothing,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.FPSSmoothing = parseFloat(KeyFPSSmoothing, v, c) },
		Validate: func(c *Config) error {
			if c.FPSSmoothing <= 0 || c.FPSSmoothing >= 1 {
				return errSmoothing
			}
			return nil
		},
	},
	{
		Name:   KeyHeight,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.Height = parseUint(KeyHeight, v, c) },
	},
	{
		Name: KeyInput,
		Type: "enum:camera,file",
		Update: func(c *Config, v string) {
			c.Input = parseEnum(
				KeyInput,
				v,
				map[string]uint8{
					"camera": InputCamera,
					"file":   InputFile,
				},
				c,
			)
		},
		Validate: func(c *Config) error {
			switch c.Input {
			case InputCamera:
			case InputFile:
				if c.InputPath == "" {
					return errNoPath
				}
			default:
				return errBadInput
			}
			return nil
		},
	},
	{
		Name:   KeyInputPath,
		Type:   typeString,
		Update: func(c *Config, v string) { c.InputPath = v },
	},
	{
		Name: KeyLogging,
		Type: "enum:Debug,Info,Warning,Error,Fatal",
		Update: func(c *Config, v string) {
			switch v {
			case "Debug":
				c.LogLevel = logging.Debug
			case "Info":
				c.LogLevel = logging.Info
			case "Warning":
				c.LogLevel = logging.Warning
			case "Error":
				c.LogLevel = logging.Error
			case "Fatal":
				c.LogLevel = logging.Fatal
			default:
				c.Logger.Warning("invalid Logging param", "value", v)
			}
		},
	},
	{
		Name:   KeyStackSize,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.StackSize = parseInt(KeyStackSize, v, c) },
		Validate: func(c *Config) error {
			if c.StackSize < filter.MinStackSize {
				return errStackSize
			}
			return nil
		},
	},
	{
		Name:   KeyThreshold,
		Type:   typeFloat,
		Live:   true,
		Update: func(c *Config, v string) { c.Threshold = parseFloat(KeyThreshold, v, c) },
		Validate: func(c *Config) error {
			if c.Threshold < 0 {
				return errNegative
			}
			return nil
		},
	},
	{
		Name:   KeyWidth,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.Width = parseUint(KeyWidth, v, c) },
	},
}

// Malformed values leave the field unchanged.

func parseUint(n, v string, c *Config) uint {
	_v, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected unsigned int for param %s", n), "value", v)
		return fieldUint(n, c)
	}
	return uint(_v)
}

func parseInt(n, v string, c *Config) int {
	_v, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected integer for param %s", n), "value", v)
		return fieldInt(n, c)
	}
	return _v
}

func parseFloat(n, v string, c *Config) float64 {
	_v, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected float for param %s", n), "value", v)
		return fieldFloat(n, c)
	}
	return _v
}

func parseBool(n, v string, c *Config) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true":
		return true
	case "false":
		return false
	default:
		c.Logger.Warning(fmt.Sprintf("expect bool for param %s", n), "value", v)
	}
	return c.AdaptiveThreshold
}

func parseEnum(n, v string, enums map[string]uint8, c *Config) uint8 {
	_v, ok := enums[strings.ToLower(strings.TrimSpace(v))]
	if !ok {
		c.Logger.Warning(fmt.Sprintf("invalid value for %s param", n), "value", v)
		return c.Input
	}
	return _v
}

// fieldUint, fieldInt and fieldFloat return the current value of the named
// field.

func fieldUint(n string, c *Config) uint {
	switch n {
	case KeyWidth:
		return c.Width
	case KeyHeight:
		return c.Height
	}
	return 0
}

func fieldInt(n string, c *Config) int {
	switch n {
	case KeyBlurRadius:
		return c.BlurRadius
	case KeyCameraIndex:
		return c.CameraIndex
	case KeyStackSize:
		return c.StackSize
	}
	return 0
}

func fieldFloat(n string, c *Config) float64 {
	switch n {
	case KeyAmplification:
		return c.Amplification
	case KeyDesiredFPS:
		return c.DesiredFPS
	case KeyFPSSmoothing:
		return c.FPSSmoothing
	case KeyThreshold:
		return c.Threshold
	}
	return 0
}

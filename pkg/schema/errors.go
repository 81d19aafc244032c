package schema

import "errors"

// Kind classifies a Descriptor into one of the failure families.
type Kind int

const (
	// KindConfig marks a malformed schema configuration.
	KindConfig Kind = iota + 1
	// KindType marks a value whose runtime type does not match the schema.
	KindType
	// KindConstraint marks a value of the right type that violates a constraint.
	KindConstraint
	// KindComposite marks a value rejected by every alternative of a one-of.
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindType:
		return "type"
	case KindConstraint:
		return "constraint"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching against raised *Error values.
var (
	ErrConfig     = errors.New("schema: configuration error")
	ErrType       = errors.New("schema: value type error")
	ErrConstraint = errors.New("schema: constraint error")
	ErrComposite  = errors.New("schema: composite error")
)

// Descriptor is a structured validation failure.
//
// Code is a stable machine identifier, Summary and Explanation describe the
// failure family, and Message is specific to the rejected value. Errors holds
// the member descriptors of a composite failure, in alternative order.
type Descriptor struct {
	Code        string        `json:"code"`
	Summary     string        `json:"summary"`
	Explanation string        `json:"explanation"`
	Message     string        `json:"message"`
	Kind        Kind          `json:"-"`
	Errors      []*Descriptor `json:"errors,omitempty"`
}

// With returns a copy of the descriptor carrying message.
// Templates are declared as values so every failure gets its own copy.
func (d Descriptor) With(message string) *Descriptor {
	d.Message = message
	return &d
}

func (d *Descriptor) prefixed(prefix string) *Descriptor {
	if prefix == "" {
		return d
	}
	cp := *d
	cp.Message = prefix + d.Message
	return &cp
}

// Descriptor templates owned by the engine. Controllers declare their own.
var (
	ConfigDefect = Descriptor{
		Code:        "ECONFIG",
		Summary:     "Invalid schema configuration.",
		Explanation: "The schema configuration is malformed and cannot be compiled.",
		Kind:        KindConfig,
	}

	TypeMismatch = Descriptor{
		Code:        "ETYPE",
		Summary:     "Invalid type.",
		Explanation: "The value's type does not match the type required by the schema.",
		Kind:        KindType,
	}

	OneOfMismatch = Descriptor{
		Code:        "EONEOF",
		Summary:     "No matching schema.",
		Explanation: "The value did not satisfy any of the alternative schemas.",
		Kind:        KindComposite,
	}
)

// Error is the failure raised by Validate, Normalize and compilation.
// It carries the full descriptor so callers can branch on the code.
type Error struct {
	Descriptor *Descriptor
}

func (e *Error) Error() string {
	return e.Descriptor.Message
}

// Code returns the descriptor code.
func (e *Error) Code() string {
	return e.Descriptor.Code
}

// Is reports whether target is the sentinel for the descriptor's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrConfig:
		return e.Descriptor.Kind == KindConfig
	case ErrType:
		return e.Descriptor.Kind == KindType
	case ErrConstraint:
		return e.Descriptor.Kind == KindConstraint
	case ErrComposite:
		return e.Descriptor.Kind == KindComposite
	}
	return false
}

// Raise wraps d into an error. A nil descriptor yields a nil error.
func Raise(d *Descriptor) error {
	if d == nil {
		return nil
	}
	return &Error{Descriptor: d}
}

// ConfigError builds a configuration failure with the given message.
func ConfigError(message string) error {
	return Raise(ConfigDefect.With(message))
}

// PropertyError builds a configuration failure for a single property.
//
//	Invalid configuration value for property: min. Must be a number. Received: "a"
func PropertyError(property string, value any, reason string) error {
	return ConfigError("Invalid configuration value for property: " + property + ". " + reason + " Received: " + Render(value))
}

// ValueMessage formats the message for a value of the wrong type.
//
//	Invalid value. Expected a number. Received: "1"
func ValueMessage(value any, reason string) string {
	return "Invalid value. " + reason + " Received: " + Render(value)
}

// DescriptorOf extracts the descriptor from an error chain, or nil.
func DescriptorOf(err error) *Descriptor {
	var e *Error
	if errors.As(err, &e) {
		return e.Descriptor
	}
	return nil
}

// CodeOf returns the descriptor code found in err, or "".
func CodeOf(err error) string {
	if d := DescriptorOf(err); d != nil {
		return d.Code
	}
	return ""
}

// asConfigError forces any controller failure into a configuration error.
func asConfigError(err error) error {
	if err == nil {
		return nil
	}
	if d := DescriptorOf(err); d != nil && d.Kind == KindConfig {
		return err
	}
	return ConfigError(err.Error())
}

package query

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownIdentifier is returned when the word before '=' is not "column".
	ErrUnknownIdentifier = errors.New("unknown identifier")
	// ErrMissingEqual is returned when an identifier is not followed by '='.
	ErrMissingEqual = errors.New("missing '='")
	// ErrUnexpectedToken is returned when a clause does not start with an identifier.
	ErrUnexpectedToken = errors.New("unexpected token")
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	UnknownIdentifier ErrorKind = iota
	MissingEqual
	UnexpectedToken
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownIdentifier:
		return "UnknownIdentifier"
	case MissingEqual:
		return "MissingEqual"
	case UnexpectedToken:
		return "UnexpectedToken"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError describes why a query was rejected.
// Name is set for UnknownIdentifier; Token holds the offending token when there is one.
type ParseError struct {
	Kind  ErrorKind
	Name  string
	Token *Token
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case UnknownIdentifier:
		return fmt.Sprintf("%s %q", ErrUnknownIdentifier, e.Name)
	case MissingEqual:
		if e.Token == nil {
			return fmt.Sprintf("%s: reached end of query", ErrMissingEqual)
		}
		return fmt.Sprintf("%s: got %s", ErrMissingEqual, e.Token)
	default:
		if e.Token == nil {
			return ErrUnexpectedToken.Error()
		}
		return fmt.Sprintf("%s %s", ErrUnexpectedToken, e.Token)
	}
}

func (e *ParseError) Unwrap() error {
	switch e.Kind {
	case UnknownIdentifier:
		return ErrUnknownIdentifier
	case MissingEqual:
		return ErrMissingEqual
	default:
		return ErrUnexpectedToken
	}
}

package network

import "errors"

var (
	// ErrSyntax is returned when a model file or an update function cannot be
	// parsed.
	ErrSyntax = errors.New("syntax error")
	// ErrUnknownVariable is returned when an update function refers to a name
	// that is neither a variable nor a parameter of the network.
	ErrUnknownVariable = errors.New("unknown variable")
	// ErrDuplicateVariable is returned when a name is declared twice.
	ErrDuplicateVariable = errors.New("duplicate variable")
	// ErrFormat is returned by Load for unsupported file extensions.
	ErrFormat = errors.New("unsupported model format")
)

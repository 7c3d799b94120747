package app

import (
	"errors"
	"os"
	"strings"
)

type NameErrorKind int

const (
	ContainsPathSeparator NameErrorKind = iota
	EmptyName
)

type NameParseError struct {
	Kind  NameErrorKind
	Input string
}

func (e *NameParseError) Error() string {
	switch e.Kind {
	case EmptyName:
		return "Directory name must not be empty"
	default:
		return "Directory name cannot contain path separator"
	}
}

// Is reports kind equality so callers can match against ErrContainsPathSeparator.
func (e *NameParseError) Is(target error) bool {
	var other *NameParseError
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

var ErrContainsPathSeparator = &NameParseError{Kind: ContainsPathSeparator}

// Directory is a project name that is guaranteed to be a single path segment.
// The zero value is not valid; build one with ParseDirectory.
type Directory struct {
	name string
}

func ParseDirectory(src string) (Directory, error) {
	if strings.ContainsRune(src, '/') || strings.ContainsRune(src, os.PathSeparator) {
		return Directory{}, &NameParseError{Kind: ContainsPathSeparator, Input: src}
	}
	if src == "" || src == "." || src == ".." {
		return Directory{}, &NameParseError{Kind: EmptyName, Input: src}
	}
	return Directory{name: src}, nil
}

func (d Directory) String() string {
	return d.name
}

package catalog

import "errors"

var (
	// ErrEmptyTagName indicates a tag without a name
	ErrEmptyTagName = errors.New("catalog: empty tag name")

	// ErrDuplicateTag indicates a tag name or ID already in the directory
	ErrDuplicateTag = errors.New("catalog: duplicate tag")

	// ErrCategoryCycle indicates a tag filed under itself
	ErrCategoryCycle = errors.New("catalog: category cycle")

	// ErrUnknownTag indicates a reference to a tag outside the directory
	ErrUnknownTag = errors.New("catalog: unknown tag")

	// ErrEmptyPath indicates a photo without a path
	ErrEmptyPath = errors.New("catalog: empty photo path")
)

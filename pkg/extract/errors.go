package extract

import "fmt"

// TagReadError is returned when a file cannot be opened or its bytes cannot
// be decoded as an image carrying EXIF data.
type TagReadError struct {
	File string
	Err  error
}

func (e *TagReadError) Error() string {
	return fmt.Sprintf("read tags from %s: %v", e.File, e.Err)
}

func (e *TagReadError) Unwrap() error { return e.Err }

// MissingRequiredTagError is returned when a tag needed for the summary row
// is absent.
type MissingRequiredTagError struct {
	File string
	Tag  string
}

func (e *MissingRequiredTagError) Error() string {
	return fmt.Sprintf("%s: missing required tag %q", e.File, e.Tag)
}

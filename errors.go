package inkwell

import "errors"

var (
	// ErrEmptyContent is returned when sanitized content has no text and no image.
	ErrEmptyContent = errors.New("post content is empty")
	// ErrFileRead is returned when an uploaded image cannot be decoded.
	ErrFileRead = errors.New("could not read uploaded image file")
	// ErrStorageParse marks a stored posts slot that is not a JSON array of posts.
	ErrStorageParse = errors.New("stored posts are malformed")
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when a requested post does not exist.
	ErrNotFound = errors.New("post not found")
)

// ValidationError reports a rejected form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Is lets errors.Is match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

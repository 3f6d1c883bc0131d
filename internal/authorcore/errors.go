package authorcore

import "errors"

var (
	// ErrNotFound matches every *NotFoundError via errors.Is.
	ErrNotFound = errors.New("author not found")
	// ErrUnknownOperation is returned by Dispatch for an Operation it cannot route.
	ErrUnknownOperation = errors.New("unknown operation")
)

// NotFoundError reports an id-based lookup that matched no author.
// Its message is the one clients see, so it is kept stable.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return "Author not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

package rearrange

import "errors"

// InvalidArrangementMessage is the text of every invalid arrangement error
const InvalidArrangementMessage = "The tile size or ordering are not valid for the given image"

// ErrInvalidArrangement matches any *InvalidArrangementError with errors.Is
var ErrInvalidArrangement = errors.New(InvalidArrangementMessage)

// InvalidArrangementError is returned when the tile size or ordering do not
// describe an exact permutation of the image's tiles. Cause holds the
// *tile.CheckError naming the rule that failed.
type InvalidArrangementError struct {
	Cause error
}

func (e *InvalidArrangementError) Error() string {
	return InvalidArrangementMessage
}

func (e *InvalidArrangementError) Unwrap() error {
	return e.Cause
}

func (e *InvalidArrangementError) Is(target error) bool {
	return target == ErrInvalidArrangement
}

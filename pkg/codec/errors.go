package codec

import (
	"errors"
	"fmt"
)

// ErrTruncatedFrame reports that the declared frame length implies more
// embedded bits than the image can supply.
var ErrTruncatedFrame = errors.New("truncated frame")

// ErrNoHiddenMessage reports that an image carries no recoverable message,
// either because nothing was ever embedded or because the frame is truncated.
var ErrNoHiddenMessage = errors.New("no hidden message found")

// CapacityError reports a message that does not fit in the target image.
type CapacityError struct {
	Required  int // payload bytes the caller asked to embed
	Available int // payload bytes the image can hold
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("message too long: needs %d bytes but image can hold %d", e.Required, e.Available)
}

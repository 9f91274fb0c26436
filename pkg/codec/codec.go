/*
Package codec embeds arbitrary byte payloads in the least-significant bits
of an image's RGB channel values and recovers them later.

The wire format is fixed: a 32-bit big-endian length header followed by the
(optionally XOR-obfuscated) payload bytes, serialized most-significant-bit
first, spread one bit per color-channel LSB in row-major pixel order and
R,G,B channel order. Encode and Decode are stateless single-pass pipelines;
separate calls share nothing and may run concurrently on different images.
*/
package codec

import (
	"fmt"
	"image"
)

// Encode returns a copy of img with message hidden in its channel LSBs.
// The input image is never mutated. Only the LSBs within the written range
// change; every other bit of every channel keeps its original value, which
// is what keeps the visual difference imperceptible.
//
// It fails with a *CapacityError when the message plus the length header
// does not fit in the image.
func Encode(img image.Image, message []byte, password string) (*image.NRGBA, error) {
	bounds := img.Bounds()
	available := MaxPayloadBytes(bounds.Dx(), bounds.Dy())
	if len(message) > available {
		return nil, &CapacityError{Required: len(message), Available: available}
	}

	out := cloneNRGBA(img)
	ch := NewBitChannel(out)

	framed := PackFrame(ApplyKeystream(message, password))
	for i, b := range framed {
		for j := 0; j < 8; j++ {
			ch.Write(i*8+j, b>>(7-j)&1)
		}
	}
	return out, nil
}

// Decode recovers the message hidden in img by Encode. Passing a different
// password than the one used to encode yields garbage bytes, not an error;
// the keystream carries no integrity check.
//
// It fails with ErrNoHiddenMessage when the image cannot contain a complete
// frame, which also covers images nothing was ever embedded in: their random
// LSBs almost always declare a length far beyond the image's capacity.
func Decode(img image.Image, password string) ([]byte, error) {
	ch := NewBitChannel(toNRGBA(img))
	body, err := UnpackFrame(ch)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoHiddenMessage, err)
	}
	return ApplyKeystream(body, password), nil
}

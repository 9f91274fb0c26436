package codec

import (
	"encoding/binary"
	"fmt"
)

// headerBits is the size of the frame length header in bit slots.
const headerBits = 32

// PackFrame prefixes body with its length as an unsigned 32-bit big-endian
// integer. A fixed-width header lets extraction know exactly where the
// payload ends without relying on delimiter bytes that could collide with
// message content.
func PackFrame(body []byte) []byte {
	framed := make([]byte, 4+len(body))
	binary.BigEndian.PutUint32(framed, uint32(len(body)))
	copy(framed[4:], body)
	return framed
}

// UnpackFrame reads the declared length from the first 32 bit slots of ch,
// then returns the body bytes that follow. The header and every body byte
// are read most-significant-bit first, matching PackFrame's serialization.
// It fails with ErrTruncatedFrame when the channel cannot supply all
// 32 + length*8 bits the header declares.
func UnpackFrame(ch *BitChannel) ([]byte, error) {
	capacity := ch.Capacity()
	if capacity < headerBits {
		return nil, fmt.Errorf("%w: image offers %d bit slots, header needs %d", ErrTruncatedFrame, capacity, headerBits)
	}

	var length uint32
	for i := 0; i < headerBits; i++ {
		length = length<<1 | uint32(ch.Read(i))
	}

	if int64(headerBits)+int64(length)*8 > int64(capacity) {
		return nil, fmt.Errorf("%w: declared length %d needs %d bits, image offers %d", ErrTruncatedFrame, length, int64(headerBits)+int64(length)*8, capacity)
	}

	body := make([]byte, length)
	for i := range body {
		var b byte
		for j := 0; j < 8; j++ {
			b = b<<1 | ch.Read(headerBits+i*8+j)
		}
		body[i] = b
	}
	return body, nil
}

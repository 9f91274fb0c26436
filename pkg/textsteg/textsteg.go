/*
Package textsteg hides byte payloads inside ordinary-looking text using
invisible zero-width Unicode characters, for carriers that transmit text
rather than pixels (chat apps, e-mail, anywhere Unicode survives).

Bit 0 maps to U+200B (zero width space) and bit 1 to U+200C (zero width
non-joiner). The payload is wrapped in start/end markers and prefixed with a
2-byte checksum of the plaintext, so unlike the image codec a wrong password
is detected instead of silently yielding garbage.
*/
package textsteg

import (
	"crypto/md5"
	"errors"
	"fmt"
	"strings"

	"PixelVeil/pkg/codec"
)

const (
	zero  = '\u200B' // bit 0
	one   = '\u200C' // bit 1
	start = '\uFEFF' // payload start marker
	end   = '\u200D' // payload end marker
)

// checksumSize is the number of leading payload bytes holding the checksum.
const checksumSize = 2

// ErrNoHiddenMessage reports text without a complete start/end marker pair.
var ErrNoHiddenMessage = errors.New("no hidden message found in text")

// ErrCorruptedData reports an embedded bit sequence that cannot form a
// well-formed payload.
var ErrCorruptedData = errors.New("hidden data is corrupted or incomplete")

// ErrIntegrityCheckFailed reports a checksum mismatch after decoding,
// almost always a wrong password.
var ErrIntegrityCheckFailed = errors.New("integrity check failed: wrong password or corrupted data")

func checksum(data []byte) []byte {
	sum := md5.Sum(data)
	return sum[:checksumSize]
}

// EncodeText hides secret inside coverText. The payload (checksum plus
// secret) is run through the same repeating XOR keystream the image codec
// uses; the checksum is ciphered too, so decoding with a wrong password
// fails cleanly instead of passing garbage through.
func EncodeText(coverText string, secret []byte, password string) (string, error) {
	if strings.TrimSpace(coverText) == "" {
		return "", errors.New("cover text cannot be empty")
	}
	if len(secret) == 0 {
		return "", errors.New("secret message cannot be empty")
	}

	payload := append(checksum(secret), secret...)
	payload = codec.ApplyKeystream(payload, password)

	var invisible strings.Builder
	invisible.WriteRune(start)
	for _, b := range payload {
		for j := 0; j < 8; j++ {
			if b>>(7-j)&1 == 1 {
				invisible.WriteRune(one)
			} else {
				invisible.WriteRune(zero)
			}
		}
	}
	invisible.WriteRune(end)

	// Insert after the first rune so the carrier still starts with a
	// visible character.
	runes := []rune(coverText)
	return string(runes[0]) + invisible.String() + string(runes[1:]), nil
}

// DecodeText extracts the payload hidden in stegText by EncodeText and
// verifies its checksum.
func DecodeText(stegText string, password string) ([]byte, error) {
	startIdx := strings.IndexRune(stegText, start)
	endIdx := strings.IndexRune(stegText, end)
	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return nil, ErrNoHiddenMessage
	}

	var bits []byte
	for _, ch := range stegText[startIdx:endIdx] {
		switch ch {
		case one:
			bits = append(bits, 1)
		case zero:
			bits = append(bits, 0)
		}
	}

	if len(bits) == 0 || len(bits)%8 != 0 {
		return nil, fmt.Errorf("%w: %d embedded bits", ErrCorruptedData, len(bits))
	}

	payload := make([]byte, len(bits)/8)
	for i := range payload {
		var b byte
		for j := 0; j < 8; j++ {
			b = b<<1 | bits[i*8+j]
		}
		payload[i] = b
	}

	payload = codec.ApplyKeystream(payload, password)
	if len(payload) < checksumSize+1 {
		return nil, fmt.Errorf("%w: payload too short", ErrCorruptedData)
	}

	stored := payload[:checksumSize]
	secret := payload[checksumSize:]
	if string(checksum(secret)) != string(stored) {
		return nil, ErrIntegrityCheckFailed
	}
	return secret, nil
}

// HasHiddenMessage reports whether text contains both payload markers.
func HasHiddenMessage(text string) bool {
	return strings.ContainsRune(text, start) && strings.ContainsRune(text, end)
}

// StripInvisible returns text with every zero-width carrier character
// removed, leaving only the visible cover.
func StripInvisible(text string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case zero, one, start, end:
			return -1
		}
		return r
	}, text)
}

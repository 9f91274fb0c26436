package codec

import (
	"bytes"
	"errors"
	"image"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		message  []byte
		password string
	}{
		{"hello no password", 10, 10, []byte("HELLO"), ""},
		{"hello with password", 10, 10, []byte("HELLO"), "hunter2"},
		{"empty message", 10, 10, []byte{}, ""},
		{"empty message with password", 10, 10, []byte{}, "key"},
		{"binary payload", 20, 20, []byte{0x00, 0xFF, 0x0A, 0x80, 0x7F}, "k"},
		{"exactly at capacity", 10, 10, bytes.Repeat([]byte{'m'}, 33), ""},
		{"utf8 message", 50, 50, []byte("héllo wörld — ciphered"), "pässword"},
		{"larger image", 200, 100, bytes.Repeat([]byte("payload"), 500), "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := newTestImage(tt.width, tt.height)

			encoded, err := Encode(img, tt.message, tt.password)
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}

			got, err := Decode(encoded, tt.password)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if !bytes.Equal(got, tt.message) {
				t.Errorf("Decode(Encode(m)) = %q, want %q", got, tt.message)
			}
		})
	}
}

func TestEncodeCapacityBoundary(t *testing.T) {
	img := newTestImage(10, 10)
	max := MaxPayloadBytes(10, 10) // 33

	if _, err := Encode(img, bytes.Repeat([]byte{'a'}, max), ""); err != nil {
		t.Errorf("Encode() at exact capacity failed: %v", err)
	}

	_, err := Encode(img, bytes.Repeat([]byte{'a'}, max+1), "")
	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("Encode() one past capacity: error = %v, want *CapacityError", err)
	}
	if capErr.Required != max+1 || capErr.Available != max {
		t.Errorf("CapacityError = {Required: %d, Available: %d}, want {%d, %d}",
			capErr.Required, capErr.Available, max+1, max)
	}
}

func TestEncodeDoesNotMutateInput(t *testing.T) {
	img := newTestImage(10, 10)
	original := append([]byte(nil), img.Pix...)

	if _, err := Encode(img, []byte("HELLO"), "pw"); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !bytes.Equal(img.Pix, original) {
		t.Error("Encode mutated its input image")
	}
}

func TestEncodeChangesChannelsByAtMostOne(t *testing.T) {
	img := newTestImage(16, 16)
	message := bytes.Repeat([]byte{0xA5}, MaxPayloadBytes(16, 16))

	encoded, err := Encode(img, message, "pw")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	for i := range img.Pix {
		before, after := int(img.Pix[i]), int(encoded.Pix[i])
		diff := before - after
		if diff < -1 || diff > 1 {
			t.Fatalf("Pix[%d] changed from %d to %d, want difference of at most 1", i, before, after)
		}
	}
}

func TestEncodeLeavesTrailingChannelsUntouched(t *testing.T) {
	img := newTestImage(50, 50)
	message := []byte("tiny")

	encoded, err := Encode(img, message, "")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	writtenBits := (4 + len(message)) * 8
	ch := NewBitChannel(img)
	enc := NewBitChannel(encoded)
	for i := writtenBits; i < ch.Capacity(); i++ {
		if ch.Read(i) != enc.Read(i) {
			t.Fatalf("bit slot %d beyond the written range changed", i)
		}
	}
}

func TestDecodeWrongPasswordYieldsGarbageNotError(t *testing.T) {
	img := newTestImage(30, 30)
	message := []byte("attack at dawn")

	encoded, err := Encode(img, message, "right")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	got, err := Decode(encoded, "wrong")
	if err != nil {
		t.Fatalf("Decode() with wrong password errored: %v", err)
	}
	if bytes.Equal(got, message) {
		t.Error("Decode() with wrong password recovered the plaintext")
	}
	if len(got) != len(message) {
		t.Errorf("Decode() with wrong password returned %d bytes, want %d", len(got), len(message))
	}
}

func TestDecodeNeverEncodedImage(t *testing.T) {
	// The gradient's LSBs declare a length far beyond what a small image
	// can hold.
	img := newTestImage(6, 6)
	for i := range img.Pix {
		img.Pix[i] |= 1
	}

	_, err := Decode(img, "")
	if !errors.Is(err, ErrNoHiddenMessage) {
		t.Errorf("Decode() error = %v, want ErrNoHiddenMessage", err)
	}
}

func TestDecodeImageTooSmallForHeader(t *testing.T) {
	img := newTestImage(2, 2)
	_, err := Decode(img, "")
	if !errors.Is(err, ErrNoHiddenMessage) {
		t.Errorf("Decode() error = %v, want ErrNoHiddenMessage", err)
	}
}

func TestEncodeAcceptsNonNRGBAInput(t *testing.T) {
	// JPEG decodes to YCbCr; the codec must accept any image.Image.
	src := image.NewYCbCr(image.Rect(0, 0, 12, 12), image.YCbCrSubsampleRatio420)
	for i := range src.Y {
		src.Y[i] = byte(i * 3)
	}
	for i := range src.Cb {
		src.Cb[i] = 128
		src.Cr[i] = 128
	}

	message := []byte("carried over from lossy input")
	encoded, err := Encode(src, message, "pw")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	got, err := Decode(encoded, "pw")
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !bytes.Equal(got, message) {
		t.Errorf("Decode() = %q, want %q", got, message)
	}
}

func TestConcurrentEncodesShareNothing(t *testing.T) {
	// Independent Encode calls on different images must not interfere.
	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func(n int) {
			img := newTestImage(30, 30)
			message := bytes.Repeat([]byte{byte('a' + n)}, 50)
			encoded, err := Encode(img, message, "pw")
			if err != nil {
				done <- err
				return
			}
			got, err := Decode(encoded, "pw")
			if err != nil {
				done <- err
				return
			}
			if !bytes.Equal(got, message) {
				done <- errors.New("round trip mismatch under concurrency")
				return
			}
			done <- nil
		}(i)
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Fatal(err)
		}
	}
}

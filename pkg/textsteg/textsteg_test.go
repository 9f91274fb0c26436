package textsteg

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeDecodeTextRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		cover    string
		secret   []byte
		password string
	}{
		{"no password", "Nothing to see here, just a normal sentence.", []byte("meet at noon"), ""},
		{"with password", "Totally innocuous status update!", []byte("the cake is a lie"), "s3cret"},
		{"single byte secret", "Hi there", []byte{0x42}, "k"},
		{"unicode cover and secret", "こんにちは、世界", []byte("café ☕"), "pässword"},
		{"single rune cover", "A", []byte("short cover"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steg, err := EncodeText(tt.cover, tt.secret, tt.password)
			if err != nil {
				t.Fatalf("EncodeText() error: %v", err)
			}

			got, err := DecodeText(steg, tt.password)
			if err != nil {
				t.Fatalf("DecodeText() error: %v", err)
			}
			if !bytes.Equal(got, tt.secret) {
				t.Errorf("DecodeText() = %q, want %q", got, tt.secret)
			}
		})
	}
}

func TestEncodeTextKeepsCoverVisible(t *testing.T) {
	cover := "An ordinary message."
	steg, err := EncodeText(cover, []byte("hidden"), "")
	if err != nil {
		t.Fatalf("EncodeText() error: %v", err)
	}

	if got := StripInvisible(steg); got != cover {
		t.Errorf("StripInvisible() = %q, want the untouched cover %q", got, cover)
	}
	if !HasHiddenMessage(steg) {
		t.Error("HasHiddenMessage() = false for freshly encoded text")
	}
	if HasHiddenMessage(cover) {
		t.Error("HasHiddenMessage() = true for plain cover text")
	}
}

func TestDecodeTextWrongPassword(t *testing.T) {
	steg, err := EncodeText("Cover story.", []byte("classified"), "right")
	if err != nil {
		t.Fatalf("EncodeText() error: %v", err)
	}

	_, err = DecodeText(steg, "wrong")
	if !errors.Is(err, ErrIntegrityCheckFailed) {
		t.Errorf("DecodeText() with wrong password: error = %v, want ErrIntegrityCheckFailed", err)
	}
}

func TestDecodeTextNoMarkers(t *testing.T) {
	_, err := DecodeText("Just visible text, nothing hidden.", "")
	if !errors.Is(err, ErrNoHiddenMessage) {
		t.Errorf("DecodeText() error = %v, want ErrNoHiddenMessage", err)
	}
}

func TestDecodeTextTruncatedPayload(t *testing.T) {
	steg, err := EncodeText("Cover.", []byte("a longer secret message"), "")
	if err != nil {
		t.Fatalf("EncodeText() error: %v", err)
	}

	// Chop off carrier runes before the end marker to simulate a platform
	// that stripped part of the invisible run.
	runes := []rune(steg)
	var mangled []rune
	removed := 0
	for _, r := range runes {
		if (r == zero || r == one) && removed < 5 {
			removed++
			continue
		}
		mangled = append(mangled, r)
	}

	_, err = DecodeText(string(mangled), "")
	if !errors.Is(err, ErrCorruptedData) {
		t.Errorf("DecodeText() of mangled text: error = %v, want ErrCorruptedData", err)
	}
}

func TestEncodeTextValidation(t *testing.T) {
	if _, err := EncodeText("   ", []byte("secret"), ""); err == nil {
		t.Error("EncodeText() accepted a blank cover")
	}
	if _, err := EncodeText("cover", nil, ""); err == nil {
		t.Error("EncodeText() accepted an empty secret")
	}
}

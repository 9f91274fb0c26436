package codec

// MaxPayloadBytes returns how many payload bytes an image of the given
// dimensions can hold: one LSB slot per RGB channel value, minus the 32-bit
// length header, divided into whole bytes. Images too small to hold even the
// header report 0, never a negative count.
func MaxPayloadBytes(width, height int) int {
	bits := width*height*3 - headerBits
	if bits < 0 {
		return 0
	}
	return bits / 8
}

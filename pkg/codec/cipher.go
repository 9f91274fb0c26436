package codec

// ApplyKeystream XORs data against the password's raw bytes repeated
// cyclically. An empty password is the identity transform. XOR is its own
// inverse, so the same call both obfuscates and recovers.
//
// This is reversible obfuscation, not authenticated encryption: decoding
// with the wrong password yields garbage bytes rather than an error.
func ApplyKeystream(data []byte, password string) []byte {
	if password == "" {
		return data
	}
	key := []byte(password)
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ key[i%len(key)]
	}
	return out
}

package protocol

// Checksum computes the XOR fold over the given bytes.
//
// The same fold serves two purposes: it is the trailing checksum of every
// frame (computed over the raw command and parameter bytes), and it is the
// one byte integrity probe returned by the Verify command (computed over a
// full flash page). It is a low-cost sanity check, not a digest; collisions
// are possible.
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum ^= b
	}
	return sum
}

package sink

// Checksum returns the djb2 hash of b: starting from 5381, each byte is
// folded in as h = h*33 + c.
//
// It only forces the buffer to be read in full; for concurrent strategies
// the byte order, and therefore the value, is not deterministic.
func Checksum(b []byte) uint32 {
	h := uint32(5381)
	for _, c := range b {
		h = h*33 + uint32(c)
	}
	return h
}

// CountPayloads splits b into PayloadLen chunks and returns how many of them
// equal the payload. ok is false if b is not a whole number of chunks or any
// chunk differs from the payload.
func CountPayloads(b []byte) (n int, ok bool) {
	if len(b)%PayloadLen != 0 {
		return 0, false
	}
	for off := 0; off < len(b); off += PayloadLen {
		if [PayloadLen]byte(b[off:off+PayloadLen]) != payload {
			return n, false
		}
		n++
	}
	return n, true
}

package malloc

// poisonFill repeating pattern written into freed blocks by debug
// builds so that a use-after-free reads back as recognisable garbage
// instead of plausible zero bytes.
var poisonFill = make([]byte, 64)

func init() {
	for i := range poisonFill {
		poisonFill[i] = 0xcd
	}
}

func maxI64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func minI64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

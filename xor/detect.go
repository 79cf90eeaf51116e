package xor

// SampleSize is the number of leading bytes examined by DetectSeed.
const SampleSize = 200

// Bytes that decode to solid runs of a single colour register (or the regular
// 0101/1010 patterns) in a 2-bit-per-pixel raster. Backgrounds are mostly made
// of these so a correct seed produces lots of them.
func solid(b byte) bool {
	switch b {
	case 0x00, 0x55, 0xaa, 0xff:
		return true
	}
	return false
}

// Score returns how many of the first SampleSize bytes of data decode to a
// solid byte with the given seed.
func Score(data []byte, seed byte) int {
	if len(data) > SampleSize {
		data = data[:SampleSize]
	}
	var n int
	key := seed
	for _, b := range data {
		if solid(b ^ key) {
			n++
		}
		key++
	}
	return n
}

// DetectSeed guesses the seed data was ciphered with by trying all 256 seeds
// and keeping the one with the highest Score. Ties go to the lowest seed.
//
// This is a best-effort heuristic and not a key recovery. Pictures without
// large areas of flat colour, or very short files, can produce the wrong
// answer; callers that know the seed for an asset should use it instead.
func DetectSeed(data []byte) (seed byte, score int) {
	score = -1
	for s := 0; s < 256; s++ {
		if n := Score(data, byte(s)); n > score {
			seed, score = byte(s), n
		}
	}
	return
}

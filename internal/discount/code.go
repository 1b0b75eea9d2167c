package discount

import "crypto/rand"

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCode returns prefix plus a random uppercase-alphanumeric suffix of
// the given length, drawn from crypto/rand. Uniqueness is probabilistic; the
// store does not check for collisions.
func GenerateCode(prefix string, length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand failing means the process is unusable
	}
	for i, b := range buf {
		buf[i] = codeCharset[int(b)%len(codeCharset)]
	}
	return prefix + string(buf)
}

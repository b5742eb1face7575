package bot

import "math/rand"

const nameCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateBotName returns a display name like "Fighter_k3x9qz".
func GenerateBotName() string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = nameCharset[rand.Intn(len(nameCharset))]
	}
	return "Fighter_" + string(suffix)
}

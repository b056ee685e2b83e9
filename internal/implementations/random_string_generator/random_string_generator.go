package randomstringgenerator

import (
	"crypto/rand"
	"encoding/base64"

	"blog/internal/core/domain/user"
)

const TOKEN_SIZE_BYTES = 32

type Generator struct {
	size int
}

func NewGenerator() *Generator {
	return &Generator{size: TOKEN_SIZE_BYTES}
}

// GenerateActionToken returns a URL-safe token carrying 256 bits of randomness.
func (g *Generator) GenerateActionToken() user.ActionToken {
	b := make([]byte, g.size)
	if _, err := rand.Read(b); err != nil {
		panic("Could not read random bytes.")
	}
	return user.ActionToken(base64.RawURLEncoding.EncodeToString(b))
}

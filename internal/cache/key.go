package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Key identifies one rendered document: the file, how it was parsed, the
// requested line range (0-0 for the whole file) and the content digest.
type Key struct {
	Path     string
	Language string
	Start    int
	End      int
	Digest   string

	// Display is the path spelling rendered into the document header, when it
	// differs from Path.
	Display string
}

// String is the stable textual form used as the persistent cache key.
func (k Key) String() string {
	s := fmt.Sprintf("%s|%s|%d-%d|%s", k.Path, k.Language, k.Start, k.End, k.Digest)
	if k.Display != "" && k.Display != k.Path {
		s += "|" + k.Display
	}
	return s
}

// Digest returns the hex SHA-256 of content.
func Digest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

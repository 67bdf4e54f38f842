package ident

import (
	"strings"

	"github.com/google/uuid"
)

const idLength = 12

// New returns a short random identifier with an entity prefix, e.g.
// "dep_1f0a9c2b44de". Uniqueness is enforced by the primary key.
func New(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + raw[:idLength]
}

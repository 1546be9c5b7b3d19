package meta

import (
	"fmt"

	"github.com/sasgo/sascore/errs"
	"github.com/sasgo/sascore/internal/hash"
)

// nameTracker detects duplicate variable names while building a schema.
// SAS declares variable names unique within a file, but a malformed or
// hand-edited file can still carry a duplicate; Arrow requires unique field
// names, so the collision has to be caught here rather than surfacing as a
// confusing Arrow-level error later.
type nameTracker struct {
	seen         map[uint64]string
	hasCollision bool
}

func newNameTracker() *nameTracker {
	return &nameTracker{seen: make(map[uint64]string)}
}

// track records name and reports a duplicate-name error if it has already
// been seen. Two distinct names that happen to share an xxHash64 digest are
// not treated as an error — astronomically unlikely at SAS's variable-count
// scale — but the collision is still recorded so callers can inspect it.
func (t *nameTracker) track(name string) error {
	h := hash.ID(name)

	existing, ok := t.seen[h]
	if ok {
		if existing == name {
			return fmt.Errorf("%w: duplicate variable name %q", errs.ErrConfig, name)
		}
		t.hasCollision = true
	}

	t.seen[h] = name

	return nil
}

package types

import "fmt"

// CollisionPolicy decides what happens when a planned destination file
// already exists.
type CollisionPolicy string

const (
	CollisionRename    CollisionPolicy = "rename" // append _<n> to the stem until free
	CollisionSkip      CollisionPolicy = "skip"
	CollisionOverwrite CollisionPolicy = "overwrite"
)

// Validate rejects unknown policies. The empty string is allowed and
// treated as the rename default at execution time.
func (p CollisionPolicy) Validate() error {
	switch p {
	case "", CollisionRename, CollisionSkip, CollisionOverwrite:
		return nil
	}
	return fmt.Errorf("unknown collision policy: %q", string(p))
}

// OrDefault resolves the empty policy to rename.
func (p CollisionPolicy) OrDefault() CollisionPolicy {
	if p == "" {
		return CollisionRename
	}
	return p
}

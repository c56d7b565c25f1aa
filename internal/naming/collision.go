package naming

import (
	"sync"
)

// Claims records which input owns each output path within one run. The first
// input to claim a path keeps it; later claimants are refused so that two
// jobs never write the same file. All methods are goroutine-safe.
type Claims struct {
	mu     sync.Mutex
	owners map[string]string // output path → input path that owns it
}

// NewClaims creates a ready-to-use claim table.
func NewClaims() *Claims {
	return &Claims{owners: make(map[string]string)}
}

// Claim registers output for input. It returns ("", true) when the path was
// free or already owned by input, and (owner, false) when another input
// claimed it first.
func (c *Claims) Claim(input, output string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	owner, exists := c.owners[output]
	if !exists || owner == input {
		c.owners[output] = input
		return "", true
	}
	return owner, false
}

// Len returns the number of claimed output paths.
func (c *Claims) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.owners)
}

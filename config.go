package rbmap

import (
	"fmt"

	"github.com/npillmayer/rbmap/pool"
)

// Placement selects how Insert attaches new nodes.
type Placement int

const (
	// PlaceByKey descends by key comparison, as any binary search tree does.
	PlaceByKey Placement = iota
	// PlaceLevelFill attaches a new node at the first free child slot found
	// by a breadth-first scan from the root, regardless of its key. No insert
	// fix-up is run in this mode; only the root is coloured black.
	//
	// The resulting tree is not ordered by key. Lookups which miss a key by
	// comparison search fall back to a level-order scan.
	PlaceLevelFill
)

func (p Placement) String() string {
	switch p {
	case PlaceByKey:
		return "by-key"
	case PlaceLevelFill:
		return "level-fill"
	}
	return fmt.Sprintf("Placement(%d)", int(p))
}

// Config configures a Map. The zero value is a valid configuration for an
// unbounded map placing by key and pooling through pool.Default().
type Config struct {
	// MaxSize is an optional capacity ceiling. Zero means unbounded, negative
	// values are clamped to zero.
	MaxSize int
	// Placement selects the insertion policy.
	Placement Placement
	// Registry supplies nodes and scratch buffers. Nil selects pool.Default().
	Registry *pool.Registry
}

func (cfg Config) normalized() Config {
	if cfg.MaxSize < 0 {
		cfg.MaxSize = 0
	}
	if cfg.Registry == nil {
		cfg.Registry = pool.Default()
	}
	return cfg
}

func (cfg Config) validate() error {
	cfg = cfg.normalized()
	if cfg.Placement != PlaceByKey && cfg.Placement != PlaceLevelFill {
		return fmt.Errorf("%w: placement %d", ErrArgumentOutOfRange, int(cfg.Placement))
	}
	return nil
}

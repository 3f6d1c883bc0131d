package author

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ID strategy names accepted by NewIDGenerator.
const (
	IDSequential = "sequential"
	IDCounter    = "counter"
	IDNanoID     = "nanoid"
	IDUUID       = "uuid"
)

// IDStrategies lists the known strategies, default first.
var IDStrategies = []string{IDSequential, IDCounter, IDNanoID, IDUUID}

const (
	nanoIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	nanoIDLength   = 8
)

// IDGenerator produces the id for a new author about to be appended to s.
type IDGenerator interface {
	NextID(s *Store) string
}

// NewIDGenerator returns the generator for the named strategy.
// An empty name selects IDSequential.
func NewIDGenerator(strategy string) (IDGenerator, error) {
	switch strategy {
	case "", IDSequential:
		return SequentialIDs{}, nil
	case IDCounter:
		return &CounterIDs{}, nil
	case IDNanoID:
		return NanoIDs{}, nil
	case IDUUID:
		return UUIDs{}, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}

// SequentialIDs derives the id from the current store size: Len()+1.
//
// Deleting an author and then creating one can therefore reuse an id that
// is still present. The behaviour is kept for compatibility with existing
// clients; use CounterIDs when ids must stay unique.
type SequentialIDs struct{}

func (SequentialIDs) NextID(s *Store) string {
	return strconv.Itoa(s.Len() + 1)
}

// CounterIDs issues increasing numeric ids that never go backwards and never
// repeat a numeric id present in the store.
type CounterIDs struct {
	last int
}

func (c *CounterIDs) NextID(s *Store) string {
	for _, a := range s.authors {
		if n, err := strconv.Atoi(a.ID); err == nil && n > c.last {
			c.last = n
		}
	}
	c.last++
	return strconv.Itoa(c.last)
}

// NanoIDs issues short random ids.
type NanoIDs struct{}

func (NanoIDs) NextID(*Store) string {
	return gonanoid.MustGenerate(nanoIDAlphabet, nanoIDLength)
}

// UUIDs issues time-ordered UUIDv7 ids.
type UUIDs struct{}

func (UUIDs) NextID(*Store) string {
	return uuid.Must(uuid.NewV7()).String()
}

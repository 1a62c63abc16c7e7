// Package selection picks quiz questions from an oversampled candidate
// pool using a uniform shuffle.
package selection

import (
	"math/rand"
	"sync"
	"time"

	"quiz-platform/internal/models"
)

// Selector handles random selection of questions. One selector is
// shared across requests; the mutex guards the generator state.
type Selector struct {
	mu   sync.Mutex
	rand *rand.Rand
}

func NewSelector() *Selector {
	return &Selector{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSeededSelector builds a deterministic selector for tests.
func NewSeededSelector(seed int64) *Selector {
	return &Selector{rand: rand.New(rand.NewSource(seed))}
}

// Pick returns count questions drawn uniformly from candidates, in
// shuffled order. The input slice is not modified. If fewer than count
// candidates exist, all of them come back shuffled; the caller decides
// whether a shortfall is an error.
func (s *Selector) Pick(candidates []models.Question, count int) []models.Question {
	shuffled := make([]models.Question, len(candidates))
	copy(shuffled, candidates)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

// Package memory provides mutex-guarded in-memory implementations of the
// storage ports, for single-instance mode and unit tests. Semantics mirror
// the mongo adapter: unique indexes, atomic counter movement, soft deletes.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/ripple-social/ripple/internal/domain"
)

// Store holds all four collections behind one mutex.
type Store struct {
	mu  sync.Mutex
	seq int64

	users         map[uuid.UUID]*domain.User
	posts         map[uuid.UUID]*domain.Post
	interactions  map[uuid.UUID]*domain.Interaction
	relationships map[uuid.UUID]*domain.Relationship

	postSeq        map[uuid.UUID]int64
	interactionSeq map[uuid.UUID]int64
	relSeq         map[uuid.UUID]int64
}

func NewStore() *Store {
	return &Store{
		users:          make(map[uuid.UUID]*domain.User),
		posts:          make(map[uuid.UUID]*domain.Post),
		interactions:   make(map[uuid.UUID]*domain.Interaction),
		relationships:  make(map[uuid.UUID]*domain.Relationship),
		postSeq:        make(map[uuid.UUID]int64),
		interactionSeq: make(map[uuid.UUID]int64),
		relSeq:         make(map[uuid.UUID]int64),
	}
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

// Users returns the user store view.
func (s *Store) Users() domain.UserStore { return (*userStore)(s) }

// Posts returns the post store view.
func (s *Store) Posts() domain.PostStore { return (*postStore)(s) }

// Interactions returns the interaction store view.
func (s *Store) Interactions() domain.InteractionStore { return (*interactionStore)(s) }

// Relationships returns the relationship store view.
func (s *Store) Relationships() domain.RelationshipStore { return (*relationshipStore)(s) }

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func copyPost(p *domain.Post) domain.Post {
	out := *p
	out.Hashtags = append([]string(nil), p.Hashtags...)
	out.Mentions = append([]uuid.UUID(nil), p.Mentions...)
	return out
}

func copyInteraction(i *domain.Interaction) domain.Interaction {
	out := *i
	if i.Comment != nil {
		comment := *i.Comment
		out.Comment = &comment
	}
	return out
}

// sortNewestFirst orders by creation time descending, falling back to
// insertion order for equal timestamps so pagination stays deterministic
// under fake clocks.
func sortNewestFirst[T any](items []T, createdSeq func(T) (int64, int64)) {
	sort.SliceStable(items, func(a, b int) bool {
		tsA, seqA := createdSeq(items[a])
		tsB, seqB := createdSeq(items[b])
		if tsA != tsB {
			return tsA > tsB
		}
		return seqA > seqB
	})
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

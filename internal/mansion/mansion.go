package mansion

import (
	"log/slog"

	"detectivequest/internal/errors"
	"github.com/zyedidia/generic/mapset"
)

var (
	ErrNoRoot     = errors.NewSentinel("mansion has no entrance")
	ErrSharedRoom = errors.NewSentinel("room reachable by more than one path")
)

// Mansion owns a fixed tree of rooms. It is never mutated after construction.
type Mansion struct {
	Root  *Room
	rooms []*Room
}

// New checks that the rooms hanging from root form a tree: every room is reached by exactly one path, which also
// rules out cycles.
func New(root *Room) (*Mansion, error) {
	if root == nil {
		return nil, ErrNoRoot
	}

	var (
		rooms   []*Room
		visited = mapset.New[*Room]()
		pending = []*Room{root}
	)
	for len(pending) > 0 {
		current := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if visited.Has(current) {
			return nil, errors.Wrap(ErrSharedRoom, "validate mansion", slog.String("room", current.Name))
		}
		visited.Put(current)
		rooms = append(rooms, current)

		// Right first so that rooms come out in pre-order.
		if current.Right != nil {
			pending = append(pending, current.Right)
		}
		if current.Left != nil {
			pending = append(pending, current.Left)
		}
	}

	return &Mansion{Root: root, rooms: rooms}, nil
}

// Build creates the Detective Quest mansion: an entrance hall with two wings of two rooms each.
func Build() *Mansion {
	hall := NewRoom("Hall de Entrada", "Pegada de lama")
	hall.Left = NewRoom("Cozinha", "Copo quebrado")
	hall.Right = NewRoom("Sala de Estar", "Lenço perfumado")

	hall.Left.Left = NewRoom("Despensa", "")
	hall.Left.Right = NewRoom("Jardim", "Pegada de sapato")
	hall.Right.Left = NewRoom("Biblioteca", "Carta rasgada")
	hall.Right.Right = NewRoom("Quarto", "Perfume caro")

	m, err := New(hall)
	if err != nil {
		panic(err)
	}
	return m
}

// Rooms lists every room in pre-order, starting at the root.
func (m *Mansion) Rooms() []*Room {
	return m.rooms
}

func (m *Mansion) Len() int {
	return len(m.rooms)
}

// Depth is the number of edges on the longest path from the root to a leaf.
func (m *Mansion) Depth() int {
	return depth(m.Root)
}

func depth(r *Room) int {
	if r == nil || r.IsLeaf() {
		return 0
	}
	return 1 + max(depth(r.Left), depth(r.Right))
}

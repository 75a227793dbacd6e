package mansion

// Direction selects a child of a room.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Room is a node of the mansion tree. An empty Clue means the room holds nothing.
type Room struct {
	Name  string
	Clue  string
	Left  *Room
	Right *Room
}

func NewRoom(name, clue string) *Room {
	return &Room{Name: name, Clue: clue}
}

func (r *Room) HasClue() bool {
	return r.Clue != ""
}

func (r *Room) IsLeaf() bool {
	return r.Left == nil && r.Right == nil
}

// Child returns the room in direction d, or nil when that way is a dead end.
func (r *Room) Child(d Direction) *Room {
	switch d {
	case Left:
		return r.Left
	case Right:
		return r.Right
	}
	return nil
}

// Package casefile loads a mansion and its clue links from an ini file.
//
// Rooms live in sections Room1..RoomN with Name, Clue, Left and Right keys, where Left and Right hold room ids
// and 0 means no room. Room1 is the entrance. Clue links live in sections Clue1..ClueN with Text and Suspect keys
// and are inserted into the suspect index in section order.
package casefile

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"detectivequest/internal/errors"
	"detectivequest/internal/mansion"
	"detectivequest/internal/suspects"
	"gopkg.in/ini.v1"
)

const (
	MaxRooms = 63
	MaxClues = 64

	DefaultTitle = "Detective Quest"
)

var ErrInvalidCase = errors.NewSentinel("invalid case file")

// Case is everything needed to run an investigation.
type Case struct {
	Title        string
	Mansion      *mansion.Mansion
	Associations []suspects.Association
}

// Default returns the built-in Detective Quest case.
func Default() *Case {
	return &Case{
		Title:        DefaultTitle,
		Mansion:      mansion.Build(),
		Associations: slices.Clone(suspects.DefaultAssociations),
	}
}

// Index builds a fresh suspect index from the case's clue links.
func (c *Case) Index() *suspects.Index {
	return suspects.NewIndex(c.Associations...)
}

// Load reads a case file from path.
func Load(path string) (*Case, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, errors.Wrap(err, "read case file", slog.String("path", path))
	}
	c, err := fromINI(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "load case file", slog.String("path", path))
	}
	return c, nil
}

// Parse reads a case file from memory.
func Parse(data []byte) (*Case, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse case file")
	}
	return fromINI(cfg)
}

func invalid(msg string, attrs ...slog.Attr) error {
	return errors.Wrap(ErrInvalidCase, msg, attrs...)
}

// checkSections rejects RoomN and ClueN sections that the loaders would never read.
func checkSections(cfg *ini.File) error {
	for _, name := range cfg.SectionStrings() {
		for prefix, limit := range map[string]int{"Room": MaxRooms, "Clue": MaxClues} {
			suffix, ok := strings.CutPrefix(name, prefix)
			if !ok {
				continue
			}
			n, err := strconv.Atoi(suffix)
			if err != nil || n < 1 || n > limit || strconv.Itoa(n) != suffix {
				return invalid("section out of range",
					slog.String("section", name), slog.Int("min", 1), slog.Int("max", limit))
			}
		}
	}
	return nil
}

func fromINI(cfg *ini.File) (*Case, error) {
	if err := checkSections(cfg); err != nil {
		return nil, err
	}
	title := cfg.Section("Case").Key("Title").MustString(DefaultTitle)

	m, err := loadMansion(cfg)
	if err != nil {
		return nil, err
	}
	assocs, err := loadAssociations(cfg)
	if err != nil {
		return nil, err
	}

	return &Case{
		Title:        title,
		Mansion:      m,
		Associations: assocs,
	}, nil
}

func loadMansion(cfg *ini.File) (*mansion.Mansion, error) {
	var registry [MaxRooms + 1]*mansion.Room

	// First pass: create rooms
	count := 0
	for i := 1; i <= MaxRooms; i++ {
		sectionName := fmt.Sprintf("Room%d", i)
		if !cfg.HasSection(sectionName) {
			continue
		}
		sec := cfg.Section(sectionName)
		name := sec.Key("Name").String()
		if name == "" {
			return nil, invalid("room without name", slog.String("section", sectionName))
		}
		registry[i] = mansion.NewRoom(name, sec.Key("Clue").String())
		count++
	}
	if registry[1] == nil {
		return nil, invalid("missing entrance", slog.String("section", "Room1"))
	}

	// Second pass: link children
	var parent [MaxRooms + 1]int
	for i := 1; i <= MaxRooms; i++ {
		if registry[i] == nil {
			continue
		}
		sec := cfg.Section(fmt.Sprintf("Room%d", i))
		for _, d := range []mansion.Direction{mansion.Left, mansion.Right} {
			key := "Left"
			if d == mansion.Right {
				key = "Right"
			}
			child := sec.Key(key).MustInt(0)
			if child == 0 {
				continue
			}
			attrs := []slog.Attr{slog.Int("room", i), slog.String("key", key), slog.Int("child", child)}
			if child < 0 || child > MaxRooms || registry[child] == nil {
				return nil, invalid("unknown room", attrs...)
			}
			if child == 1 {
				return nil, invalid("entrance cannot be a child", attrs...)
			}
			if parent[child] != 0 {
				return nil, invalid("room has two parents", append(attrs, slog.Int("parent", parent[child]))...)
			}
			parent[child] = i
			if d == mansion.Left {
				registry[i].Left = registry[child]
			} else {
				registry[i].Right = registry[child]
			}
		}
	}

	m, err := mansion.New(registry[1])
	if err != nil {
		return nil, errors.Join(ErrInvalidCase, err)
	}
	if m.Len() != count {
		return nil, invalid("rooms unreachable from the entrance",
			slog.Int("rooms", count), slog.Int("reachable", m.Len()))
	}
	return m, nil
}

func loadAssociations(cfg *ini.File) ([]suspects.Association, error) {
	var assocs []suspects.Association
	for i := 1; i <= MaxClues; i++ {
		sectionName := fmt.Sprintf("Clue%d", i)
		if !cfg.HasSection(sectionName) {
			continue
		}
		sec := cfg.Section(sectionName)
		a := suspects.Association{
			Clue:    sec.Key("Text").String(),
			Suspect: sec.Key("Suspect").String(),
		}
		if a.Clue == "" || a.Suspect == "" {
			return nil, invalid("clue link needs Text and Suspect", slog.String("section", sectionName))
		}
		assocs = append(assocs, a)
	}
	return assocs, nil
}

package game

import (
	"io"
	"log/slog"

	"detectivequest/internal/casefile"
	"detectivequest/internal/catalog"
	"detectivequest/internal/mansion"
	"detectivequest/internal/suspects"
)

// Phase is the stage of an investigation.
type Phase string

const (
	// PhaseExploring means the player stands in Session.Current and picks a path.
	PhaseExploring Phase = "exploring"
	// PhaseAccusing means the player left the mansion and must name a suspect.
	PhaseAccusing Phase = "accusing"
	PhaseFinished Phase = "finished"
)

const (
	PromptMove    = "Escolha o caminho (e = esquerda, d = direita, s = sair): "
	PromptSuspect = "\nQuem você acha que é o culpado? "
)

// Session is one player's investigation. It is not safe for concurrent use.
type Session struct {
	Out    io.Writer
	Styled bool
	// Strict makes the verdict count only the clues the player collected.
	Strict bool
	Title  string

	Mansion *mansion.Mansion
	Index   *suspects.Index
	Clues   catalog.Catalog
	// Current is nil once the player has left the mansion.
	Current *mansion.Room
	Path    []mansion.Direction
	Phase   Phase
	Verdict *Verdict

	logger *slog.Logger
}

type Options struct {
	Out    io.Writer
	Logger *slog.Logger
	Styled bool
	Strict bool
}

// NewSession greets the player and places them in the entrance of the case's mansion.
func NewSession(c *casefile.Case, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Session{
		Out:     opts.Out,
		Styled:  opts.Styled,
		Strict:  opts.Strict,
		Title:   c.Title,
		Mansion: c.Mansion,
		Index:   c.Index(),
		Phase:   PhaseExploring,
		logger:  logger.With("source", "Session"),
	}

	s.say(s.paint(styleTitle, "Bem-vindo ao "+s.Title+"!"))
	s.say("Explore a mansão e colete pistas...")
	s.enter(c.Mansion.Root)
	return s
}

// Prompt is what the session expects next from the player.
func (s *Session) Prompt() string {
	switch s.Phase {
	case PhaseExploring:
		return PromptMove
	case PhaseAccusing:
		return PromptSuspect
	}
	return ""
}

// Done reports whether the investigation is over.
func (s *Session) Done() bool {
	return s.Phase == PhaseFinished
}

package game

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"detectivequest/internal/mansion"
)

// Move is a navigation choice.
type Move int

const (
	MoveLeft Move = iota
	MoveRight
	MoveExit
)

func (m Move) String() string {
	switch m {
	case MoveLeft:
		return "esquerda"
	case MoveRight:
		return "direita"
	case MoveExit:
		return "sair"
	}
	return "desconhecido"
}

// ParseMove maps the keys e, d and s to a Move. Keys are case-sensitive.
func ParseMove(key rune) (Move, bool) {
	switch key {
	case 'e':
		return MoveLeft, true
	case 'd':
		return MoveRight, true
	case 's':
		return MoveExit, true
	}
	return 0, false
}

// HandleKey applies a navigation key. Unknown keys are rejected without changing the session.
func (s *Session) HandleKey(key rune) {
	move, ok := ParseMove(key)
	if !ok {
		s.logger.Debug("rejected key", slog.String("key", string(key)))
		s.say(s.paint(styleWarning, "Opção inválida!"))
		return
	}
	s.Move(move)
}

// Move walks to a child room or leaves the mansion. Walking into a missing room ends the exploration.
func (s *Session) Move(m Move) {
	if s.Phase != PhaseExploring {
		s.say("A exploração já terminou.")
		return
	}

	var d mansion.Direction
	switch m {
	case MoveExit:
		s.leave()
		return
	case MoveLeft:
		d = mansion.Left
	case MoveRight:
		d = mansion.Right
	default:
		s.say(s.paint(styleWarning, "Opção inválida!"))
		return
	}

	next := s.Current.Child(d)
	if next == nil {
		s.logger.Debug("dead end", slog.String("room", s.Current.Name), slog.String("direction", d.String()))
		s.say(s.paint(styleNotice, "Não há mais salas nesse caminho. A exploração termina aqui."))
		s.leave()
		return
	}
	s.Path = append(s.Path, d)
	s.enter(next)
}

// Handle executes a text command the way the current phase expects it: a navigation key while exploring, a suspect
// name while accusing. An empty command repeats where the player stands.
func (s *Session) Handle(cmd string) {
	trimmed := strings.TrimSpace(cmd)

	switch s.Phase {
	case PhaseExploring:
		if trimmed == "" {
			s.describe()
			return
		}
		key, size := utf8.DecodeRuneInString(trimmed)
		if size != len(trimmed) {
			s.say(s.paint(styleWarning, "Opção inválida!"))
			return
		}
		s.HandleKey(key)
	case PhaseAccusing:
		if trimmed == "" {
			s.say("Informe o nome de um suspeito.")
			return
		}
		s.Accuse(trimmed)
	case PhaseFinished:
		s.say("O jogo terminou.")
	}
}

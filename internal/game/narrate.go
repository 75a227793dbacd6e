package game

import (
	"log/slog"

	"detectivequest/internal/mansion"
)

// enter makes r the current room and collects its clue.
func (s *Session) enter(r *mansion.Room) {
	s.Current = r
	s.say()
	s.sayf("Você está em: %s\n", s.paint(styleRoom, r.Name))

	if !r.HasClue() {
		s.say(s.paint(styleNotice, "Nenhuma pista nesta sala."))
		s.logger.Debug("entered room", slog.String("room", r.Name))
		return
	}

	added := s.Clues.Add(r.Clue)
	s.sayf("Pista encontrada: %s\n", s.paint(styleClue, r.Clue))
	s.logger.Debug("entered room",
		slog.String("room", r.Name), slog.String("clue", r.Clue), slog.Bool("new", added))
}

// describe repeats where the player stands without collecting anything.
func (s *Session) describe() {
	if s.Current == nil {
		return
	}
	s.sayf("Você está em: %s\n", s.paint(styleRoom, s.Current.Name))
	if s.Current.HasClue() {
		s.sayf("Pista desta sala: %s\n", s.paint(styleClue, s.Current.Clue))
	}
}

// leave ends the exploration and lists the clues collected so far in alphabetical order.
func (s *Session) leave() {
	s.Current = nil
	s.Phase = PhaseAccusing
	s.logger.Debug("left mansion", slog.Int("clues", s.Clues.Len()))

	s.say()
	s.say(s.paint(styleTitle, "===== PISTAS COLETADAS ====="))
	if s.Clues.Len() == 0 {
		s.say(s.paint(styleNotice, "Nenhuma pista coletada."))
		return
	}
	for clue := range s.Clues.All() {
		s.sayf(" - %s\n", s.paint(styleClue, clue))
	}
}

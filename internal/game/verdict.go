package game

import (
	"iter"
	"log/slog"

	"detectivequest/internal/suspects"
)

// Threshold is the number of clues that must point at a suspect for an accusation to hold.
const Threshold = 2

type Verdict struct {
	Suspect  string `json:"suspect" jsonschema:"The accused suspect as typed by the player"`
	Evidence int    `json:"evidence" jsonschema:"Number of clues pointing at the suspect"`
	Accepted bool   `json:"accepted" jsonschema:"Whether the evidence reached the threshold"`
	Strict   bool   `json:"strict" jsonschema:"Whether only collected clues were counted"`
}

// Evaluate judges an accusation. By default every clue link in idx counts, whether or not the player found the
// clue; with strict only the collected clues count.
func Evaluate(idx *suspects.Index, suspect string, collected iter.Seq[string], strict bool) Verdict {
	var evidence int
	if strict {
		evidence = idx.CountCollected(suspect, collected)
	} else {
		evidence = idx.CountForSuspect(suspect)
	}
	return Verdict{
		Suspect:  suspect,
		Evidence: evidence,
		Accepted: evidence >= Threshold,
		Strict:   strict,
	}
}

// Accuse evaluates the player's guess and ends the investigation.
func (s *Session) Accuse(suspect string) Verdict {
	if s.Phase != PhaseAccusing {
		s.say("Ainda não é hora de acusar ninguém.")
		if s.Verdict != nil {
			return *s.Verdict
		}
		return Verdict{Suspect: suspect, Strict: s.Strict}
	}

	v := Evaluate(s.Index, suspect, s.Clues.All(), s.Strict)
	s.Verdict = &v
	s.logger.Debug("verdict",
		slog.String("suspect", v.Suspect), slog.Int("evidence", v.Evidence), slog.Bool("accepted", v.Accepted))

	s.say()
	if v.Accepted {
		s.sayWrapped(styleSuccess, "Você acertou! As pistas realmente apontam para "+suspect+"!")
	} else {
		s.sayWrapped(styleWarning, "Não há provas suficientes contra "+suspect+".")
	}
	s.finish()
	return v
}

// Abandon ends the investigation without an accusation.
func (s *Session) Abandon() {
	if s.Phase == PhaseFinished {
		return
	}
	s.Current = nil
	s.say()
	s.say("Nenhum suspeito foi acusado.")
	s.finish()
}

func (s *Session) finish() {
	s.Phase = PhaseFinished
	s.say()
	s.sayf("Fim do jogo. Obrigado por jogar %s!\n", s.Title)
}

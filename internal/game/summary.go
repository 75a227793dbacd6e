package game

type Summary struct {
	Title  string   `json:"title" jsonschema:"Case title"`
	Phase  Phase    `json:"phase" jsonschema:"exploring, accusing or finished"`
	Room   string   `json:"room,omitempty" jsonschema:"Current room name while exploring"`
	Path   []string `json:"path" jsonschema:"Directions taken from the entrance"`
	Clues  []string `json:"clues" jsonschema:"Collected clues in alphabetical order"`
	Prompt string   `json:"prompt,omitempty" jsonschema:"What the game expects next"`

	// Suspects is only filled while the game waits for an accusation.
	Suspects []string `json:"suspects,omitempty" jsonschema:"Names that can be accused"`
	Verdict  *Verdict `json:"verdict,omitempty" jsonschema:"Outcome of the accusation"`
}

func Summarize(s *Session) Summary {
	summary := Summary{
		Title:   s.Title,
		Phase:   s.Phase,
		Path:    []string{},
		Clues:   s.Clues.Slice(),
		Prompt:  s.Prompt(),
		Verdict: s.Verdict,
	}
	if s.Phase == PhaseAccusing {
		summary.Suspects = s.Index.Suspects()
	}
	if s.Current != nil {
		summary.Room = s.Current.Name
	}
	for _, d := range s.Path {
		summary.Path = append(summary.Path, d.String())
	}
	return summary
}

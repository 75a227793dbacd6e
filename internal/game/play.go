package game

import (
	"context"
	"io"

	"detectivequest/internal/errors"
)

// Input is where the player's choices come from.
type Input interface {
	ReadKey(prompt string) (rune, error)
	ReadLine(prompt string) (string, error)
}

type readResult[T any] struct {
	value T
	err   error
}

// readContext runs read in the background and gives up when ctx is done. The abandoned read keeps its goroutine
// until the input produces something or is closed.
func readContext[T any](ctx context.Context, read func() (T, error)) (T, error) {
	results := make(chan readResult[T], 1)
	go func() {
		value, err := read()
		results <- readResult[T]{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-results:
		return res.value, res.err
	}
}

// Play runs the session to the end, reading moves and then the accusation from in. End of input while exploring
// leaves the mansion; end of input while accusing abandons the case. Cancelling ctx interrupts a pending read.
func Play(ctx context.Context, s *Session, in Input) error {
	for s.Phase == PhaseExploring {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "play")
		}
		key, err := readContext(ctx, func() (rune, error) { return in.ReadKey(PromptMove) })
		if errors.Is(err, io.EOF) {
			s.Move(MoveExit)
			break
		}
		if err != nil {
			return errors.Wrap(err, "read move")
		}
		s.HandleKey(key)
	}

	if s.Phase != PhaseAccusing {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "play")
	}
	name, err := readContext(ctx, func() (string, error) { return in.ReadLine(PromptSuspect) })
	if errors.Is(err, io.EOF) {
		s.Abandon()
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "read suspect")
	}
	s.Accuse(name)
	return nil
}

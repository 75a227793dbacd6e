package game_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"detectivequest/internal/casefile"
	"detectivequest/internal/console"
	"detectivequest/internal/game"
	"detectivequest/internal/logging"
	"detectivequest/internal/mansion"
	"detectivequest/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, strict bool) (*game.Session, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	s := game.NewSession(casefile.Default(), game.Options{
		Out:    &out,
		Logger: testhelpers.NewLogger(io.Discard),
		Strict: strict,
	})
	return s, &out
}

func play(t *testing.T, input string, strict bool) (*game.Session, string) {
	t.Helper()
	s, out := newSession(t, strict)
	in := console.NewReader(strings.NewReader(input), out, true)
	require.NoError(t, game.Play(context.Background(), s, in))
	return s, out.String()
}

func TestNewSessionStartsInTheHall(t *testing.T) {
	s, out := newSession(t, false)

	require.Equal(t, game.PhaseExploring, s.Phase)
	require.Equal(t, "Hall de Entrada", s.Current.Name)
	require.Equal(t, []string{"Pegada de lama"}, s.Clues.Slice())
	require.Equal(t, game.PromptMove, s.Prompt())
	require.Equal(t, "Bem-vindo ao Detective Quest!\n"+
		"Explore a mansão e colete pistas...\n"+
		"\n"+
		"Você está em: Hall de Entrada\n"+
		"Pista encontrada: Pegada de lama\n", out.String())
}

func TestLeftLeftReachesTheEmptyPantry(t *testing.T) {
	s, out := newSession(t, false)

	s.HandleKey('e')
	s.HandleKey('e')

	require.Equal(t, "Despensa", s.Current.Name)
	require.Equal(t, game.PhaseExploring, s.Phase)
	require.Equal(t, []mansion.Direction{mansion.Left, mansion.Left}, s.Path)
	require.Equal(t, []string{"Copo quebrado", "Pegada de lama"}, s.Clues.Slice())
	require.True(t, strings.HasSuffix(out.String(), "Você está em: Despensa\nNenhuma pista nesta sala.\n"))
}

func TestDeadEndEndsExploration(t *testing.T) {
	s, out := newSession(t, false)

	s.HandleKey('d')
	s.HandleKey('d')
	require.Equal(t, "Quarto", s.Current.Name)

	s.HandleKey('e')
	require.Nil(t, s.Current)
	require.Equal(t, game.PhaseAccusing, s.Phase)
	require.Contains(t, out.String(), "Não há mais salas nesse caminho.")
	require.True(t, strings.HasSuffix(out.String(), "===== PISTAS COLETADAS =====\n"+
		" - Lenço perfumado\n"+
		" - Pegada de lama\n"+
		" - Perfume caro\n"))
}

func TestInvalidKeyChangesNothing(t *testing.T) {
	s, out := newSession(t, false)
	before := game.Summarize(s)
	out.Reset()

	for _, key := range []rune{'x', 'E', 'S', '1', 'ç'} {
		s.HandleKey(key)
	}

	require.Equal(t, before, game.Summarize(s))
	require.Equal(t, strings.Repeat("Opção inválida!\n", 5), out.String())
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		key  rune
		want game.Move
		ok   bool
	}{
		{key: 'e', want: game.MoveLeft, ok: true},
		{key: 'd', want: game.MoveRight, ok: true},
		{key: 's', want: game.MoveExit, ok: true},
		{key: 'D', ok: false},
		{key: 'q', ok: false},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			got, ok := game.ParseMove(tt.key)
			require.Equal(t, tt.ok, ok)
			if ok {
				require.Equal(t, tt.want, got)
			}
		})
	}
	require.Equal(t, "esquerda", game.MoveLeft.String())
	require.Equal(t, "direita", game.MoveRight.String())
	require.Equal(t, "sair", game.MoveExit.String())
}

func TestPlayScenarios(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		strict       bool
		wantClues    []string
		wantEvidence int
		wantAccepted bool
		wantOutput   []string
	}{
		{
			name:         "left twice then exit, accuse the gardener",
			input:        "e\ne\ns\nJardineiro\n",
			wantClues:    []string{"Copo quebrado", "Pegada de lama"},
			wantEvidence: 2,
			wantAccepted: true,
			wantOutput: []string{
				"===== PISTAS COLETADAS =====\n - Copo quebrado\n - Pegada de lama\n",
				"Você acertou! As pistas realmente apontam para Jardineiro!",
			},
		},
		{
			name:         "accuse the butler",
			input:        "e s Mordomo\n",
			wantClues:    []string{"Copo quebrado", "Pegada de lama"},
			wantEvidence: 1,
			wantAccepted: false,
			wantOutput:   []string{"Não há provas suficientes contra Mordomo."},
		},
		{
			name:         "exit immediately",
			input:        "s\nMadame Clarisse\n",
			wantClues:    []string{"Pegada de lama"},
			wantEvidence: 2,
			wantAccepted: true,
			wantOutput:   []string{"===== PISTAS COLETADAS =====\n - Pegada de lama\n"},
		},
		{
			name:         "strict mode counts collected clues only",
			input:        "s\nMadame Clarisse\n",
			strict:       true,
			wantClues:    []string{"Pegada de lama"},
			wantEvidence: 0,
			wantAccepted: false,
		},
		{
			name:         "strict mode after the garden",
			input:        "e d e Jardineiro\n",
			strict:       true,
			wantClues:    []string{"Copo quebrado", "Pegada de lama", "Pegada de sapato"},
			wantEvidence: 2,
			wantAccepted: true,
			wantOutput:   []string{"Não há mais salas nesse caminho."},
		},
		{
			name:         "invalid keys are skipped",
			input:        "x\nd\nz\ne\ns\n  Professor Edgar\n",
			wantClues:    []string{"Carta rasgada", "Lenço perfumado", "Pegada de lama"},
			wantEvidence: 1,
			wantAccepted: false,
			wantOutput:   []string{"Opção inválida!\n", "Você está em: Biblioteca\n"},
		},
		{
			name:         "suspect names are case-sensitive",
			input:        "s\njardineiro\n",
			wantClues:    []string{"Pegada de lama"},
			wantEvidence: 0,
			wantAccepted: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, out := play(t, tt.input, tt.strict)

			require.Equal(t, game.PhaseFinished, s.Phase)
			require.True(t, s.Done())
			require.Equal(t, tt.wantClues, s.Clues.Slice())
			require.NotNil(t, s.Verdict)
			require.Equal(t, tt.wantEvidence, s.Verdict.Evidence)
			require.Equal(t, tt.wantAccepted, s.Verdict.Accepted)
			require.Equal(t, tt.strict, s.Verdict.Strict)
			for _, want := range tt.wantOutput {
				require.Contains(t, out, want)
			}
			require.True(t, strings.HasSuffix(out, "Fim do jogo. Obrigado por jogar Detective Quest!\n"))
		})
	}
}

func TestPlayEndOfInput(t *testing.T) {
	t.Run("while exploring", func(t *testing.T) {
		s, out := play(t, "e", false)
		require.Equal(t, game.PhaseFinished, s.Phase)
		require.Nil(t, s.Verdict)
		require.Equal(t, []string{"Copo quebrado", "Pegada de lama"}, s.Clues.Slice())
		require.Contains(t, out, "Nenhum suspeito foi acusado.")
	})

	t.Run("while accusing", func(t *testing.T) {
		s, out := play(t, "s\n\n  \n", false)
		require.Equal(t, game.PhaseFinished, s.Phase)
		require.Nil(t, s.Verdict)
		require.Contains(t, out, "Nenhum suspeito foi acusado.")
	})
}

func TestPlayHonoursCancelledContext(t *testing.T) {
	s, _ := newSession(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := game.Play(ctx, s, console.NewReader(strings.NewReader("s\nMordomo\n"), io.Discard, true))
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, game.PhaseExploring, s.Phase)
}

func TestPlayCancelInterruptsBlockedRead(t *testing.T) {
	s, _ := newSession(t, false)
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- game.Play(ctx, s, console.NewReader(pr, io.Discard, true))
	}()

	// The write returns once the reader has taken the key, so the next read is left waiting on the pipe.
	_, err := pw.Write([]byte("e\n"))
	require.NoError(t, err)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Play did not return after the context was cancelled")
	}
	require.Equal(t, game.PhaseExploring, s.Phase)
	require.Nil(t, s.Verdict)
}

func TestHandle(t *testing.T) {
	s, out := newSession(t, false)

	out.Reset()
	s.Handle("")
	require.Equal(t, "Você está em: Hall de Entrada\nPista desta sala: Pegada de lama\n", out.String())

	out.Reset()
	s.Handle("esquerda")
	require.Equal(t, "Opção inválida!\n", out.String())
	require.Equal(t, "Hall de Entrada", s.Current.Name)

	s.Handle(" d ")
	require.Equal(t, "Sala de Estar", s.Current.Name)

	s.Handle("s")
	require.Equal(t, game.PhaseAccusing, s.Phase)
	require.Equal(t, game.PromptSuspect, s.Prompt())

	out.Reset()
	s.Handle("   ")
	require.Equal(t, "Informe o nome de um suspeito.\n", out.String())
	require.Equal(t, game.PhaseAccusing, s.Phase)

	s.Handle("  Madame Clarisse \n")
	require.Equal(t, game.PhaseFinished, s.Phase)
	require.Equal(t, "Madame Clarisse", s.Verdict.Suspect)
	require.True(t, s.Verdict.Accepted)
	require.Empty(t, s.Prompt())

	out.Reset()
	s.Handle("e")
	require.Equal(t, "O jogo terminou.\n", out.String())
}

func TestAccuseOutOfPhase(t *testing.T) {
	s, out := newSession(t, false)
	out.Reset()

	v := s.Accuse("Jardineiro")
	require.False(t, v.Accepted)
	require.Nil(t, s.Verdict)
	require.Equal(t, game.PhaseExploring, s.Phase)
	require.Equal(t, "Ainda não é hora de acusar ninguém.\n", out.String())
}

func TestMoveAfterExploration(t *testing.T) {
	s, out := newSession(t, false)
	s.Move(game.MoveExit)
	out.Reset()

	s.Move(game.MoveLeft)
	require.Equal(t, "A exploração já terminou.\n", out.String())
	require.Equal(t, game.PhaseAccusing, s.Phase)
}

func TestSummarize(t *testing.T) {
	s, _ := newSession(t, false)
	s.HandleKey('e')
	s.HandleKey('d')

	sum := game.Summarize(s)
	require.Equal(t, game.Summary{
		Title:  "Detective Quest",
		Phase:  game.PhaseExploring,
		Room:   "Jardim",
		Path:   []string{"left", "right"},
		Clues:  []string{"Copo quebrado", "Pegada de lama", "Pegada de sapato"},
		Prompt: game.PromptMove,
	}, sum)

	s.HandleKey('s')
	sum = game.Summarize(s)
	require.Equal(t, game.PromptSuspect, sum.Prompt)
	require.Equal(t, []string{"Jardineiro", "Madame Clarisse", "Mordomo", "Professor Edgar"}, sum.Suspects)

	s.Accuse("Jardineiro")
	sum = game.Summarize(s)
	require.Empty(t, sum.Suspects)
	require.Empty(t, sum.Room)
	require.Equal(t, game.PhaseFinished, sum.Phase)
	require.Equal(t, &game.Verdict{Suspect: "Jardineiro", Evidence: 2, Accepted: true}, sum.Verdict)
}

func TestStyledOutputKeepsText(t *testing.T) {
	var out bytes.Buffer
	s := game.NewSession(casefile.Default(), game.Options{Out: &out, Styled: true})
	s.HandleKey('s')
	require.Contains(t, out.String(), "Hall de Entrada")
	require.Contains(t, out.String(), "Pegada de lama")
}

func TestLongVerdictIsWrapped(t *testing.T) {
	s, out := newSession(t, false)
	s.HandleKey('s')
	out.Reset()

	name := strings.TrimSpace(strings.Repeat("Clarisse ", 12))
	s.Accuse(name)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Equal(t, "", lines[0])
	require.Equal(t, "Fim do jogo. Obrigado por jogar Detective Quest!", lines[len(lines)-1])
	verdict := lines[1 : len(lines)-2]
	require.Greater(t, len(verdict), 1)
	for _, line := range verdict {
		require.LessOrEqual(t, utf8.RuneCountInString(line), 79, line)
	}
	require.Equal(t, "Não há provas suficientes contra "+name+".", strings.Join(verdict, " "))
}

func TestSessionIsQuietAtInfoLevel(t *testing.T) {
	var logs, out bytes.Buffer
	s := game.NewSession(casefile.Default(), game.Options{
		Out:    &out,
		Logger: logging.New(&logs, slog.LevelInfo),
	})
	in := console.NewReader(strings.NewReader("e\ne\ns\nJardineiro\n"), &out, true)
	require.NoError(t, game.Play(context.Background(), s, in))

	require.True(t, s.Verdict.Accepted)
	require.Empty(t, logs.String())
}

// Package mcpserver exposes an investigation as a Model Context Protocol tool over Streamable HTTP.
package mcpserver

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"detectivequest/internal/casefile"
	"detectivequest/internal/errors"
	"detectivequest/internal/game"
	"detectivequest/internal/logging"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const shutdownTimeout = 5 * time.Second

type CommandInput struct {
	Command string `json:"command,omitempty" jsonschema:"Path key (e, d or s) while exploring, suspect name while accusing"`
	Reset   bool   `json:"reset,omitempty" jsonschema:"Start a new investigation before executing the command"`
}

type CommandOutput struct {
	Output string       `json:"output" jsonschema:"Raw game output"`
	State  game.Summary `json:"state" jsonschema:"Summary of the investigation"`
}

// Options configure the HTTP side of the server.
type Options struct {
	Addr string
	Path string
	// Origins lists the allowed Origin headers. Requests without an Origin header are always allowed.
	Origins      []string
	Token        string
	JSONResponse bool
	Stateless    bool
}

// Server owns a single investigation shared by every MCP client.
type Server struct {
	mu      sync.Mutex
	game    *game.Session
	newGame func(out io.Writer) *game.Session
	logger  *slog.Logger
}

func New(c *casefile.Case, strict bool, logger *slog.Logger) *Server {
	newGame := func(out io.Writer) *game.Session {
		return game.NewSession(c, game.Options{Out: out, Logger: logger, Strict: strict})
	}
	return &Server{
		game:    newGame(nil),
		newGame: newGame,
		logger:  logger.With("source", "mcpserver"),
	}
}

// step feeds one command to the investigation and captures the narration it produces. Between calls the
// session writes nowhere.
func step(g *game.Session, cmd string) CommandOutput {
	var narration bytes.Buffer
	g.Out = &narration
	g.Handle(cmd)
	g.Out = nil
	return CommandOutput{Output: narration.String(), State: game.Summarize(g)}
}

func (s *Server) HandleCommand(ctx context.Context, _ *mcp.CallToolRequest, input CommandInput) (*mcp.CallToolResult, CommandOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = logging.WithAttrs(ctx, slog.String("tool", "command"), slog.String("command", input.Command))

	var greeting bytes.Buffer
	if input.Reset {
		s.game = s.newGame(&greeting)
		s.logger.InfoContext(ctx, "investigation reset")
		if strings.TrimSpace(input.Command) == "" {
			s.game.Out = nil
			return nil, CommandOutput{Output: greeting.String(), State: game.Summarize(s.game)}, nil
		}
	}

	out := step(s.game, input.Command)
	out.Output = greeting.String() + out.Output
	s.logger.DebugContext(ctx, "command executed", slog.String("phase", string(out.State.Phase)))
	return nil, out, nil
}

// MCPServer builds the MCP server with the command tool registered.
func (s *Server) MCPServer() *mcp.Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "detectivequest",
		Version: "v1.0.0",
	}, nil)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "command",
		Description: "Play Detective Quest. While exploring send e (left), d (right) or s (leave the mansion); " +
			"afterwards send the name of the suspect to accuse. Returns the game output and a state summary.",
	}, s.HandleCommand)

	return mcpServer
}

// Handler serves the MCP endpoint at opts.Path behind the origin and token checks.
func (s *Server) Handler(opts Options) http.Handler {
	mcpServer := s.MCPServer()
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return mcpServer
	}, &mcp.StreamableHTTPOptions{
		Stateless:    opts.Stateless,
		JSONResponse: opts.JSONResponse,
		Logger:       s.logger,
	})

	path := opts.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	mux := http.NewServeMux()
	mux.Handle(path, s.guard(opts).Then(handler))
	return mux
}

// ListenAndServe serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, opts Options) error {
	var err error
	srv := &http.Server{
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
		Handler:           s.Handler(opts),
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: time.Second,
	}

	shutdownComplete := make(chan struct{})
	go func() {
		<-ctx.Done()
		s.logger.LogAttrs(ctx, slog.LevelInfo, "shutting down server")

		shutdownContext, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := srv.Shutdown(shutdownContext); shutdownErr != nil {
			shutdownErr = errors.Wrap(shutdownErr, "shutdown server")
			s.logger.LogAttrs(ctx, slog.LevelError, "error shutting down server", errors.SlogError(shutdownErr))
		}
		close(shutdownComplete)
	}()

	var listener net.Listener
	if listener, err = net.Listen("tcp", opts.Addr); err != nil {
		return errors.Wrap(err, "TCP listen", slog.String("addr", opts.Addr))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "starting server",
		slog.String("addr", listener.Addr().String()), slog.String("path", opts.Path))
	if err = srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server serve")
	}
	<-shutdownComplete

	return nil
}

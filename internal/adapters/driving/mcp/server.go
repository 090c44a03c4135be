package mcp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is the MCP server version.
const Version = "0.1.0"

// instructions primes connected clients on how the course tools behave.
const instructions = `Studyhall answers questions about ingested course
transcripts. Use search_course_content for questions about course
content, passing course_title and lesson_number filters when the user
names them; course titles are resolved fuzzily, so partial names work.
Use get_course_outline for lesson lists and course metadata. The
studyhall://courses resource lists what is currently indexed.`

// readHeaderTimeout bounds slow-header clients in HTTP mode.
const readHeaderTimeout = 10 * time.Second

// Server exposes the course tools and catalog over MCP.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer validates the ports and registers the tool and resource
// handlers.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(
			&mcp.Implementation{Name: "studyhall", Version: Version},
			&mcp.ServerOptions{Instructions: instructions},
		),
	}
	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves MCP over streamable HTTP on addr until the context is
// cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

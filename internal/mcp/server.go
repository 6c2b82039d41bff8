// Package mcp exposes skeleton extraction to MCP clients over stdio.
package mcp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/mvp-joe/code-skeleton/internal/discovery"
	"github.com/mvp-joe/code-skeleton/internal/skeleton"
	"github.com/mvp-joe/code-skeleton/internal/watcher"
)

// ServerName is reported to MCP clients.
const ServerName = "code-skeleton"

// ServerOptions configures the MCP server.
type ServerOptions struct {
	ProjectRoot string
	Include     []string
	Ignore      []string
	Version     string

	// Watch drops cached skeletons of files that change while serving.
	Watch bool
}

// Server manages the MCP server lifecycle.
type Server struct {
	opts    ServerOptions
	service *skeleton.Service
	watcher watcher.FileWatcher
	logger  *logrus.Logger
	mcp     *server.MCPServer
}

// NewServer creates an MCP server with the code_skeleton and code_signatures tools.
func NewServer(service *skeleton.Service, opts ServerOptions, logger *logrus.Logger) (*Server, error) {
	if service == nil {
		return nil, fmt.Errorf("skeleton service is required")
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		opts.Version,
		server.WithToolCapabilities(true),
	)
	AddCodeSkeletonTool(mcpServer, service, opts.ProjectRoot)
	AddCodeSignaturesTool(mcpServer, service, opts.ProjectRoot)

	s := &Server{
		opts:    opts,
		service: service,
		logger:  logger,
		mcp:     mcpServer,
	}

	if opts.Watch {
		w, err := newInvalidationWatcher(opts, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create file watcher: %w", err)
		}
		s.watcher = w
	}

	return s, nil
}

// MCP returns the underlying mcp-go server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.watcher != nil {
		if err := s.watcher.Start(ctx, s.invalidate); err != nil {
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
		defer s.watcher.Stop()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("root", s.opts.ProjectRoot).Info("starting MCP server on stdio")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-sigCh:
		s.logger.Info("received shutdown signal, stopping")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the watcher.
func (s *Server) Close() error {
	if s.watcher != nil {
		return s.watcher.Stop()
	}
	return nil
}

// invalidate drops cached documents of changed files.
func (s *Server) invalidate(files []string) {
	if err := s.service.Invalidate(context.Background(), files...); err != nil {
		s.logger.WithError(err).Warn("failed to invalidate cached skeletons")
		return
	}
	s.logger.WithField("files", len(files)).Debug("invalidated cached skeletons")
}

// newInvalidationWatcher watches the project for source files the discovery
// patterns select.
func newInvalidationWatcher(opts ServerOptions, logger *logrus.Logger) (watcher.FileWatcher, error) {
	d, err := discovery.New(opts.ProjectRoot, opts.Include, opts.Ignore)
	if err != nil {
		return nil, err
	}
	return watcher.NewFileWatcher([]string{opts.ProjectRoot}, watcher.Options{
		Accept: func(path string) bool {
			_, ok := d.Match(path)
			return ok
		},
		SkipDir: d.SkipDir,
	}, logger)
}

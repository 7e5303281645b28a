package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/cruciblehq/chariotd/internal"
	"github.com/cruciblehq/chariotd/internal/build"
	"github.com/cruciblehq/chariotd/internal/image"
	"github.com/cruciblehq/chariotd/internal/protocol"
)

// handleBuild parses req's recipe set, resolves its forced recipes, and
// runs the orchestrator against them. Builds are serialized against the
// shared on-disk cache (spec.md §5's single-writer model).
func (s *Server) handleBuild(ctx context.Context, conn net.Conn, payload json.RawMessage) {
	req, err := protocol.DecodePayload[protocol.BuildRequest](payload)
	if err != nil {
		s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: err.Error()})
		return
	}

	forced, opts, err := build.ResolveRequest(req)
	if err != nil {
		s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: err.Error()})
		return
	}

	s.buildMu.Lock()
	cache := image.NewCache(opts.CacheRoot, s.runtime)
	if req.WipeContainer {
		if err := cache.WipeBase(); err != nil {
			s.buildMu.Unlock()
			s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: err.Error()})
			return
		}
	}

	result, err := build.Run(ctx, s.runtime, cache, forced, opts)
	s.buildMu.Unlock()

	if err != nil {
		s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: err.Error()})
		return
	}

	s.mu.Lock()
	s.builds++
	s.mu.Unlock()

	s.respond(conn, protocol.CmdOK, &protocol.BuildResult{Built: result.Built})
}

// handleStatus answers a status query.
func (s *Server) handleStatus(conn net.Conn) {
	s.mu.Lock()
	builds := s.builds
	startedAt := s.startedAt
	s.mu.Unlock()

	uptime := time.Since(startedAt).Truncate(time.Second)

	s.respond(conn, protocol.CmdOK, &protocol.StatusResult{
		Running: true,
		Version: internal.VersionString(),
		Pid:     os.Getpid(),
		Uptime:  uptime.String(),
		Builds:  builds,
	})
}

// handleShutdown acknowledges the request and stops the server
// asynchronously, after the response has had a chance to flush.
func (s *Server) handleShutdown(conn net.Conn) {
	s.respond(conn, protocol.CmdOK, nil)
	slog.Info("shutdown requested")

	go func() {
		s.Stop()
	}()
}

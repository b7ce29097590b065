// Package lsp is a small stdio language server host. It resolves the
// workspace project whenever the project description may have changed and
// publishes configuration problems to the editor.
package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"sync"

	"aslsp/internal/diag"
	"aslsp/internal/logger"
	"aslsp/internal/project"
	"aslsp/internal/session"
	"aslsp/internal/version"
)

var (
	// ErrExit signals a graceful shutdown after receiving "exit".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

// MethodResolve is the custom request returning the current resolution.
const MethodResolve = "aslsp/resolve"

// Resolver runs one resolution; *session.Session implements it.
type Resolver interface {
	Resolve(ctx context.Context, desc project.Description, frameworkLib string) (*session.Outcome, error)
}

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	Resolver       Resolver
	FrameworkLib   string
	MaxDiagnostics int
	Logger         logger.Logger
}

// Server handles stdio JSON-RPC.
type Server struct {
	in     *bufio.Reader
	out    *bufio.Writer
	sendMu sync.Mutex
	mu     sync.Mutex

	resolver       Resolver
	log            logger.Logger
	maxDiagnostics int
	baseCtx        context.Context

	workspaceRoot     string
	frameworkLib      string
	override          *project.Description
	shutdownRequested bool
	published         map[string]struct{}
	last              *session.Outcome
}

// NewServer constructs a new LSP server.
func NewServer(in io.Reader, out io.Writer, opts ServerOptions) *Server {
	maxDiagnostics := opts.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &Server{
		in:             bufio.NewReader(in),
		out:            bufio.NewWriter(out),
		resolver:       opts.Resolver,
		log:            log,
		maxDiagnostics: maxDiagnostics,
		baseCtx:        context.Background(),
		frameworkLib:   opts.FrameworkLib,
		published:      make(map[string]struct{}),
	}
}

// Run serves LSP requests until exit or EOF.
func (s *Server) Run(ctx context.Context) error {
	s.baseCtx = ctx
	for {
		payload, err := readMessage(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.log.Warn("failed to parse message", "err", err)
			continue
		}
		if msg.Method == "" {
			continue
		}
		if err := s.handleMessage(&msg); err != nil {
			return err
		}
	}
}

func (s *Server) handleMessage(msg *rpcMessage) error {
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		s.refresh()
		return nil
	case "shutdown":
		return s.handleShutdown(msg)
	case "exit":
		if s.isShutdown() {
			return ErrExit
		}
		return ErrExitWithoutShutdown
	case "workspace/didChangeConfiguration":
		return s.handleDidChangeConfiguration(msg)
	case "textDocument/didSave":
		return s.handleDidSave(msg)
	case MethodResolve:
		return s.handleResolve(msg)
	default:
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, codeMethodNotFound, "method not found")
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *rpcMessage) error {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	root := ""
	if params.RootURI != "" {
		root = uriToPath(params.RootURI)
	}
	if root == "" && params.RootPath != "" {
		root = params.RootPath
	}
	if root == "" && len(params.WorkspaceFolders) > 0 {
		root = uriToPath(params.WorkspaceFolders[0].URI)
	}
	if root != "" {
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
	}
	s.mu.Lock()
	s.workspaceRoot = root
	s.mu.Unlock()
	if len(params.InitializationOptions) > 0 {
		s.applySettings(params.InitializationOptions)
	}

	result := initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync: textDocumentSyncOptions{
				OpenClose: true,
				Save:      saveOptions{},
			},
		},
		ServerInfo: serverInfo{Name: "aslsp", Version: version.Plain()},
	}
	return s.sendResponse(msg.ID, result)
}

func (s *Server) handleShutdown(msg *rpcMessage) error {
	s.mu.Lock()
	s.shutdownRequested = true
	s.mu.Unlock()
	s.clearPublished()
	return s.sendResponse(msg.ID, nil)
}

func (s *Server) isShutdown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdownRequested
}

func (s *Server) handleDidSave(msg *rpcMessage) error {
	var params didSaveTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	path := uriToPath(params.TextDocument.URI)
	if filepath.Base(path) != project.ManifestName {
		return nil
	}
	s.refresh()
	return nil
}

func (s *Server) handleResolve(msg *rpcMessage) error {
	out, err := s.refresh()
	if err != nil {
		return s.sendError(msg.ID, codeInternalError, err.Error())
	}
	return s.sendResponse(msg.ID, session.Summarize(out, true))
}

// refresh resolves the current description and republishes problems.
func (s *Server) refresh() (*session.Outcome, error) {
	s.mu.Lock()
	root := s.workspaceRoot
	lib := s.frameworkLib
	var override *project.Description
	if s.override != nil {
		desc := s.override.Clone()
		override = &desc
	}
	s.mu.Unlock()

	manifestPath, found := detectManifest(root)
	var desc project.Description
	switch {
	case override != nil:
		desc = *override
	case found:
		m, err := project.LoadManifest(manifestPath)
		if err != nil {
			s.log.Warn("failed to load project manifest", "path", manifestPath, "err", err)
			problem := diag.NewError(diag.PrjBadManifest, diag.Location{Source: manifestPath}, err.Error())
			s.publish(manifestPath, []diag.Diagnostic{problem})
			return nil, err
		}
		desc = m.Description
	default:
		desc = project.Description{ConfigName: project.DefaultConfigName}
	}

	if s.resolver == nil {
		return nil, errors.New("no resolver configured")
	}
	out, err := s.resolver.Resolve(s.baseCtx, desc, lib)
	if err != nil {
		s.log.Warn("resolution failed", "err", err)
		return nil, err
	}
	s.mu.Lock()
	s.last = out
	s.mu.Unlock()
	if out.Failure != nil {
		s.log.Info(out.Failure.Error())
	}
	s.publish(manifestPath, out.Problems)
	return out, nil
}

// Last returns the most recent successful resolution call, if any.
func (s *Server) Last() *session.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  result,
	}
	return s.send(msg)
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error": rpcError{
			Code:    code,
			Message: message,
		},
	}
	return s.send(msg)
}

func (s *Server) sendNotification(method string, params any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	}
	return s.send(msg)
}

func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}

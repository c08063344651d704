// Package server implements the IPC server (§4.9, component C9): it wraps
// a *spellcheck.Dictionary and speaks msgpack frames over stdin/stdout,
// mirroring the teacher's JSON-over-stdin server (pkg/server) but binary,
// using the library the teacher's own go.mod already carries for its test
// client (examples/test_client.go) without ever wiring into the real
// server.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/halvardlie/spellwright/internal/logger"
	"github.com/halvardlie/spellwright/internal/suggest"
	"github.com/halvardlie/spellwright/pkg/config"
	"github.com/halvardlie/spellwright/pkg/spellcheck"
)

var log = logger.Default("server")

// Request is the single envelope every incoming frame decodes into; Kind
// selects which fields are meaningful, mirroring the teacher's
// command-string Request struct.
type Request struct {
	Kind    string     `msgpack:"kind"`
	ID      string     `msgpack:"id"`
	Word    string     `msgpack:"word,omitempty"`
	MaxDist float64    `msgpack:"max_dist,omitempty"`
	Limit   int        `msgpack:"limit,omitempty"`
	Action  string     `msgpack:"action,omitempty"` // "add" | "remove", for kind "mutate"
	Groups  [][]string `msgpack:"groups,omitempty"`
}

// CheckResponse answers a "check" request.
type CheckResponse struct {
	ID        string `msgpack:"id"`
	Known     bool   `msgpack:"known"`
	TimeTaken int64  `msgpack:"time_taken"`
}

// SuggestResponse answers a "suggest" request.
type SuggestResponse struct {
	ID        string   `msgpack:"id"`
	Words     []string `msgpack:"words"`
	Count     int      `msgpack:"count"`
	TimeTaken int64    `msgpack:"time_taken"`
}

// MutateResponse answers a "mutate" request.
type MutateResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	Error  string `msgpack:"error,omitempty"`
}

// ErrorResponse is sent for unknown kinds/actions and malformed frames.
// Per §7, a bad frame never drops the connection.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"error"`
	Code  int    `msgpack:"code"`
}

// Server handles the IPC for spell-checking requests.
type Server struct {
	dict   *spellcheck.Dictionary
	cfg    *config.Config
	reader io.Reader
	writer io.Writer
}

// NewServer creates a new spell-check server using stdin/stdout for IPC.
func NewServer(dict *spellcheck.Dictionary, cfg *config.Config) *Server {
	return &Server{
		dict:   dict,
		cfg:    cfg,
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// Start begins listening for IPC requests. It returns when the stream
// hits EOF or ctx is cancelled. Per §5, request handling is synchronous:
// cancellation only takes effect between requests, never mid-request.
func (s *Server) Start(ctx context.Context) error {
	log.Debug("starting IPC server")

	dec := msgpack.NewDecoder(s.reader)
	enc := msgpack.NewEncoder(s.writer)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		var req Request
		if err := dec.Decode(&req); err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("decoding request: %v", err)
			s.sendError(enc, "", "malformed frame", 400)
			continue
		}
		s.handleRequest(enc, req)
	}
}

func (s *Server) handleRequest(enc *msgpack.Encoder, req Request) {
	switch req.Kind {
	case "check":
		s.handleCheck(enc, req)
	case "suggest":
		s.handleSuggest(enc, req)
	case "mutate":
		s.handleMutate(enc, req)
	default:
		s.sendError(enc, req.ID, fmt.Sprintf("unknown kind: %q", req.Kind), 400)
	}
}

func (s *Server) handleCheck(enc *msgpack.Encoder, req Request) {
	if req.Word == "" {
		s.sendError(enc, req.ID, "missing word", 400)
		return
	}

	start := time.Now()
	known := s.dict.Check(req.Word)
	elapsed := time.Since(start)

	s.send(enc, CheckResponse{ID: req.ID, Known: known, TimeTaken: elapsed.Milliseconds()})
}

func (s *Server) handleSuggest(enc *msgpack.Encoder, req Request) {
	if req.Word == "" {
		s.sendError(enc, req.ID, "missing word", 400)
		return
	}
	if s.cfg.Server.MaxPrefixLen > 0 && len(req.Word) > s.cfg.Server.MaxPrefixLen {
		s.sendError(enc, req.ID, "word exceeds maximum length", 400)
		return
	}

	opts := suggest.Options{MaxDist: req.MaxDist, Limit: req.Limit}
	if opts.MaxDist == 0 {
		opts.MaxDist = s.cfg.Suggest.DefaultMaxDist
	}
	if opts.Limit == 0 {
		opts.Limit = s.cfg.Suggest.DefaultLimit
	}
	if s.cfg.Server.MaxLimit > 0 && (opts.Limit == 0 || opts.Limit > s.cfg.Server.MaxLimit) {
		opts.Limit = s.cfg.Server.MaxLimit
	}

	start := time.Now()
	words := s.dict.Suggest(req.Word, opts)
	elapsed := time.Since(start)

	s.send(enc, SuggestResponse{ID: req.ID, Words: words, Count: len(words), TimeTaken: elapsed.Milliseconds()})
}

func (s *Server) handleMutate(enc *msgpack.Encoder, req Request) {
	if req.Word == "" {
		s.sendError(enc, req.ID, "missing word", 400)
		return
	}
	switch req.Action {
	case "add":
		s.dict.AddWord(req.Word, req.Groups)
		s.send(enc, MutateResponse{ID: req.ID, Status: "ok"})
	case "remove":
		s.dict.RemoveWord(req.Word)
		s.send(enc, MutateResponse{ID: req.ID, Status: "ok"})
	default:
		s.sendError(enc, req.ID, fmt.Sprintf("unknown action: %q", req.Action), 400)
	}
}

func (s *Server) send(enc *msgpack.Encoder, response any) {
	if err := enc.Encode(response); err != nil {
		log.Errorf("encoding response: %v", err)
	}
}

func (s *Server) sendError(enc *msgpack.Encoder, id, message string, code int) {
	s.send(enc, ErrorResponse{ID: id, Error: message, Code: code})
}

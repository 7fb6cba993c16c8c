package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	fodmapdb "github.com/jfranmatheu/EverydayFODMAP-sub001"
	"github.com/jfranmatheu/EverydayFODMAP-sub001/db"
)

// Server exposes the diary data layer over TCP, one JSON request per
// line. The facade contract carries over the wire: a request never
// fails once authenticated, it just reports zero effect or zero rows.
type Server struct {
	listener   net.Listener
	diary      *db.DB
	authConfig *AuthConfig
	log        *zap.Logger
	mu         sync.Mutex
	done       chan struct{}
	wg         sync.WaitGroup
}

func NewServer(instance *fodmapdb.Instance, authConfig *AuthConfig, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		diary:      instance.DB(log),
		authConfig: authConfig,
		log:        log,
		done:       make(chan struct{}),
	}
}

// Start begins listening for connections on the specified address.
func (s *Server) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	s.listener = listener

	s.log.Info("server listening", zap.String("addr", listener.Addr().String()))

	go s.acceptLoop()
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	close(s.done)
	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	return nil
}

// Addr returns the server's listening address.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				s.log.Warn("accept error", zap.Error(err))
				continue
			}
		}

		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	s.log.Info("client connected", zap.String("remote", conn.RemoteAddr().String()))

	state := &ConnectionState{}
	if s.authConfig == nil || !s.authConfig.Enabled {
		state.authenticated = true
	}

	reader := bufio.NewReader(conn)

	for {
		select {
		case <-s.done:
			return
		default:
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				s.log.Warn("read error", zap.String("remote", conn.RemoteAddr().String()), zap.Error(err))
			}
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if lower := strings.ToLower(line); lower == "quit" || lower == "exit" {
			s.log.Info("client disconnected", zap.String("remote", conn.RemoteAddr().String()))
			return
		}

		response := s.handleLine(line, state)

		data, err := EncodeResponse(response)
		if err != nil {
			s.log.Warn("failed to encode response", zap.Error(err))
			continue
		}
		if _, err := conn.Write(data); err != nil {
			s.log.Warn("write error", zap.String("remote", conn.RemoteAddr().String()), zap.Error(err))
			return
		}
	}
}

func (s *Server) handleLine(line string, state *ConnectionState) Response {
	if strings.HasPrefix(strings.ToUpper(line), "AUTH ") {
		return s.handleAuth(line, state)
	}

	if !state.IsAuthenticated() {
		return Response{Success: false, Error: "authentication required: send AUTH JWT <token>"}
	}
	if !state.tokenExpiry.IsZero() && time.Now().After(state.tokenExpiry) {
		state.authenticated = false
		return Response{Success: false, Error: "token expired: re-authenticate"}
	}

	request, err := DecodeRequest([]byte(line))
	if err != nil {
		return Response{Success: false, Error: "bad request: " + err.Error()}
	}
	return s.executeRequest(request)
}

func (s *Server) executeRequest(request Request) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch request.Op {
	case "run":
		result := s.diary.Run(request.Query, request.Params...)
		data, _ := json.Marshal(ExecResponse{
			GeneratedID:  result.GeneratedID,
			RowsAffected: result.RowsAffected,
		})
		return Response{Success: true, Type: "exec", Result: data}

	case "all":
		rows := s.diary.QueryAll(request.Query, request.Params...)
		data, _ := json.Marshal(RowsResponse{Rows: rows, Count: len(rows)})
		return Response{Success: true, Type: "rows", Result: data}

	case "one":
		row := s.diary.QueryFirst(request.Query, request.Params...)
		data, _ := json.Marshal(RowResponse{Row: row})
		return Response{Success: true, Type: "row", Result: data}

	case "wipe":
		s.diary.Wipe()
		return Response{Success: true, Type: "wipe"}

	default:
		return Response{Success: false, Error: fmt.Sprintf("unknown op: %q (want run, all, one or wipe)", request.Op)}
	}
}

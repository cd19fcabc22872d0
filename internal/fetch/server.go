package fetch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/jonesrussell/webscout/internal/logger"
	"github.com/jonesrussell/webscout/internal/page"
)

// serverErrorPrefix marks a reply that indicates the crawler server
// itself is broken, as opposed to a fetch that merely failed.
const serverErrorPrefix = "SERVER_ERROR"

// serverRequest is the line-delimited JSON request sent to a delegated
// crawler server.
type serverRequest struct {
	URL       string `json:"url"`
	TimeoutS  int    `json:"timeout_s"`
	UserAgent string `json:"user_agent"`
	Full      bool   `json:"full"`
}

// serverReply is the crawler server's JSON reply.
type serverReply struct {
	StatusCode int    `json:"status_code"`
	URL        string `json:"url"`
	Contents   string `json:"contents"`
	Error      string `json:"error"`
}

// ServerStrategy delegates the fetch over a socket to a long-running
// crawler server on localhost. The server amortizes browser startup
// across fetches, which the in-process browser strategies cannot.
type ServerStrategy struct {
	log  logger.Interface
	name string
	port int
	full bool
}

// NewServerStrategy creates a server-delegated strategy. Port 0 makes
// the strategy unavailable. full selects the server's full-browser mode
// over its basic mode.
func NewServerStrategy(log logger.Interface, name string, port int, full bool) *ServerStrategy {
	return &ServerStrategy{
		log:  log.WithComponent("fetch.server"),
		name: name,
		port: port,
		full: full,
	}
}

// Name identifies the strategy.
func (s *ServerStrategy) Name() string { return s.name }

// Fetch sends the request to the crawler server and decodes its reply.
// An unreachable server yields nil so the chain can move on; a server
// that answers but reports itself broken yields a ServerError, which
// aborts the chain.
func (s *ServerStrategy) Fetch(ctx context.Context, req *page.Request) (*page.Response, error) {
	if s.port == 0 {
		return nil, nil
	}

	dialer := net.Dialer{Timeout: req.EffectiveTimeout()}
	conn, err := dialer.DialContext(ctx, "tcp", fmt.Sprintf("127.0.0.1:%d", s.port))
	if err != nil {
		s.log.Debug("crawler server unreachable", "port", s.port, "strategy", s.Name())
		return nil, nil
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	payload, err := json.Marshal(serverRequest{
		URL:       req.URL,
		TimeoutS:  int(req.EffectiveTimeout().Seconds()),
		UserAgent: req.EffectiveUserAgent(),
		Full:      s.full,
	})
	if err != nil {
		return nil, nil
	}

	if _, err = conn.Write(append(payload, '\n')); err != nil {
		s.log.Debug("crawler server write failed", "strategy", s.Name(), "error", err)
		return nil, nil
	}

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil && len(line) == 0 {
		s.log.Debug("crawler server read failed", "strategy", s.Name(), "error", err)
		return nil, nil
	}

	var reply serverReply
	if err = json.Unmarshal(line, &reply); err != nil {
		return nil, &ServerError{Strategy: s.Name(), Err: fmt.Errorf("malformed reply: %w", err)}
	}

	if strings.HasPrefix(reply.Error, serverErrorPrefix) {
		return nil, &ServerError{Strategy: s.Name(), Err: fmt.Errorf("%s", reply.Error)}
	}

	if reply.Error != "" {
		resp := page.NewResponse(req.URL)
		resp.StatusCode = page.StatusException
		resp.AddError(reply.Error)
		return resp, nil
	}

	resp := page.NewResponse(req.URL)
	resp.StatusCode = reply.StatusCode
	if resp.StatusCode == 0 {
		resp.StatusCode = http.StatusOK
	}
	if reply.URL != "" {
		resp.URL = reply.URL
	}
	if reply.Contents != "" {
		resp.SetText(reply.Contents)
	}

	return resp, nil
}

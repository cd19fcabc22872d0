package fetch

import (
	"bytes"
	"context"
	"net/http"
	"os/exec"
	"strconv"

	"github.com/jonesrussell/webscout/internal/logger"
	"github.com/jonesrussell/webscout/internal/page"
)

// ScriptStrategy delegates the fetch to an external crawler script that
// prints the rendered document on stdout. Two script variants exist,
// one driving a headless browser and one a full browser; which one a
// given instance runs is fixed at construction.
type ScriptStrategy struct {
	log        logger.Interface
	name       string
	scriptPath string
}

// NewScriptStrategy creates a script-delegated strategy. An empty path
// makes the strategy unavailable; it then always yields nil.
func NewScriptStrategy(log logger.Interface, name, scriptPath string) *ScriptStrategy {
	return &ScriptStrategy{
		log:        log.WithComponent("fetch.script"),
		name:       name,
		scriptPath: scriptPath,
	}
}

// Name identifies the strategy.
func (s *ScriptStrategy) Name() string { return s.name }

// Fetch runs the script with the URL and timeout as arguments. The
// subprocess blocks the caller until completion; a failed or empty run
// yields nil and the chain moves on.
func (s *ScriptStrategy) Fetch(ctx context.Context, req *page.Request) (*page.Response, error) {
	if s.scriptPath == "" {
		return nil, nil
	}

	runCtx, cancel := context.WithTimeout(ctx, req.EffectiveTimeout()+headlessStartupAllowance)
	defer cancel()

	cmd := exec.CommandContext(runCtx, s.scriptPath, req.URL,
		strconv.Itoa(int(req.EffectiveTimeout().Seconds())))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			resp := page.NewResponse(req.URL)
			resp.StatusCode = page.StatusTimeout
			resp.AddError("crawler script timed out")
			s.log.Info("script timed out", "url", req.URL, "strategy", s.Name())
			return resp, nil
		}

		s.log.Debug("script fetch failed", "url", req.URL, "strategy", s.Name(),
			"error", err, "stderr", stderr.String())
		return nil, nil
	}

	body := stdout.Bytes()
	if len(body) == 0 {
		return nil, nil
	}

	resp := page.NewResponse(req.URL)
	resp.StatusCode = http.StatusOK
	resp.SetBinary(body)
	resp.Encoding = resolveEncoding("", body)

	return resp, nil
}

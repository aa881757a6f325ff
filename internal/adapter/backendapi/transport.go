package backendapi

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// loggingTransport logs every backend round trip at debug level. Bodies are
// never logged because they carry passwords and tokens.
type loggingTransport struct {
	base   http.RoundTripper
	logger *zap.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	start := time.Now()
	t.logger.Debug("Backend request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	resp, err := base.RoundTrip(req)
	if err != nil {
		t.logger.Debug("Backend request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	t.logger.Debug("Backend response",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return resp, nil
}

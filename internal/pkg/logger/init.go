package logger

import (
	"Touchline/internal/api/config"
	"io"
	log "log/slog"
	"net"
	"os"
	"strings"
	"time"
)

// LogWriter gin 访问日志的输出目标，Logstash 可用时直接写入连接
var LogWriter io.Writer = os.Stdout

// InitLogger 输出到 stdout，配置了 Logstash 时同时上报带 trace_id 的日志
func InitLogger() {
	cfg := config.Cfg.Logstash
	opts := &log.HandlerOptions{Level: parseLevel(cfg.Level)}

	var finalHandler log.Handler = log.NewJSONHandler(os.Stdout, opts)

	if cfg.Address != "" {
		conn, err := net.DialTimeout("tcp", cfg.Address, 3*time.Second)
		if err != nil {
			log.Warn("Failed to connect to Logstash, logging to stdout only", "addr", cfg.Address, "err", err)
		} else {
			hRemote := log.NewJSONHandler(conn, opts).
				WithAttrs([]log.Attr{
					log.String("service", "touchline"),
					log.String("target_index", cfg.Index),
					log.String("log_token", cfg.Token),
				})

			finalHandler = NewMultiHandler(finalHandler, &TracedOnlyHandler{next: hRemote})
			LogWriter = conn
		}
	}

	log.SetDefault(log.New(&ContextHandler{finalHandler}))
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}

package logger

import (
	"Touchline/internal/api/config"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type accessLine struct {
	Time        string `json:"time"`
	Level       string `json:"level"`
	Msg         string `json:"msg"`
	TraceID     string `json:"trace_id"`
	LogToken    string `json:"log_token,omitempty"`
	TargetIndex string `json:"target_index,omitempty"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Status      int    `json:"status"`
	ClientIP    string `json:"client_ip"`
	Latency     string `json:"latency"`
	Error       string `json:"error,omitempty"`
}

// SetupGin 挂载 JSON 访问日志与 panic 恢复
func SetupGin(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		SkipPaths: []string{"/healthz"},
		Formatter: formatAccess,
	}))

	r.Use(gin.Recovery())
}

func formatAccess(p gin.LogFormatterParams) string {
	var traceID string
	if p.Keys != nil {
		traceID, _ = p.Keys[TraceIDKey].(string)
	}
	if traceID == "" && p.Request != nil {
		traceID = TraceID(p.Request.Context())
	}

	line := accessLine{
		Time:     p.TimeStamp.Format(time.RFC3339),
		Level:    "INFO",
		Msg:      "GIN_ACCESS",
		TraceID:  traceID,
		Method:   p.Method,
		Path:     p.Path,
		Status:   p.StatusCode,
		ClientIP: p.ClientIP,
		Latency:  p.Latency.String(),
		Error:    p.ErrorMessage,
	}
	if p.StatusCode >= 500 {
		line.Level = "ERROR"
	}
	if config.Cfg != nil {
		line.LogToken = config.Cfg.Logstash.Token
		line.TargetIndex = config.Cfg.Logstash.Index
	}

	data, err := json.Marshal(line)
	if err != nil {
		return ""
	}
	return string(data) + "\n"
}

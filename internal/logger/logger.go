package logger

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// NewはJSONログを出すloggerを返す。
func New(service string, env string) *logrus.Logger {
	log := logrus.New()
	log.Level = parseLevel(os.Getenv("LOG_LEVEL"))
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = os.Stdout

	log.AddHook(&serviceHook{service: service, env: env})
	return log
}

// service/envを全レコードに付与する
type serviceHook struct {
	service string
	env     string
}

func (h *serviceHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *serviceHook) Fire(e *logrus.Entry) error {
	e.Data["service"] = h.service
	e.Data["env"] = h.env
	return nil
}

func parseLevel(lvl string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

package jenkins

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
)

// leveledLogger routes retryablehttp's key/value logging into logrus.
type leveledLogger struct {
	logger *logrus.Entry
}

var _ retryablehttp.LeveledLogger = leveledLogger{}

func (l leveledLogger) format(msg string, keysAndValues ...interface{}) string {
	builder := strings.Builder{}
	builder.WriteString(msg)
	for _, x := range keysAndValues {
		builder.WriteString(" ")
		builder.WriteString(fmt.Sprintf("%v", x))
	}
	return builder.String()
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(l.format(msg, keysAndValues...))
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(l.format(msg, keysAndValues...))
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Trace(l.format(msg, keysAndValues...))
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(l.format(msg, keysAndValues...))
}

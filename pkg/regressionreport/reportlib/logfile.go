package reportlib

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

const logFileHeader = "Regression Results Report"

// LogFileHook copies every log entry to a file, after a header marking the
// start of the run. Entries are appended, so one file can hold many runs.
type LogFileHook struct {
	lock      sync.Mutex
	out       io.WriteCloser
	formatter logrus.Formatter
}

// OpenLogFile opens filename for appending and writes the run header.
func OpenLogFile(filename string, c clock.Clock) (*LogFileHook, error) {
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return NewLogFileHook(f, c)
}

func NewLogFileHook(out io.WriteCloser, c clock.Clock) (*LogFileHook, error) {
	if _, err := fmt.Fprintf(out, "--- %s > %s\n", logFileHeader, c.Now().Format("2006-01-02 15:04:05.000000")); err != nil {
		return nil, fmt.Errorf("failed to write log file header: %w", err)
	}
	return &LogFileHook{
		out:       out,
		formatter: &logrus.TextFormatter{DisableColors: true, DisableTimestamp: true},
	}, nil
}

func (h *LogFileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *LogFileHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	h.lock.Lock()
	defer h.lock.Unlock()
	_, err = h.out.Write(line)
	return err
}

func (h *LogFileHook) Close() error {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.out.Close()
}

// Package logger is a small leveled key/value logger for the binaries and
// the batch runner.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var levels = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

// Logger writes one line per message. The zero value is not usable; call New.
type Logger struct {
	component string
	level     string
	format    string
	out       io.Writer
	mu        *sync.Mutex
}

// New creates a logger writing to stderr. format is "text" or "json".
func New(level, format string) *Logger {
	return NewWithWriter(os.Stderr, level, format)
}

func NewWithWriter(w io.Writer, level, format string) *Logger {
	level = strings.ToLower(level)
	if _, ok := levels[level]; !ok {
		level = "info"
	}
	return &Logger{level: level, format: strings.ToLower(format), out: w, mu: &sync.Mutex{}}
}

// Nop discards everything.
func Nop() *Logger { return NewWithWriter(io.Discard, "error", "text") }

// WithComponent returns a logger with a component prefix.
func (l *Logger) WithComponent(component string) *Logger {
	c := *l
	c.component = component
	return &c
}

func (l *Logger) Debug(msg string, fields ...any) { l.logAt("debug", msg, fields) }
func (l *Logger) Info(msg string, fields ...any)  { l.logAt("info", msg, fields) }
func (l *Logger) Warn(msg string, fields ...any)  { l.logAt("warn", msg, fields) }
func (l *Logger) Error(msg string, fields ...any) { l.logAt("error", msg, fields) }

// Fatal logs and exits with status 1.
func (l *Logger) Fatal(msg string, fields ...any) {
	l.write("FATAL", msg, fields)
	os.Exit(1)
}

func (l *Logger) logAt(level, msg string, fields []any) {
	if levels[level] < levels[l.level] {
		return
	}
	l.write(strings.ToUpper(level), msg, fields)
}

func (l *Logger) write(level, msg string, fields []any) {
	now := time.Now()
	var line string
	if l.format == "json" {
		entry := map[string]any{
			"time":  now.Format(time.RFC3339),
			"level": level,
			"msg":   msg,
		}
		if l.component != "" {
			entry["component"] = l.component
		}
		for i := 0; i+1 < len(fields); i += 2 {
			v := fields[i+1]
			if err, ok := v.(error); ok {
				v = err.Error()
			}
			entry[fmt.Sprint(fields[i])] = v
		}
		b, err := json.Marshal(entry)
		if err != nil {
			b = []byte(fmt.Sprintf(`{"level":%q,"msg":%q}`, level, msg))
		}
		line = string(b)
	} else {
		var sb strings.Builder
		sb.WriteString(now.Format("2006-01-02 15:04:05"))
		sb.WriteString(" [" + level + "] ")
		if l.component != "" {
			sb.WriteString("[" + l.component + "] ")
		}
		sb.WriteString(msg)
		for i := 0; i+1 < len(fields); i += 2 {
			fmt.Fprintf(&sb, " %v=%v", fields[i], fields[i+1])
		}
		line = sb.String()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out, line)
}

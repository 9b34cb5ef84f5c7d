// Package logger prints tagged, colored status lines to the console.
package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(stdout{})
	l.SetFormatter(&tagFormatter{color: isTerminal()})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// stdout resolves os.Stdout on every write so redirection after init still works.
type stdout struct{}

func (stdout) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// tagFormatter renders "15:04:05 [TAG] message" with an optional status color.
type tagFormatter struct {
	color bool
}

func (f *tagFormatter) Format(e *logrus.Entry) ([]byte, error) {
	tag, _ := e.Data["tag"].(string)
	color := colorCyan
	switch {
	case e.Data["success"] == true:
		color = colorGreen
	case e.Level == logrus.WarnLevel:
		color = colorYellow
	case e.Level <= logrus.ErrorLevel:
		color = colorRed
	case e.Level >= logrus.DebugLevel:
		color = colorGray
	}

	var b strings.Builder
	b.WriteString(e.Time.Format("15:04:05"))
	b.WriteByte(' ')
	if tag != "" {
		if f.color {
			b.WriteString(color)
		}
		b.WriteString("[" + tag + "]")
		if f.color {
			b.WriteString(colorReset)
		}
		b.WriteByte(' ')
	}
	b.WriteString(e.Message)
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// SetLevel changes the minimum level printed ("debug", "info", "warn", "error").
// Unknown values are ignored.
func SetLevel(level string) {
	if lvl, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	}
}

func Debug(tag, msg string) { log.WithField("tag", tag).Debug(msg) }
func Info(tag, msg string)  { log.WithField("tag", tag).Info(msg) }
func Warn(tag, msg string)  { log.WithField("tag", tag).Warn(msg) }
func Error(tag, msg string) { log.WithField("tag", tag).Error(msg) }

// Success logs an info-level line highlighted as a completed step.
func Success(tag, msg string) {
	log.WithFields(logrus.Fields{"tag": tag, "success": true}).Info(msg)
}

// Banner prints the startup banner.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, "  Drifter Tracker "+version)
	fmt.Fprintln(os.Stdout, "  wormhole sightings + hybrid routing")
	fmt.Fprintln(os.Stdout)
}

// Section prints a section header.
func Section(title string) {
	fmt.Fprintf(os.Stdout, "\n  -- %s --\n", title)
}

// Stats prints an aligned key/value line under a section.
func Stats(key string, value interface{}) {
	fmt.Fprintf(os.Stdout, "     %-18s %v\n", key, value)
}

// Server announces the listening address.
func Server(addr string) {
	Success("Server", fmt.Sprintf("Listening on http://%s", addr))
}

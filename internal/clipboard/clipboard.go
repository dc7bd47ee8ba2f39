// Package clipboard writes text to the system clipboard.
package clipboard

import (
	"strings"
	"sync"

	"golang.design/x/clipboard"

	"github.com/zhubert/tripchat/internal/errors"
	"github.com/zhubert/tripchat/internal/logger"
)

// Writer copies text somewhere the user can paste it from
type Writer interface {
	WriteText(text string) error
}

// System is the Writer backed by the OS clipboard
type System struct{}

var (
	initOnce sync.Once
	initErr  error
)

// Init initializes the clipboard. Safe to call multiple times; the first
// result is remembered.
func Init() error {
	initOnce.Do(func() {
		if err := clipboard.Init(); err != nil {
			logger.WithComponent("Clipboard").Warn("failed to initialize", "error", err)
			initErr = errors.E(errors.Op("clipboard.Init"), errors.KindIO, err)
			return
		}
		logger.WithComponent("Clipboard").Debug("initialized")
	})
	return initErr
}

// WriteText writes text to the clipboard.
func (System) WriteText(text string) error {
	if err := Init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	logger.WithComponent("Clipboard").Debug("wrote text", "bytes", len(text))
	return nil
}

// Memory is an in-process Writer for tests and headless runs
type Memory struct {
	mu   sync.Mutex
	text string
	err  error
}

// NewMemory returns a Memory writer that fails every write with err when
// err is non-nil
func NewMemory(err error) *Memory {
	return &Memory{err: err}
}

// WriteText stores text unless the writer was built to fail
func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.text = text
	return nil
}

// Text returns the last text written
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Normalize trims trailing whitespace and converts CRLF to LF so pasted
// replies look the same on every platform
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.TrimRight(text, " \t\n")
}

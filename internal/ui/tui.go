// Package ui provides the interactive task list.
package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"todo/internal/service"
)

// ErrNoTTY is returned by Run when stdout is not a terminal.
var ErrNoTTY = errors.New("ui requires a terminal")

// Run starts the widget on the terminal and blocks until the user quits.
// Log lines written while the screen is taken over are held back and
// flushed to logOut afterwards.
func Run(ctx context.Context, svc service.Service, logOut io.Writer) error {
	if !IsTTY(os.Stdout) {
		return ErrNoTTY
	}

	var held bytes.Buffer
	logger := log.FromContext(ctx).With()
	logger.SetOutput(&held)
	defer func() {
		_, _ = io.Copy(logOut, &held)
	}()

	model := NewModel(log.WithContext(ctx, logger), svc)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*Model); ok && m.loadErr != nil {
		return m.loadErr
	}
	return nil
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

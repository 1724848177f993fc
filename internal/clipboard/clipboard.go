// Package clipboard пишет текст в буфер обмена системы.
package clipboard

import (
	"context"
	"errors"
	"fmt"

	atotto "github.com/atotto/clipboard"
)

var ErrUnsupported = errors.New("no clipboard utility available")

// ClipboardError - запись в буфер обмена отклонена
type ClipboardError struct {
	Err error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("clipboard write failed: %v", e.Err)
}

func (e *ClipboardError) Unwrap() error {
	return e.Err
}

// Func позволяет использовать обычную функцию как буфер обмена
type Func func(ctx context.Context, text string) error

func (f Func) WriteText(ctx context.Context, text string) error {
	if err := f(ctx, text); err != nil {
		return &ClipboardError{Err: err}
	}
	return nil
}

// System - буфер обмена хоста. На Linux нужен xclip, xsel или wl-copy.
type System struct {
	write       func(string) error
	unsupported bool
}

func NewSystem() *System {
	return &System{write: atotto.WriteAll, unsupported: atotto.Unsupported}
}

// Unsupported сообщает, что на этой машине нет утилиты для работы с буфером
func (s *System) Unsupported() bool {
	return s.unsupported
}

// WriteText не ждёт зависшую утилиту дольше, чем живёт ctx
func (s *System) WriteText(ctx context.Context, text string) error {
	if s.unsupported {
		return &ClipboardError{Err: ErrUnsupported}
	}

	done := make(chan error, 1)
	go func() {
		done <- s.write(text)
	}()

	select {
	case err := <-done:
		if err != nil {
			return &ClipboardError{Err: err}
		}
		return nil
	case <-ctx.Done():
		return &ClipboardError{Err: ctx.Err()}
	}
}

// Package cli - построчный терминальный интерфейс к форме сокращения.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	model "github.com/IgorGreusunset/shortener-ui/internal/app"
	"github.com/IgorGreusunset/shortener-ui/internal/form"
)

const help = "Enter a long URL to shorten it. Commands: c (copy), s (state), q (quit)."

type Controller interface {
	State() model.FormState
	SetLongURL(value string)
	Submit(ctx context.Context, longURL string) error
	Copy(ctx context.Context) error
}

// View печатает переходы формы. Render подходит для form.WithOnChange.
type View struct {
	mu   sync.Mutex
	out  io.Writer
	prev model.FormState
}

func NewView(out io.Writer) *View {
	return &View{out: out}
}

func (v *View) Render(s model.FormState) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if s.Phase != v.prev.Phase || s.ShortURL != v.prev.ShortURL {
		switch s.Phase {
		case model.PhaseSubmitting:
			fmt.Fprintln(v.out, model.SubmitLoadingLabel)
		case model.PhaseSuccess:
			fmt.Fprintf(v.out, "%s %s\n", model.ResultCaption, s.ShortURL)
		case model.PhaseError:
			fmt.Fprintf(v.out, "Error: %s\n", s.Error)
		}
	}
	if s.CopyStatus != v.prev.CopyStatus && s.ShortURL != "" {
		fmt.Fprintf(v.out, "[%s]\n", s.CopyStatus)
	}
	v.prev = s
}

// Run читает команды из in, пока не встретит q или конец ввода
func Run(ctx context.Context, c Controller, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, model.Title)
	fmt.Fprintln(out, help)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(line) {
		case "":
			continue
		case "q", "quit", "exit":
			return nil
		case "h", "help":
			fmt.Fprintln(out, help)
		case "s", "state":
			printState(out, c.State())
		case "c", "copy":
			if err := c.Copy(ctx); err != nil {
				reportError(out, err)
			}
		default:
			c.SetLongURL(line)
			if err := c.Submit(ctx, line); err != nil {
				reportError(out, err)
			}
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func printState(out io.Writer, s model.FormState) {
	fmt.Fprintf(out, "phase: %s\n", s.Phase)
	if s.LongURL != "" {
		fmt.Fprintf(out, "long url: %s\n", s.LongURL)
	}
	if s.ShortURL != "" {
		fmt.Fprintf(out, "short url: %s [%s]\n", s.ShortURL, s.CopyStatus)
	}
	if s.Error != "" {
		fmt.Fprintf(out, "Error: %s\n", s.Error)
	}
}

func reportError(out io.Writer, err error) {
	switch {
	case errors.Is(err, form.ErrInvalidURL):
		fmt.Fprintln(out, "Please enter a URL, e.g. https://example.com")
	case errors.Is(err, form.ErrBusy):
		fmt.Fprintln(out, "Still shortening the previous URL.")
	case errors.Is(err, form.ErrNothingToCopy):
		fmt.Fprintln(out, "Nothing to copy yet.")
	default:
		fmt.Fprintf(out, "Error: %v\n", err)
	}
}

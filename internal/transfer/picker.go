package transfer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Picker hands the importer one file. Implementations must return promptly
// when ctx is done instead of waiting forever for a choice.
type Picker interface {
	// Pick returns the file content and a display name.
	Pick(ctx context.Context) (io.ReadCloser, string, error)
}

// PathPicker opens a file chosen up front, e.g. from a command line argument.
type PathPicker struct {
	Path string
}

func (p PathPicker) Pick(ctx context.Context) (io.ReadCloser, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	return openPath(p.Path)
}

// ReaderPicker serves content already in hand, such as an HTTP upload.
type ReaderPicker struct {
	Name   string
	Reader io.Reader
}

func (p ReaderPicker) Pick(ctx context.Context) (io.ReadCloser, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	if p.Reader == nil {
		return nil, "", ErrNoFileSelected
	}
	return io.NopCloser(p.Reader), p.Name, nil
}

// PromptPicker asks for a path on Out and reads the answer from In. An empty
// answer or end of input means nothing was selected; a done context aborts
// the wait.
type PromptPicker struct {
	In     io.Reader
	Out    io.Writer
	Prompt string
}

func (p PromptPicker) Pick(ctx context.Context) (io.ReadCloser, string, error) {
	if p.Out != nil {
		prompt := p.Prompt
		if prompt == "" {
			prompt = "Path to acronym file (*" + acceptedExt + "): "
		}
		if _, err := io.WriteString(p.Out, prompt); err != nil {
			return nil, "", err
		}
	}

	type answer struct {
		line string
		err  error
	}
	// Buffered so the reader goroutine can always finish once In yields.
	ch := make(chan answer, 1)
	go func() {
		line, err := bufio.NewReader(p.In).ReadString('\n')
		ch <- answer{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, "", ctx.Err()
	case a := <-ch:
		if a.err != nil && !errors.Is(a.err, io.EOF) {
			return nil, "", fmt.Errorf("failed to read path: %w", a.err)
		}
		return openPath(strings.TrimSpace(a.line))
	}
}

// acceptedExt is offered to the user; content is what is checked, not the name.
const acceptedExt = ".txt"

func openPath(path string) (io.ReadCloser, string, error) {
	if path == "" {
		return nil, "", ErrNoFileSelected
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s does not exist", ErrNoFileSelected, path)
		}
		return nil, "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err == nil && info.IsDir() {
		_ = f.Close()
		return nil, "", fmt.Errorf("%w: %s is a directory", ErrNoFileSelected, path)
	}
	return f, path, nil
}

package watcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zjrosen/spherenav/internal/log"
)

// Inbox reads lines appended to a file since the last read. A line is only
// returned once its trailing newline has been written. Truncating the file
// restarts reading from the top.
type Inbox struct {
	path    string
	offset  int64
	partial []byte
}

// NewInbox creates a reader for path. With fromStart false, lines already in
// the file are skipped.
func NewInbox(path string, fromStart bool) (*Inbox, error) {
	in := &Inbox{path: path}
	if fromStart {
		return in, nil
	}
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return in, nil
	case err != nil:
		return nil, fmt.Errorf("stat inbox: %w", err)
	}
	in.offset = info.Size()
	return in, nil
}

// ReadNew returns the complete, non-blank lines appended since the last call.
func (in *Inbox) ReadNew() ([]string, error) {
	f, err := os.Open(in.path) // #nosec G304 -- inbox path comes from config
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open inbox: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat inbox: %w", err)
	}
	if info.Size() < in.offset {
		log.Info(log.CatWatcher, "inbox truncated, rereading", "path", in.path)
		in.offset = 0
		in.partial = nil
	}

	if _, err := f.Seek(in.offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek inbox: %w", err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read inbox: %w", err)
	}
	in.offset += int64(len(data))

	data = append(in.partial, data...)
	cut := bytes.LastIndexByte(data, '\n')
	if cut < 0 {
		in.partial = data
		return nil, nil
	}
	in.partial = append([]byte(nil), data[cut+1:]...)

	var lines []string
	for _, line := range strings.Split(string(data[:cut]), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// Follow calls handle for every line appended to the inbox until ctx is done.
func Follow(ctx context.Context, cfg Config, fromStart bool, handle func(line string)) error {
	in, err := NewInbox(cfg.Path, fromStart)
	if err != nil {
		return err
	}
	w, err := New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	changes, err := w.Start()
	if err != nil {
		return err
	}

	drain := func() error {
		lines, err := in.ReadNew()
		if err != nil {
			return err
		}
		for _, line := range lines {
			handle(line)
		}
		return nil
	}

	if err := drain(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			if err := drain(); err != nil {
				log.ErrorErr(log.CatWatcher, "read inbox failed", err, "path", cfg.Path)
			}
		}
	}
}

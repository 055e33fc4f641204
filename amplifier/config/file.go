/*
DESCRIPTION
  file.go provides reading of configuration variables from a file of
  "Key = Value" lines, and watching of that file so that changes can be
  applied while an amplifier is running.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/ausocean/utils/logging"
)

// ParseVars reads "Key = Value" lines from r. Blank lines and lines starting
// with # are ignored. Later keys override earlier ones.
func ParseVars(r io.Reader) (map[string]string, error) {
	vars := make(map[string]string)
	s := bufio.NewScanner(r)
	for line := 1; s.Scan(); line++ {
		l := strings.TrimSpace(s.Text())
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		k, v, ok := strings.Cut(l, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("line %d: expected Key = Value, got %q", line, l)
		}
		vars[k] = strings.TrimSpace(v)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("could not read vars: %w", err)
	}
	return vars, nil
}

// ReadVars reads the vars file at path.
func ReadVars(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open vars file: %w", err)
	}
	defer f.Close()
	return ParseVars(f)
}

// Watch calls fn with the vars read from path each time the file is written
// or replaced, until ctx is done. The directory containing path is watched so
// that editors which replace the file are handled. Read or parse errors are
// logged and the change is skipped.
func Watch(ctx context.Context, path string, l logging.Logger, fn func(map[string]string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create watcher: %w", err)
	}
	defer w.Close()

	path = filepath.Clean(path)
	err = w.Add(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("could not watch %s: %w", filepath.Dir(path), err)
	}
	l.Info("watching vars file", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			l.Warning("vars file watch error", "error", err.Error())
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			l.Debug("vars file changed", "op", ev.Op.String())
			vars, err := ReadVars(path)
			if err != nil {
				l.Warning("could not read vars file", "error", err.Error())
				continue
			}
			fn(vars)
		}
	}
}

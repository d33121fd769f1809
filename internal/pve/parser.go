package pve

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseFile reads a qemu-server config file into a GuestConfig.
func ParseFile(path string) (*GuestConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	return cfg, nil
}

// Parse reads qemu-server config syntax: one "key: value" pair per line,
// with blank lines and # comments skipped. Snapshot sections ([name]
// headers) describe historic state rather than the current VM, so parsing
// stops at the first one. A non-empty line without a key/value separator
// fails with a *ParseError.
func Parse(r io.Reader) (*GuestConfig, error) {
	cfg := NewGuestConfig()
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if strings.HasPrefix(text, "[") {
			break
		}
		key, value, ok := strings.Cut(text, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, &ParseError{Line: line, Text: text}
		}
		cfg.Set(key, strings.TrimSpace(value))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}

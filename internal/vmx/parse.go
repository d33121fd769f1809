package vmx

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Parse reads a descriptor back from .vmx syntax. Values may be quoted or
// bare; blank lines and # comments are skipped.
func Parse(r io.Reader) (*Descriptor, error) {
	d := NewDescriptor()
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		key, value, ok := strings.Cut(text, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("line %d: not a key/value pair: %q", line, text)
		}
		d.Set(key, strings.Trim(strings.TrimSpace(value), `"`))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read descriptor: %w", err)
	}
	return d, nil
}

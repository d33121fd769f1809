package pve

import "fmt"

// ParseError reports a malformed line in a qemu-server config file.
type ParseError struct {
	Path string
	Line int
	Text string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%d: malformed config line %q", e.Path, e.Line, e.Text)
	}
	return fmt.Sprintf("line %d: malformed config line %q", e.Line, e.Text)
}

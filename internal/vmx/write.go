package vmx

import (
	"bytes"
	"fmt"
	"os"
)

// WriteError reports a filesystem failure while writing a descriptor.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write descriptor %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// WriteFile validates the descriptor and writes it to path. The parent
// directory must already exist.
func (d *Descriptor) WriteFile(path string) error {
	if err := d.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := d.Encode(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

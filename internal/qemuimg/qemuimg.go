// Package qemuimg shells out to qemu-img for disk image conversion.
package qemuimg

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

const (
	// DefaultBinary is the qemu-img executable looked up on PATH.
	DefaultBinary = "qemu-img"

	// DefaultVMDKOptions produce disks readable by both ESXi and
	// Workstation: LSI Logic adapter, flat extent, hardware compat level 6.
	DefaultVMDKOptions = "adapter_type=lsilogic,subformat=monolithicFlat,compat6"
)

// Converter transcodes disk images to VMDK by invoking qemu-img.
type Converter struct {
	Binary  string
	Options string
	Log     *slog.Logger
}

// New returns a Converter, filling in defaults for empty fields.
func New(binary, options string, log *slog.Logger) *Converter {
	if binary == "" {
		binary = DefaultBinary
	}
	if options == "" {
		options = DefaultVMDKOptions
	}
	if log == nil {
		log = slog.Default()
	}
	return &Converter{Binary: binary, Options: options, Log: log}
}

// ConversionError reports a failed qemu-img invocation.
type ConversionError struct {
	Source string
	Target string
	Stderr string
	Err    error
}

func (e *ConversionError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("qemu-img convert %s: %v: %s", e.Source, e.Err, e.Stderr)
	}
	return fmt.Sprintf("qemu-img convert %s: %v", e.Source, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Convert transcodes src into a VMDK at dst, blocking until qemu-img
// exits. Progress updates are streamed to the logger. There is no retry:
// a nonzero exit fails the conversion.
func (c *Converter) Convert(ctx context.Context, src, dst string) error {
	cmd := exec.CommandContext(ctx, c.Binary, c.args(src, dst)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &ConversionError{Source: src, Target: dst, Err: err}
	}

	if err := cmd.Start(); err != nil {
		return &ConversionError{Source: src, Target: dst, Err: err}
	}
	c.streamProgress(stdout)

	if err := cmd.Wait(); err != nil {
		return &ConversionError{
			Source: src,
			Target: dst,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return nil
}

func (c *Converter) args(src, dst string) []string {
	return []string{"convert", "-p", "-O", "vmdk", "-o", c.Options, src, dst}
}

// streamProgress forwards qemu-img's progress updates to the logger.
// With -p, qemu-img redraws a progress line delimited by carriage returns.
func (c *Converter) streamProgress(r io.Reader) {
	sc := bufio.NewScanner(r)
	sc.Split(scanProgressLines)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			c.Log.Info("converting", "progress", line)
		}
	}
}

// scanProgressLines splits on \r as well as \n.
func scanProgressLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

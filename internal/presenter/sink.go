package presenter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/rptree/internal/services/clipboard"
)

// SinkKind identifies the destination a Sink writes to.
type SinkKind int

const (
	// SinkKindTerminal writes bare lines to a terminal stream.
	SinkKindTerminal SinkKind = iota
	// SinkKindFile writes a fenced block to a named file.
	SinkKindFile
	// SinkKindClipboard copies a fenced block to the system clipboard.
	SinkKindClipboard
)

// ErrDestination reports an output destination that could not be opened or written.
var ErrDestination = errors.New("output destination unavailable")

const (
	markdownFence        = "```"
	markdownHeaderFormat = "Tree of " + markdownFence + "%s" + markdownFence + ":"
	lineTerminator       = "\n"

	errorDestinationFormat  = "%w: %s: %w"
	errorAbsoluteRootFormat = "resolve absolute path for %s: %w"
	clipboardDestination    = "clipboard"
)

// String returns the lowercase name of the sink kind.
func (kind SinkKind) String() string {
	switch kind {
	case SinkKindTerminal:
		return "terminal"
	case SinkKindFile:
		return "file"
	case SinkKindClipboard:
		return clipboardDestination
	default:
		return "unknown"
	}
}

// Sink receives a finished tree rendering.
type Sink interface {
	Kind() SinkKind
	Write(rootPath string, lines []string) error
}

// WrapMarkdown surrounds lines with a header naming absoluteRoot and a fenced
// code block. The opening fence is followed by one blank line.
func WrapMarkdown(absoluteRoot string, lines []string) []string {
	wrapped := make([]string, 0, len(lines)+4)
	wrapped = append(wrapped, fmt.Sprintf(markdownHeaderFormat, absoluteRoot), markdownFence, "")
	wrapped = append(wrapped, lines...)
	return append(wrapped, markdownFence)
}

// wrapForRoot resolves rootPath against the working directory and wraps lines.
func wrapForRoot(rootPath string, lines []string) ([]string, error) {
	absoluteRoot, absoluteError := filepath.Abs(rootPath)
	if absoluteError != nil {
		return nil, fmt.Errorf(errorAbsoluteRootFormat, rootPath, absoluteError)
	}
	return WrapMarkdown(absoluteRoot, lines), nil
}

// TerminalSink writes lines unwrapped to a stream such as os.Stdout.
type TerminalSink struct {
	writer io.Writer
}

// NewTerminalSink constructs a TerminalSink writing to writer.
func NewTerminalSink(writer io.Writer) *TerminalSink {
	return &TerminalSink{writer: writer}
}

// Kind returns SinkKindTerminal.
func (sink *TerminalSink) Kind() SinkKind {
	return SinkKindTerminal
}

// Write prints each line as it is reached.
func (sink *TerminalSink) Write(_ string, lines []string) error {
	for _, line := range lines {
		if _, writeError := io.WriteString(sink.writer, line+lineTerminator); writeError != nil {
			return writeError
		}
	}
	return nil
}

// FileSink writes a fenced block to a named file, replacing any previous content.
type FileSink struct {
	path string
}

// NewFileSink constructs a FileSink writing to path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Kind returns SinkKindFile.
func (sink *FileSink) Kind() SinkKind {
	return SinkKindFile
}

// Path returns the destination file path.
func (sink *FileSink) Path() string {
	return sink.path
}

// Write wraps lines and writes them to the destination. The file is closed on
// every return path; a close failure is reported when nothing failed earlier.
func (sink *FileSink) Write(rootPath string, lines []string) (err error) {
	wrapped, wrapError := wrapForRoot(rootPath, lines)
	if wrapError != nil {
		return wrapError
	}

	destination, createError := os.Create(sink.path)
	if createError != nil {
		return fmt.Errorf(errorDestinationFormat, ErrDestination, sink.path, createError)
	}
	defer func() {
		if closeError := destination.Close(); closeError != nil && err == nil {
			err = fmt.Errorf(errorDestinationFormat, ErrDestination, sink.path, closeError)
		}
	}()

	bufferedWriter := bufio.NewWriter(destination)
	for _, line := range wrapped {
		if _, writeError := bufferedWriter.WriteString(line + lineTerminator); writeError != nil {
			return fmt.Errorf(errorDestinationFormat, ErrDestination, sink.path, writeError)
		}
	}
	if flushError := bufferedWriter.Flush(); flushError != nil {
		return fmt.Errorf(errorDestinationFormat, ErrDestination, sink.path, flushError)
	}
	return nil
}

// ClipboardSink copies the same fenced block a FileSink writes.
type ClipboardSink struct {
	copier clipboard.Copier
}

// NewClipboardSink constructs a ClipboardSink backed by copier.
func NewClipboardSink(copier clipboard.Copier) *ClipboardSink {
	return &ClipboardSink{copier: copier}
}

// Kind returns SinkKindClipboard.
func (sink *ClipboardSink) Kind() SinkKind {
	return SinkKindClipboard
}

// Write wraps lines exactly as FileSink does and copies the block, with a
// trailing newline, in a single clipboard call.
func (sink *ClipboardSink) Write(rootPath string, lines []string) error {
	wrapped, wrapError := wrapForRoot(rootPath, lines)
	if wrapError != nil {
		return wrapError
	}
	text := strings.Join(wrapped, lineTerminator) + lineTerminator
	if copyError := sink.copier.Copy(text); copyError != nil {
		return fmt.Errorf(errorDestinationFormat, ErrDestination, clipboardDestination, copyError)
	}
	return nil
}

var (
	_ Sink = (*TerminalSink)(nil)
	_ Sink = (*FileSink)(nil)
	_ Sink = (*ClipboardSink)(nil)
)

// Package clipboard places rendered trees on the desktop clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Copier receives the full text of a rendered tree.
type Copier interface {
	Copy(text string) error
}

// Service is the Copier used by the rptree command. It shells out to the
// platform clipboard tool (pbcopy, xclip, xsel, wl-copy or clip.exe).
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Copy replaces the clipboard contents with text.
func (service *Service) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// Available is false when none of the supported clipboard tools was found at startup.
func (service *Service) Available() bool {
	return !clipboard.Unsupported
}

var _ Copier = (*Service)(nil)

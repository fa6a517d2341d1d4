// Package presenter renders a directory tree and hands it to a terminal, file or clipboard sink.
package presenter

import (
	"go.uber.org/zap"

	"github.com/temirov/rptree/internal/tree"
)

// Presenter connects tree generation to an output Sink.
type Presenter struct {
	logger *zap.Logger
}

// NewPresenter constructs a Presenter. A nil logger discards messages.
func NewPresenter(logger *zap.Logger) *Presenter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Presenter{logger: logger}
}

// Present renders rootPath and writes the result to sink. Generation errors
// are returned unchanged and nothing reaches the sink in that case.
func (presenter *Presenter) Present(rootPath string, directoriesOnly bool, sink Sink) error {
	generator := tree.NewGenerator(tree.Options{
		DirectoriesOnly: directoriesOnly,
		Logger:          presenter.logger,
	})
	lines, buildError := generator.Build(rootPath)
	if buildError != nil {
		return buildError
	}

	presenter.logger.Debug("rendered tree",
		zap.String("root", rootPath),
		zap.Int("lines", len(lines)),
		zap.Stringer("sink", sink.Kind()),
	)
	return sink.Write(rootPath, lines)
}

package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fmizzell/taskpad"
)

// screen is the Presenter the App drives. The Model reads it back when drawing.
type screen struct {
	view      taskpad.View
	notices   []taskpad.Notice
	exportDir string
}

func (s *screen) Render(view taskpad.View) {
	s.view = view
}

func (s *screen) Notify(notice taskpad.Notice) {
	s.notices = append(s.notices, notice)
}

// Deliver writes the artifact into the export directory
func (s *screen) Deliver(artifact taskpad.Artifact) error {
	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(s.exportDir, artifact.Name)
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

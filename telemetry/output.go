// Package telemetry records zoom-to-fit traces and teleport events as CSV
// and summarizes solver behavior.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/voidbox/config"
)

// OutputManager handles structured run output with CSV logging. A nil
// manager is valid and drops everything, so callers never need to guard.
type OutputManager struct {
	dir          string
	zoomFile     *os.File
	teleportFile *os.File

	zoomHeaderWritten     bool
	teleportHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the
// output directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "zoom.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating zoom.csv: %w", err)
	}
	om.zoomFile = f

	f, err = os.Create(filepath.Join(dir, "teleports.csv"))
	if err != nil {
		om.zoomFile.Close()
		return nil, fmt.Errorf("creating teleports.csv: %w", err)
	}
	om.teleportFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteZoomStep appends one solver iteration to zoom.csv.
func (om *OutputManager) WriteZoomStep(rec ZoomStepRecord) error {
	if om == nil {
		return nil
	}

	records := []ZoomStepRecord{rec}
	if !om.zoomHeaderWritten {
		if err := gocsv.Marshal(records, om.zoomFile); err != nil {
			return fmt.Errorf("writing zoom step: %w", err)
		}
		om.zoomHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.zoomFile); err != nil {
			return fmt.Errorf("writing zoom step: %w", err)
		}
	}
	return nil
}

// WriteTeleport appends one boundary wrap to teleports.csv.
func (om *OutputManager) WriteTeleport(rec TeleportRecord) error {
	if om == nil {
		return nil
	}

	records := []TeleportRecord{rec}
	if !om.teleportHeaderWritten {
		if err := gocsv.Marshal(records, om.teleportFile); err != nil {
			return fmt.Errorf("writing teleport: %w", err)
		}
		om.teleportHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.teleportFile); err != nil {
			return fmt.Errorf("writing teleport: %w", err)
		}
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	if om.zoomFile != nil {
		if err := om.zoomFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if om.teleportFile != nil {
		if err := om.teleportFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/optilens/optilens/internal/models"
)

// LoadArtifact reads the analysis payload back out of a rendered
// report. The payload never contains a literal "</script" (angle
// brackets are escaped at encode time), so the first closing tag after
// the island opener terminates it.
func LoadArtifact(path string) (*models.Analysis, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("report: read %s: %w", path, err)
	}

	start := bytes.Index(raw, []byte(dataIslandOpen))
	if start < 0 {
		return nil, fmt.Errorf("report: %s has no analysis data island", path)
	}
	rest := raw[start+len(dataIslandOpen):]
	end := bytes.Index(rest, []byte(dataIslandClose))
	if end < 0 {
		return nil, fmt.Errorf("report: %s: analysis data island is unterminated", path)
	}

	var a models.Analysis
	if err := json.Unmarshal(rest[:end], &a); err != nil {
		return nil, fmt.Errorf("report: decode analysis data island of %s: %w", path, err)
	}
	return &a, nil
}

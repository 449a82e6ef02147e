package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/fiber/cmd/fiberdemo/internal/demo"
)

// loadScript reads a YAML list of steps from path. An empty path selects
// the built-in script.
func loadScript(path string) ([]demo.Step, error) {
	if path == "" {
		return demo.Script, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	var steps []demo.Step
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for i, step := range steps {
		if step.Event == "" || step.Target == "" {
			return nil, fmt.Errorf("%s: step %d needs an event and a target", path, i)
		}
	}
	return steps, nil
}

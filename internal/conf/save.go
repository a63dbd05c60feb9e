// save.go: persists settings back to the active config file
package conf

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveSettings writes the given settings to the active config.yaml. The file
// is written to a temporary file first and then renamed so a crash mid-write
// cannot leave a truncated config behind.
func SaveSettings(settings *Settings) error {
	configPath, err := FindConfigFile()
	if err != nil {
		// No existing config, create one at the preferred location
		configPaths, pathErr := GetDefaultConfigPaths()
		if pathErr != nil {
			return pathErr
		}
		configPath = filepath.Join(configPaths[0], "config.yaml")
		if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error marshaling settings to yaml: %w", err)
	}

	tempPath := configPath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("error writing temporary config file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		// Clean up the temp file on failure, best effort
		_ = os.Remove(tempPath)
		return fmt.Errorf("error replacing config file: %w", err)
	}

	return nil
}

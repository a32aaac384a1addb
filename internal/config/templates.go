package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Farm Manager Configuration

[market]
# Path to the fallback mandi price dataset (Agmarknet CSV export)
dataset_path = ""
# Live mandi price feed base URL (leave empty to always use the dataset)
feed_url = ""
# Hard timeout for a single live feed request
feed_timeout = "5s"
# Forecast horizon in days
forecast_horizon = 7

[weather]
# Weather provider endpoint
base_url = "https://api.openweathermap.org/data/2.5/weather"
# Hard timeout for a single weather request
timeout = "10s"

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "02-Jan-2006"
`

const credentialsTemplate = `# Farm Manager Credentials
# Keep this file private (chmod 600).

[openweather]
api_key = ""
`

// createTemplateConfig writes a template config file if none exists.
func createTemplateConfig(configDir, name string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name+".toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}

// createTemplateCredentials writes a template credentials file if none exists.
func createTemplateCredentials(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "credentials.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(credentialsTemplate), 0600); err != nil {
		return fmt.Errorf("writing credentials template: %w", err)
	}

	return nil
}

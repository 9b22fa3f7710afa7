package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// projectConfig is an optional per-project settings file, read with the
// `yaml.Unmarshal`-onto-a-struct convention, for the one ambient setting
// this CLI needs a project-wide default for.
type projectConfig struct {
	Lint struct {
		Exhaustiveness string `yaml:"exhaustiveness"`
	} `yaml:"lint"`
}

// loadProjectConfig reads `ailang.yaml` or `.ailang.yaml` from the current
// directory, if either exists. A missing or unparsable file yields a nil
// config rather than an error: this is a convenience default, not a
// required project file.
func loadProjectConfig() *projectConfig {
	for _, name := range []string{"ailang.yaml", ".ailang.yaml"} {
		data, err := os.ReadFile(name)
		if err != nil {
			continue
		}
		var cfg projectConfig
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return &cfg
		}
	}
	return nil
}

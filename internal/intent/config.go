// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intent

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// labelConfig is one intent in the YAML configuration file. Template
// fields are optional; a label without a template only participates in
// classification.
type labelConfig struct {
	Name     string   `yaml:"name"`
	Triggers []string `yaml:"triggers"`
	Template string   `yaml:"template,omitempty"`
	// Confidence defaults to 0.7 when a template is set but no
	// confidence is given.
	Confidence float64 `yaml:"confidence,omitempty"`
	Augment    string  `yaml:"augment,omitempty"`
}

type fileConfig struct {
	Intents []labelConfig `yaml:"intents"`
}

// LoadConfig builds a classifier from a YAML file, replacing the built-in
// hospital-domain defaults wholesale. The file must declare at least one
// intent; a "general" label is appended automatically if absent so
// classification stays total.
func LoadConfig(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading intent config %s: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing intent config %s: %w", path, err)
	}
	if len(cfg.Intents) == 0 {
		return nil, fmt.Errorf("intent config %s declares no intents", path)
	}

	labels := make([]Label, 0, len(cfg.Intents)+1)
	templates := make(map[string]Template, len(cfg.Intents))
	hasGeneral := false
	for _, ic := range cfg.Intents {
		if ic.Name == "" {
			return nil, fmt.Errorf("intent config %s: intent with empty name", path)
		}
		if ic.Name == General {
			hasGeneral = true
		}
		labels = append(labels, Label{Name: ic.Name, Triggers: ic.Triggers})
		if ic.Template != "" {
			confidence := ic.Confidence
			if confidence <= 0 {
				confidence = 0.7
			}
			templates[ic.Name] = Template{
				Text:       ic.Template,
				Confidence: confidence,
				Augment:    ic.Augment,
			}
		}
	}
	if !hasGeneral {
		labels = append(labels, Label{Name: General})
	}

	return NewClassifier(labels, templates), nil
}

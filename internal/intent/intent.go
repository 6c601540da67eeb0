// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package intent classifies queries into a fixed set of intent labels and
// serves the per-intent response templates used when retrieval confidence
// is low. Labels, triggers, and templates are static configuration; the
// classifier never mutates at runtime.
package intent

import (
	"strings"

	"github.com/pdiddy/answer-engine/internal/textnorm"
)

// General is the catch-all label returned when no trigger matches.
const General = "general"

// Label is one intent with its ordered trigger substrings. Declaration
// order doubles as tie-break priority: the first-declared label wins when
// trigger counts are equal and nonzero.
type Label struct {
	Name     string   `yaml:"name"`
	Triggers []string `yaml:"triggers"`
}

// Template is the canned response for one intent, with its fixed
// confidence.
type Template struct {
	Text       string  `yaml:"text"`
	Confidence float64 `yaml:"confidence"`

	// Augment, when non-empty, is the clarifying sentence appended to a
	// semantically matched answer classified under this intent.
	Augment string `yaml:"augment,omitempty"`
}

// Classifier maps query text to intent labels and holds the template set.
type Classifier struct {
	labels          []Label
	templates       map[string]Template
	generalVariants []variant
}

// variant is a sub-template for the general label, selected by keyword
// (greeting, gratitude, farewell).
type variant struct {
	words []string
	tpl   Template
}

// NewClassifier builds a classifier over the given labels and templates.
// Label order is preserved for tie-breaking.
func NewClassifier(labels []Label, templates map[string]Template) *Classifier {
	return &Classifier{labels: labels, templates: templates}
}

// Default returns the built-in hospital-domain classifier.
func Default() *Classifier {
	c := NewClassifier(defaultLabels(), defaultTemplates())
	c.generalVariants = defaultGeneralVariants()
	return c
}

// Classify returns the label whose triggers appear most often in the
// normalized text. Pure and total: ties resolve to the first-declared
// label, and a zero score for every label yields General.
func (c *Classifier) Classify(text string) string {
	norm := textnorm.Normalize(text)

	best := General
	bestCount := 0
	for _, label := range c.labels {
		count := 0
		for _, trigger := range label.Triggers {
			if strings.Contains(norm, textnorm.Normalize(trigger)) {
				count++
			}
		}
		if count > bestCount {
			best = label.Name
			bestCount = count
		}
	}
	return best
}

// Template returns the canned response for a label, if one is configured.
func (c *Classifier) Template(label string) (Template, bool) {
	tpl, ok := c.templates[label]
	return tpl, ok
}

// TemplateFor returns the template for a label, consulting the query text
// for the general label so greetings, thanks, and farewells each get their
// own response rather than the generic guidance text.
func (c *Classifier) TemplateFor(label, text string) (Template, bool) {
	if label == General && len(c.generalVariants) > 0 {
		// Whole-word match: "hi" must not fire inside "this".
		norm := " " + textnorm.Normalize(text) + " "
		for _, v := range c.generalVariants {
			for _, w := range v.words {
				if strings.Contains(norm, " "+w+" ") {
					return v.tpl, true
				}
			}
		}
	}
	return c.Template(label)
}

// Augment appends the label's clarifying sentence to a matched answer.
// The pricing augmentation applies only to answers that hedge ("varies",
// "depend"), mirroring how price answers are usually phrased in the
// corpus; every other augmentation applies unconditionally.
func (c *Classifier) Augment(answer, label string) string {
	tpl, ok := c.templates[label]
	if !ok || tpl.Augment == "" {
		return answer
	}
	if label == "pricing" {
		lower := strings.ToLower(answer)
		if !strings.Contains(lower, "varies") && !strings.Contains(lower, "depend") {
			return answer
		}
	}
	return answer + " " + tpl.Augment
}

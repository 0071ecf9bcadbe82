package assist

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/zangerai/zanger/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var templatesYAML []byte

// Assistant identifies one of the chat panels.
type Assistant string

// Known assistants.
const (
	AssistantQualifier    Assistant = "qualifier"
	AssistantCompleteness Assistant = "completeness"
	AssistantDocuments    Assistant = "documents"
)

// Template is one canned response, with optional generated artifact text.
type Template struct {
	ID       string `yaml:"id"`
	RU       string `yaml:"ru"`
	EN       string `yaml:"en"`
	OutputRU string `yaml:"output_ru"`
	OutputEN string `yaml:"output_en"`
}

// Reply returns the response body for a language.
func (t Template) Reply(lang domain.Language) string {
	if lang == domain.LanguageEN {
		return t.EN
	}
	return t.RU
}

// Output returns the generated artifact text for a language, empty when
// the template produces none.
func (t Template) Output(lang domain.Language) string {
	if lang == domain.LanguageEN {
		return t.OutputEN
	}
	return t.OutputRU
}

// ResponseRule maps message keywords to a template. Rules are evaluated
// in order; the first rule with a matching keyword wins.
type ResponseRule struct {
	Keywords []string `yaml:"keywords"`
	Template string   `yaml:"template"`
}

// Ruleset is the matching policy for one assistant.
type Ruleset struct {
	ID        Assistant      `yaml:"id"`
	Fallback  string         `yaml:"fallback"`
	Rules     []ResponseRule `yaml:"rules"`
	Templates []Template     `yaml:"templates"`
}

// Match selects the template for a message in a single pass over the
// rules, falling back to the assistant's default template.
func (rs *Ruleset) Match(message string) Template {
	lower := strings.ToLower(message)
	for _, rule := range rs.Rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				if t, ok := rs.template(rule.Template); ok {
					return t
				}
			}
		}
	}
	t, _ := rs.template(rs.Fallback)
	return t
}

func (rs *Ruleset) template(id string) (Template, bool) {
	for _, t := range rs.Templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

type rulesFile struct {
	Assistants []Ruleset `yaml:"assistants"`
}

// LoadRulesets parses the embedded template pack.
func LoadRulesets() (map[Assistant]*Ruleset, error) {
	var f rulesFile
	if err := yaml.Unmarshal(templatesYAML, &f); err != nil {
		return nil, fmt.Errorf("parse assistant templates: %w", err)
	}

	out := make(map[Assistant]*Ruleset, len(f.Assistants))
	for i := range f.Assistants {
		rs := &f.Assistants[i]
		if _, ok := rs.template(rs.Fallback); !ok {
			return nil, fmt.Errorf("assistant %s: fallback template %q missing", rs.ID, rs.Fallback)
		}
		for _, rule := range rs.Rules {
			if _, ok := rs.template(rule.Template); !ok {
				return nil, fmt.Errorf("assistant %s: rule template %q missing", rs.ID, rule.Template)
			}
		}
		out[rs.ID] = rs
	}
	return out, nil
}

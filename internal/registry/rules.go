package registry

import "strings"

// Case type categories derived from the criminal qualification.
const (
	TypeEconomicCrime = "Экономическое преступление"
	TypeStateTheft    = "Хищение государственного имущества"
	TypeTaxCrime      = "Налоговое преступление"
	TypeCorruption    = "Коррупционное преступление"
	TypeGeneric       = "Уголовное дело"
)

// TypeRule maps qualification keywords to a case-type category.
type TypeRule struct {
	Keywords []string
	CaseType string
}

// typeRules is evaluated in order; the first rule with a matching keyword
// wins. Article numbers refer to the Criminal Code of Kazakhstan.
var typeRules = []TypeRule{
	{Keywords: []string{"190", "мошенничество"}, CaseType: TypeEconomicCrime},
	{Keywords: []string{"189", "присвоение"}, CaseType: TypeStateTheft},
	{Keywords: []string{"231", "налог"}, CaseType: TypeTaxCrime},
	{Keywords: []string{"366", "взятк"}, CaseType: TypeCorruption},
}

// DeriveType categorizes a qualification string in a single pass over the
// rules table.
func DeriveType(qualification string) string {
	lower := strings.ToLower(qualification)
	for _, rule := range typeRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.CaseType
			}
		}
	}
	return TypeGeneric
}

package assist

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zangerai/zanger/internal/domain"
)

func TestLoadRulesets(t *testing.T) {
	rules, err := LoadRulesets()
	require.NoError(t, err)

	for _, a := range []Assistant{AssistantQualifier, AssistantCompleteness, AssistantDocuments} {
		require.Contains(t, rules, a)
	}
}

func TestMatchKeywordSelectsTemplate(t *testing.T) {
	rules, err := LoadRulesets()
	require.NoError(t, err)

	tests := []struct {
		assistant Assistant
		message   string
		wantID    string
	}{
		{AssistantQualifier, "Какая статья подходит?", "qualifier-article"},
		{AssistantQualifier, "КВАЛИФИКАЦИЯ по делу", "qualifier-article"},
		{AssistantQualifier, "Привет", "qualifier-intro"},
		{AssistantDocuments, "Подготовь обвинительный акт", "documents-indictment"},
		{AssistantDocuments, "Нужно ходатайство", "documents-petition"},
		{AssistantDocuments, "Помоги", "documents-intro"},
		{AssistantCompleteness, "что угодно", "completeness-report"},
	}
	for _, tc := range tests {
		got := rules[tc.assistant].Match(tc.message)
		require.Equal(t, tc.wantID, got.ID, "%s: %q", tc.assistant, tc.message)
	}
}

func TestTemplateLanguageSelection(t *testing.T) {
	rules, err := LoadRulesets()
	require.NoError(t, err)

	tmpl := rules[AssistantCompleteness].Match("проверь документ")
	require.NotEqual(t, tmpl.Reply(domain.LanguageRU), tmpl.Reply(domain.LanguageEN))
	require.Contains(t, tmpl.Output(domain.LanguageRU), "ЗАКЛЮЧЕНИЕ")
	require.Contains(t, tmpl.Output(domain.LanguageEN), "CONCLUSION")

	// Templates without artifacts yield empty output.
	intro := rules[AssistantQualifier].Match("привет")
	require.Empty(t, intro.Output(domain.LanguageRU))
}

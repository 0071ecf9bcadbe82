package domain

// Section is a top-level view the router can make active. The set is
// extensible: any section may transition to any other.
type Section string

// Known sections.
const (
	SectionOverview      Section = "overview"
	SectionCases         Section = "cases"
	SectionAISystem      Section = "aiSystem"
	SectionLegalInfo     Section = "legalInfo"
	SectionDocumentsCase Section = "documentsCase"
	SectionDocuments     Section = "documents"
	SectionQualification Section = "qualification"
	SectionSettings      Section = "settings"
)

// NavigationState is the router-owned view state. It is transient: only the
// default active section survives a reload.
type NavigationState struct {
	ActiveSection  Section  `json:"activeSection"`
	SelectedCaseID string   `json:"selectedCaseId,omitempty"`
	Context        Context  `json:"-"`
	Breadcrumb     []string `json:"breadcrumb"`
}

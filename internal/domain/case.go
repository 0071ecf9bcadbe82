package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// CaseStatus is the processing status of a case.
type CaseStatus string

// Case statuses.
const (
	StatusActive    CaseStatus = "Active"
	StatusPending   CaseStatus = "Pending"
	StatusInReview  CaseStatus = "In Review"
	StatusCompleted CaseStatus = "Completed"
)

// CasePriority is the handling priority of a case.
type CasePriority string

// Case priorities.
const (
	PriorityHigh   CasePriority = "High"
	PriorityMedium CasePriority = "Medium"
	PriorityLow    CasePriority = "Low"
)

// GeneratedFile is an AI-produced artifact attached to a case.
type GeneratedFile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	GeneratedAt time.Time `json:"generatedAt"`
	Size        string    `json:"size"`
}

// Document is a user-uploaded file attached to a case.
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	UploadedAt time.Time `json:"uploadedAt"`
	Size       string    `json:"size"`
}

// Case is the central business entity: one criminal case file.
// DamageAmount and IncomeAmount are minor-unit KZT.
type Case struct {
	ID               string          `json:"id"`
	FIO              string          `json:"fio"`
	Patronymic       string          `json:"patronymic,omitempty"`
	IIN              string          `json:"iin"`
	Organization     string          `json:"organization"`
	Investigator     string          `json:"investigator"`
	RegistrationDate time.Time       `json:"registration_date"`
	Qualification    string          `json:"qualification"`
	DamageAmount     int64           `json:"damage_amount"`
	IncomeAmount     int64           `json:"income_amount"`
	IndictmentDate   time.Time       `json:"indictment_date"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	Status           CaseStatus      `json:"status"`
	Priority         CasePriority    `json:"priority"`
	Deadline         time.Time       `json:"deadline"`
	Description      string          `json:"description"`
	GeneratedFiles   []GeneratedFile `json:"generatedFiles"`
	Documents        []Document      `json:"documents"`
}

// CaseDraft is the case-intake form payload. Dates and amounts arrive as
// strings from the form layer and are parsed during Create.
type CaseDraft struct {
	FIO              string `json:"fio" validate:"required"`
	Patronymic       string `json:"patronymic"`
	IIN              string `json:"iin" validate:"required,len=12,numeric"`
	Organization     string `json:"organization" validate:"required"`
	Investigator     string `json:"investigator" validate:"required"`
	RegistrationDate string `json:"registration_date" validate:"required"`
	Qualification    string `json:"qualification" validate:"required"`
	DamageAmount     string `json:"damage_amount" validate:"required"`
	IncomeAmount     string `json:"income_amount"`
	IndictmentDate   string `json:"indictment_date"`
	Priority         string `json:"priority"`
	Description      string `json:"description" validate:"required"`
}

// ValidationError carries per-field messages from case-intake validation.
// The caller re-presents the map inline; no partial case is created.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}

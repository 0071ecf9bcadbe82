// Package registry owns the in-memory collection of case files.
package registry

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/zangerai/zanger/internal/domain"
)

// ErrNotFound is returned when a case id is not in the registry.
var ErrNotFound = errors.New("case not found")

const (
	dateLayout      = "2006-01-02"
	deadlineDays    = 180
	defaultPriority = domain.PriorityMedium
)

// Registry holds cases in insertion order, newest first. Cases are never
// deleted; attachments mutate them in place.
type Registry struct {
	mu       sync.Mutex
	cases    []domain.Case
	validate *validator.Validate
	now      func() time.Time
}

// New creates a registry seeded with the given cases, preserving their order.
func New(seed ...domain.Case) *Registry {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})

	return &Registry{
		cases:    append([]domain.Case(nil), seed...),
		validate: v,
		now:      time.Now,
	}
}

// List returns the cases newest-first.
func (r *Registry) List() []domain.Case {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Case(nil), r.cases...)
}

// Get looks up a case by id.
func (r *Registry) Get(id string) (domain.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.cases {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Case{}, ErrNotFound
}

// Create validates a draft and prepends the resulting case. On validation
// failure it returns a *domain.ValidationError with per-field messages and
// no case is created.
func (r *Registry) Create(draft domain.CaseDraft) (domain.Case, error) {
	fields := map[string]string{}

	if err := r.validate.Struct(draft); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return domain.Case{}, fmt.Errorf("validate draft: %w", err)
		}
		for _, fe := range verrs {
			fields[fe.Field()] = messageForTag(fe)
		}
	}

	regDate, err := time.Parse(dateLayout, draft.RegistrationDate)
	if err != nil && fields["registration_date"] == "" {
		fields["registration_date"] = "must be a date in YYYY-MM-DD format"
	}

	damage, err := strconv.ParseInt(strings.TrimSpace(draft.DamageAmount), 10, 64)
	if draft.DamageAmount != "" && (err != nil || damage < 0) {
		fields["damage_amount"] = "must be a non-negative integer"
	}

	var income int64
	if draft.IncomeAmount != "" {
		income, err = strconv.ParseInt(strings.TrimSpace(draft.IncomeAmount), 10, 64)
		if err != nil || income < 0 {
			fields["income_amount"] = "must be a non-negative integer"
		}
	}

	priority := defaultPriority
	if draft.Priority != "" {
		priority = domain.CasePriority(draft.Priority)
		switch priority {
		case domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow:
		default:
			fields["priority"] = "must be High, Medium or Low"
		}
	}

	now := r.now()
	indictmentDate := now
	if draft.IndictmentDate != "" {
		indictmentDate, err = time.Parse(dateLayout, draft.IndictmentDate)
		if err != nil {
			fields["indictment_date"] = "must be a date in YYYY-MM-DD format"
		}
	}

	if len(fields) > 0 {
		return domain.Case{}, &domain.ValidationError{Fields: fields}
	}

	c := domain.Case{
		ID:               "case-" + uuid.NewString(),
		FIO:              draft.FIO,
		Patronymic:       draft.Patronymic,
		IIN:              draft.IIN,
		Organization:     draft.Organization,
		Investigator:     draft.Investigator,
		RegistrationDate: regDate,
		Qualification:    draft.Qualification,
		DamageAmount:     damage,
		IncomeAmount:     income,
		IndictmentDate:   indictmentDate,
		CreatedAt:        now,
		UpdatedAt:        now,
		Name:             caseDisplayName(now),
		Type:             DeriveType(draft.Qualification),
		Status:           domain.StatusActive,
		Priority:         priority,
		Deadline:         regDate.AddDate(0, 0, deadlineDays),
		Description:      draft.Description,
		GeneratedFiles:   []domain.GeneratedFile{},
		Documents:        []domain.Document{},
	}

	r.mu.Lock()
	r.cases = append([]domain.Case{c}, r.cases...)
	r.mu.Unlock()

	return c, nil
}

// Search filters cases by a case-insensitive substring over name, fio,
// organization and qualification. An empty term returns the full list.
func (r *Registry) Search(term string) []domain.Case {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return r.List()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Case
	for _, c := range r.cases {
		if strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.FIO), term) ||
			strings.Contains(strings.ToLower(c.Organization), term) ||
			strings.Contains(strings.ToLower(c.Qualification), term) {
			out = append(out, c)
		}
	}
	return out
}

// AttachGeneratedFile appends an AI-produced artifact to a case. A missing
// id or timestamp is synthesized.
func (r *Registry) AttachGeneratedFile(caseID string, f domain.GeneratedFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.cases {
		if r.cases[i].ID != caseID {
			continue
		}
		if f.ID == "" {
			f.ID = "doc-" + uuid.NewString()
		}
		if f.GeneratedAt.IsZero() {
			f.GeneratedAt = r.now()
		}
		r.cases[i].GeneratedFiles = append(r.cases[i].GeneratedFiles, f)
		r.cases[i].UpdatedAt = r.now()
		return nil
	}
	return ErrNotFound
}

// AttachDocument appends an uploaded document to a case.
func (r *Registry) AttachDocument(caseID string, d domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.cases {
		if r.cases[i].ID != caseID {
			continue
		}
		if d.ID == "" {
			d.ID = "doc-" + uuid.NewString()
		}
		if d.UploadedAt.IsZero() {
			d.UploadedAt = r.now()
		}
		r.cases[i].Documents = append(r.cases[i].Documents, d)
		r.cases[i].UpdatedAt = r.now()
		return nil
	}
	return ErrNotFound
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "len", "numeric":
		if fe.Field() == "iin" {
			return "must contain exactly 12 digits"
		}
		return "invalid value"
	default:
		return "invalid value"
	}
}

// caseDisplayName reproduces the human-facing case number the original
// system assigned: a running number from the creation instant plus year.
func caseDisplayName(now time.Time) string {
	serial := now.UnixMilli() % 1000000
	return fmt.Sprintf("Уголовное дело №%d/%d", serial, now.Year())
}

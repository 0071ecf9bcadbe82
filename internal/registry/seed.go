package registry

import (
	"time"

	"github.com/zangerai/zanger/internal/domain"
)

// SeedCases returns the demo case files the dashboard ships with.
func SeedCases() []domain.Case {
	return []domain.Case{
		{
			ID:               "case-001",
			FIO:              "Нурланов Асылбек Болатұлы",
			Patronymic:       "Болатұлы",
			IIN:              "820315301456",
			Organization:     "ТОО \"Казахстан Бизнес Астана\"",
			Investigator:     "Ахметов Серик Нурланович",
			RegistrationDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Qualification:    "Мошенничество группой лиц в особо крупном размере (ч.4 ст. 190 УК РК)",
			DamageAmount:     125000000,
			IncomeAmount:     45000000,
			IndictmentDate:   time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
			CreatedAt:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			UpdatedAt:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			Name:             "Уголовное дело №1-45/2024",
			Type:             TypeEconomicCrime,
			Status:           domain.StatusActive,
			Priority:         domain.PriorityHigh,
			Deadline:         time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			Description:      "Уголовное дело по факту мошенничества при реализации государственных программ в сфере жилищного строительства. Обвиняемый, используя подложные документы, завладел бюджетными средствами на сумму свыше 125 млн тенге.",
			GeneratedFiles: []domain.GeneratedFile{
				{ID: "doc-1", Name: "Обвинительный акт.pdf", Type: "Процессуальный документ", GeneratedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Size: "2.1 MB"},
				{ID: "doc-2", Name: "Ходатайство об избрании меры пресечения.pdf", Type: "Ходатайство", GeneratedAt: time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC), Size: "1.2 MB"},
			},
			Documents: []domain.Document{},
		},
		{
			ID:               "case-002",
			FIO:              "Садыкова Гульнара Маратовна",
			Patronymic:       "Маратовна",
			IIN:              "750628401589",
			Organization:     "АО \"Медицинский центр Алматы\"",
			Investigator:     "Жумабеков Алтынбек Кайратович",
			RegistrationDate: time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC),
			Qualification:    "Присвоение и растрата вверенного имущества в крупном размере (ч.3 ст. 189 УК РК)",
			DamageAmount:     89500000,
			IncomeAmount:     25600000,
			IndictmentDate:   time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
			CreatedAt:        time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC),
			UpdatedAt:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			Name:             "Уголовное дело №1-67/2024",
			Type:             TypeStateTheft,
			Status:           domain.StatusInReview,
			Priority:         domain.PriorityHigh,
			Deadline:         time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC),
			Description:      "Дело о присвоении бюджетных средств, выделенных на закупку медицинского оборудования.",
			GeneratedFiles: []domain.GeneratedFile{
				{ID: "doc-4", Name: "Протокол допроса обвиняемой.pdf", Type: "Протокол", GeneratedAt: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), Size: "1.8 MB"},
			},
			Documents: []domain.Document{},
		},
		{
			ID:               "case-003",
			FIO:              "Абдрахманов Максат Ерланович",
			Patronymic:       "Ерланович",
			IIN:              "881203502347",
			Organization:     "ИП \"Абдрахманов Максат\"",
			Investigator:     "Касымова Алия Болатқызы",
			RegistrationDate: time.Date(2024, 2, 8, 0, 0, 0, 0, time.UTC),
			Qualification:    "Уклонение от уплаты налогов в особо крупном размере (ч.3 ст. 231 УК РК)",
			DamageAmount:     67800000,
			IncomeAmount:     156000000,
			IndictmentDate:   time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
			CreatedAt:        time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
			UpdatedAt:        time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC),
			Name:             "Уголовное дело №1-89/2024",
			Type:             TypeTaxCrime,
			Status:           domain.StatusPending,
			Priority:         domain.PriorityMedium,
			Deadline:         time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC),
			Description:      "Уголовное дело по факту систематического уклонения от уплаты налогов путем ведения двойной отчетности.",
			GeneratedFiles:   []domain.GeneratedFile{},
			Documents:        []domain.Document{},
		},
	}
}

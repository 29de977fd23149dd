package service

import (
	"github.com/mmynk/lendbook/internal/calculator"
	"github.com/mmynk/lendbook/internal/models"
	"github.com/mmynk/lendbook/internal/reminder"
	"github.com/mmynk/lendbook/pkg/api"
)

func toAPIAccount(a *models.Account) api.Account {
	return api.Account{
		ID:        a.ID,
		Username:  a.Username,
		FullName:  a.FullName,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toAPIStatus(s models.Status) api.Status {
	return api.Status{
		ID:        s.ID,
		Name:      s.Name,
		Color:     s.Color,
		SortOrder: s.SortOrder,
	}
}

func toAPILoan(l models.LoanRecord) api.LoanRecord {
	outstanding := calculator.LoanOutstanding(l)
	return api.LoanRecord{
		ID:            l.ID,
		Name:          l.Name,
		Phone:         l.Phone,
		Email:         l.Email,
		MoneyProvided: l.MoneyProvided,
		MoneyReturned: l.MoneyReturned,
		Outstanding:   outstanding,
		Settled:       calculator.IsSettled(l.StatusName, outstanding),
		DueDate:       l.DueDate,
		Notes:         l.Notes,
		StatusID:      l.StatusID,
		StatusName:    l.StatusName,
		StatusColor:   l.StatusColor,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func toAPIPayment(p models.Payment) api.Payment {
	return api.Payment{
		ID:          p.ID,
		LoanID:      p.LoanID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toAPISummary(s models.LoanSummary) api.LoanSummary {
	return api.LoanSummary{
		StatusName:    s.StatusName,
		Count:         s.Count,
		TotalProvided: s.TotalProvided,
		TotalReturned: s.TotalReturned,
		Outstanding:   s.Outstanding,
	}
}

func toAPINotice(n reminder.Notice) api.ReminderNotice {
	return api.ReminderNotice{
		LoanID:       n.LoanID,
		Name:         n.Name,
		Kind:         n.Kind.String(),
		DaysUntilDue: n.Delta,
		Outstanding:  n.Outstanding,
		Message:      n.Message,
	}
}

func toLoanInput(f api.LoanFields) models.LoanInput {
	return models.LoanInput{
		Name:          f.Name,
		Phone:         f.Phone,
		Email:         f.Email,
		MoneyProvided: f.MoneyProvided,
		MoneyReturned: f.MoneyReturned,
		DueDate:       f.DueDate,
		Notes:         f.Notes,
		StatusID:      f.StatusID,
	}
}

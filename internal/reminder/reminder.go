// Package reminder derives due-date reminder messages from loan records.
//
// Compute is a pure function of "today" and a snapshot of records. It keeps
// the snapshot's order, emits at most one notice per record and caps the
// result at MaxNotices. Engine wraps it with a store read and swallows every
// failure so that callers on the notification path never see an error.
package reminder

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/lendbook/internal/calculator"
	"github.com/mmynk/lendbook/internal/models"
)

// MaxNotices caps the notices produced by one evaluation pass.
const MaxNotices = 8

// Kind classifies a record by its day delta.
type Kind int

const (
	// KindNone means the delta is outside the reminder window.
	KindNone Kind = iota
	KindOverdue
	KindDueToday
	KindDueTomorrow
	KindDueInTwoDays
)

// String returns a stable label, used as a metrics label value.
func (k Kind) String() string {
	switch k {
	case KindOverdue:
		return "overdue"
	case KindDueToday:
		return "due_today"
	case KindDueTomorrow:
		return "due_tomorrow"
	case KindDueInTwoDays:
		return "due_in_two_days"
	default:
		return "none"
	}
}

// Notice is a reminder computed for one loan record. It is never persisted.
type Notice struct {
	LoanID      string
	Name        string
	Kind        Kind
	Delta       int
	Outstanding float64
	Message     string
}

// Compute returns the notices for loans as of today, in input order, capped
// at MaxNotices. Records without a due date, with a malformed due date, or
// that are settled are skipped.
func Compute(today time.Time, loans []models.LoanRecord) []Notice {
	var notices []Notice
	for _, loan := range loans {
		if len(notices) == MaxNotices {
			break
		}

		n, ok := evaluate(today, loan)
		if ok {
			notices = append(notices, n)
		}
	}
	return notices
}

// Messages extracts the message text of each notice.
func Messages(notices []Notice) []string {
	out := make([]string, len(notices))
	for i, n := range notices {
		out[i] = n.Message
	}
	return out
}

func evaluate(today time.Time, loan models.LoanRecord) (Notice, bool) {
	if strings.TrimSpace(loan.DueDate) == "" {
		return Notice{}, false
	}

	delta, err := DaysUntil(today, loan.DueDate)
	if err != nil {
		return Notice{}, false
	}

	outstanding := calculator.LoanOutstanding(loan)
	if calculator.IsSettled(loan.StatusName, outstanding) {
		return Notice{}, false
	}

	kind := Classify(delta)
	if kind == KindNone {
		return Notice{}, false
	}

	return Notice{
		LoanID:      loan.ID,
		Name:        loan.Name,
		Kind:        kind,
		Delta:       delta,
		Outstanding: outstanding,
		Message:     Render(kind, loan.Name, delta, FormatAmount(outstanding)),
	}, true
}

// DaysUntil returns the whole calendar days from today's date, as seen in
// today's location, to dueDate ("YYYY-MM-DD").
func DaysUntil(today time.Time, dueDate string) (int, error) {
	due, err := time.Parse(models.DueDateLayout, strings.TrimSpace(dueDate))
	if err != nil {
		return 0, fmt.Errorf("malformed due date %q: %w", dueDate, err)
	}

	y, m, d := today.Date()
	return int(dayNumber(due.Date()) - dayNumber(y, m, d)), nil
}

// dayNumber counts days since the Unix epoch for a civil date. It avoids
// time.Duration, which saturates after about 292 years.
func dayNumber(y int, m time.Month, d int) int64 {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

const secondsPerDay = 24 * 60 * 60

// Classify maps a day delta onto the reminder window: tomorrow, today,
// in two days, or any number of days overdue.
func Classify(delta int) Kind {
	switch {
	case delta < 0:
		return KindOverdue
	case delta == 0:
		return KindDueToday
	case delta == 1:
		return KindDueTomorrow
	case delta == 2:
		return KindDueInTwoDays
	default:
		return KindNone
	}
}

// Render builds the message for a classified record. amount is already formatted.
func Render(kind Kind, name string, delta int, amount string) string {
	switch kind {
	case KindDueTomorrow:
		return fmt.Sprintf("%s will pay tomorrow the %s they owe you", name, amount)
	case KindDueToday:
		return fmt.Sprintf("%s is due today to pay %s", name, amount)
	case KindDueInTwoDays:
		return fmt.Sprintf("%s will pay in 2 days the %s", name, amount)
	case KindOverdue:
		days := -delta
		unit := "days"
		if days == 1 {
			unit = "day"
		}
		return fmt.Sprintf("%s exceeded the due date by %d %s, owes %s", name, days, unit, amount)
	default:
		return ""
	}
}

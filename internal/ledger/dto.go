package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frahmantamala/budget-tracker/internal"
)

// CreateExpenseDTO is the transport shape for creating an expense. Amount
// travels as a string so exactness survives JSON; date accepts ISO-8601
// dates or date-times.
type CreateExpenseDTO struct {
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// UpdateExpenseDTO carries a partial update. Nil fields are left untouched.
// Only amount, category, date and description are updatable; the id never is.
type UpdateExpenseDTO struct {
	Amount      *string `json:"amount"`
	Category    *string `json:"category"`
	Date        *string `json:"date"`
	Description *string `json:"description"`
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate accepts YYYY-MM-DD or a full ISO-8601 date-time.
func ParseDate(value string) (time.Time, *internal.AppError) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, internal.NewValidationError(
		fmt.Sprintf("invalid date format: %s, use ISO format (YYYY-MM-DD)", value),
		internal.ErrCodeInvalidDate,
	)
}

// ParseAmount validates that the value is an exact decimal number.
func ParseAmount(value string) (decimal.Decimal, *internal.AppError) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, internal.NewValidationError(
			"please enter a valid amount",
			internal.ErrCodeInvalidAmount,
		)
	}
	return amount, nil
}

// Validate parses the DTO into domain values without mutating anything.
func (d CreateExpenseDTO) Validate() (decimal.Decimal, time.Time, *internal.AppError) {
	if d.Amount == "" {
		return decimal.Decimal{}, time.Time{}, internal.NewValidationError(
			"missing required field: amount", internal.ErrCodeInvalidAmount)
	}
	amount, appErr := ParseAmount(d.Amount)
	if appErr != nil {
		return decimal.Decimal{}, time.Time{}, appErr
	}

	if d.Category == "" {
		return decimal.Decimal{}, time.Time{}, internal.NewValidationError(
			"please select a category", internal.ErrCodeInvalidCategory)
	}

	if d.Date == "" {
		return decimal.Decimal{}, time.Time{}, internal.NewValidationError(
			"missing required field: date", internal.ErrCodeInvalidDate)
	}
	occurredOn, appErr := ParseDate(d.Date)
	if appErr != nil {
		return decimal.Decimal{}, time.Time{}, appErr
	}

	return amount, occurredOn, nil
}

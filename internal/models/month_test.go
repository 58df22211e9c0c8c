package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthKey(t *testing.T) {
	month, err := ParseMonthKey("2024-01")
	require.NoError(t, err)
	assert.Equal(t, MonthKey{Year: 2024, Month: 1}, month)
	assert.Equal(t, "2024-01", month.String())

	for _, invalid := range []string{"", "2024", "2024-13", "01-2024", "2024-01-15"} {
		_, err := ParseMonthKey(invalid)
		assert.Error(t, err, "input %q", invalid)
	}
}

func TestMonthKeyDueDate(t *testing.T) {
	month := MonthKey{Year: 2024, Month: 1}

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), month.Start())
	assert.Equal(t, time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), month.DueDate())

	// December rolls over the year boundary correctly
	december := MonthKey{Year: 2023, Month: 12}
	assert.Equal(t, time.Date(2023, 12, 6, 0, 0, 0, 0, time.UTC), december.DueDate())
}

func TestMonthKeyOf(t *testing.T) {
	at := time.Date(2024, 3, 17, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, MonthKey{Year: 2024, Month: 3}, MonthKeyOf(at))
}

func TestMonthKeyJSON(t *testing.T) {
	data, err := json.Marshal(MonthKey{Year: 2024, Month: 7})
	require.NoError(t, err)
	assert.Equal(t, `"2024-07"`, string(data))

	var month MonthKey
	require.NoError(t, json.Unmarshal([]byte(`"2024-07"`), &month))
	assert.Equal(t, MonthKey{Year: 2024, Month: 7}, month)

	assert.Error(t, json.Unmarshal([]byte(`"not-a-month"`), &month))
}

func TestPaymentDerivedStatus(t *testing.T) {
	month := MonthKey{Year: 2024, Month: 1}
	payment := Payment{
		Year:    month.Year,
		Month:   month.Month,
		DueDate: month.DueDate(),
		Status:  PaymentStatusPending,
	}

	beforeDue := month.Start().AddDate(0, 0, 3)
	afterDue := month.DueDate().AddDate(0, 0, 1)

	assert.Equal(t, PaymentStatusPending, payment.DerivedStatus(beforeDue))
	assert.Equal(t, PaymentStatusOverdue, payment.DerivedStatus(afterDue))

	// A settled payment never reports overdue
	payment.Status = PaymentStatusPaid
	assert.Equal(t, PaymentStatusPaid, payment.DerivedStatus(afterDue))
}

func TestMaintenanceRequestConfirmationState(t *testing.T) {
	request := MaintenanceRequest{}
	assert.Equal(t, ConfirmationStateUnresolved, request.ConfirmationState())
	assert.False(t, request.NeedsConfirmation())

	request.ManagerMarkedResolved = true
	assert.Equal(t, ConfirmationStateAwaitingRenterConfirmation, request.ConfirmationState())
	assert.True(t, request.NeedsConfirmation())

	request.RenterMarkedResolved = true
	assert.Equal(t, ConfirmationStateResolved, request.ConfirmationState())
	assert.False(t, request.NeedsConfirmation())

	request.ManagerMarkedResolved = false
	assert.Equal(t, ConfirmationStateAwaitingManagerConfirmation, request.ConfirmationState())
}

func TestNextPriority(t *testing.T) {
	assert.Equal(t, PriorityMedium, NextPriority(PriorityLow))
	assert.Equal(t, PriorityHigh, NextPriority(PriorityMedium))
	assert.Equal(t, PriorityUrgent, NextPriority(PriorityHigh))
	assert.Equal(t, PriorityUrgent, NextPriority(PriorityUrgent))
}

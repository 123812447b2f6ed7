package payroll

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func validationMap(t *testing.T, err error) map[string]string {
	t.Helper()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	return verrs.ToMap()
}

func TestCreatePayrollRequest_Validate(t *testing.T) {
	valid := CreatePayrollRequest{
		EmployeeID:  "emp-1",
		Month:       "June",
		Year:        2024,
		BasicSalary: ptr(decimal.NewFromInt(20000)),
	}
	assert.NoError(t, valid.Validate())

	bad := CreatePayrollRequest{
		Month:       "Juno",
		Year:        20245,
		IncomeTax:   ptr(decimal.NewFromInt(-5)),
		PaymentDate: ptr("2024-06-30"),
	}
	got := validationMap(t, bad.Validate())
	assert.Equal(t, "is required", got["employee_id"])
	assert.Equal(t, "is required", got["basic_salary"])
	assert.Contains(t, got, "month")
	assert.Contains(t, got, "year")
	assert.Equal(t, "must be non-negative", got["income_tax"])
	assert.Equal(t, "can only be set on a paid record", got["payment_date"])
}

func TestUpdatePayrollRequest_Apply(t *testing.T) {
	paidOn := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	record := PayrollRecord{
		ID:          "rec-1",
		BasicSalary: decimal.NewFromInt(20000),
		IncomeTax:   decimal.NewFromInt(100),
		Paid:        true,
		PaymentDate: &paidOn,
	}

	req := UpdatePayrollRequest{ID: "rec-1", IncomeTax: ptr(decimal.NewFromInt(250)), Paid: ptr(false)}
	require.NoError(t, req.Validate())

	updated := req.Apply(record)
	assert.True(t, decimal.NewFromInt(20000).Equal(updated.BasicSalary))
	assert.True(t, decimal.NewFromInt(250).Equal(updated.IncomeTax))
	assert.False(t, updated.Paid)
	assert.Nil(t, updated.PaymentDate)
}

func TestUpdatePayrollRequest_Validate(t *testing.T) {
	req := UpdatePayrollRequest{ID: "rec-1", PaymentDate: ptr("30/06/2024")}
	got := validationMap(t, req.Validate())
	assert.Equal(t, "must be a date in YYYY-MM-DD format", got["payment_date"])
}

func TestGenerationResult_Record(t *testing.T) {
	var result GenerationResult
	result.Record(EmployeeOutcome{EmployeeID: "a", Outcome: OutcomeCreated})
	result.Record(EmployeeOutcome{EmployeeID: "b", Outcome: OutcomeSkipped})
	result.Record(EmployeeOutcome{EmployeeID: "c", Outcome: OutcomeFailed})
	result.Record(EmployeeOutcome{EmployeeID: "d", Outcome: OutcomeCreated})

	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, result.Outcomes, 4)
}

func TestPayrollFilter_Normalize(t *testing.T) {
	f := PayrollFilter{Page: 0, Limit: 500}
	f.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, 0, f.Offset())

	f = PayrollFilter{Page: 3, Limit: 10}
	f.Normalize()
	assert.Equal(t, 20, f.Offset())
}

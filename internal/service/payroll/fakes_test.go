package payroll

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type periodKey struct {
	employeeID string
	month      payroll.Month
	year       int
}

// memPayrollRepo enforces the (employee, month, year) uniqueness the database does.
type memPayrollRepo struct {
	mu      sync.Mutex
	seq     int
	records map[string]payroll.PayrollRecord
	order   []string

	// beforeCreate runs before the uniqueness check; tests use it to simulate races.
	beforeCreate func(r payroll.PayrollRecord)
	createErr    map[string]error
	employees    *memEmployeeRepo
}

func newMemPayrollRepo(employees *memEmployeeRepo) *memPayrollRepo {
	return &memPayrollRepo{records: map[string]payroll.PayrollRecord{}, createErr: map[string]error{}, employees: employees}
}

func (m *memPayrollRepo) join(r payroll.PayrollRecord) payroll.PayrollRecord {
	if m.employees == nil {
		return r
	}
	if emp, ok := m.employees.byID[r.EmployeeID]; ok {
		r.EmployeeName = &emp.FullName
		r.EmployeeCode = &emp.EmployeeCode
		r.Position = &emp.Position
	}
	return r
}

func (m *memPayrollRepo) Create(ctx context.Context, r payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	if m.beforeCreate != nil {
		m.beforeCreate(r)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.createErr[r.EmployeeID]; err != nil {
		return payroll.PayrollRecord{}, err
	}
	for _, existing := range m.records {
		if existing.EmployeeID == r.EmployeeID && existing.Month == r.Month && existing.Year == r.Year {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
	}
	m.seq++
	r.ID = fmt.Sprintf("rec-%d", m.seq)
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	m.records[r.ID] = r
	m.order = append(m.order, r.ID)
	return r, nil
}

func (m *memPayrollRepo) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return m.join(r), nil
}

func (m *memPayrollRepo) GetByEmployeePeriod(ctx context.Context, employeeID string, period payroll.Period) (payroll.PayrollRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.EmployeeID == employeeID && r.Month == period.Month && r.Year == period.Year {
			return m.join(r), nil
		}
	}
	return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
}

func (m *memPayrollRepo) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []payroll.PayrollRecord
	for _, id := range m.order {
		r, ok := m.records[id]
		if !ok {
			continue
		}
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Month != nil && r.Month != *filter.Month {
			continue
		}
		if filter.Year != nil && r.Year != *filter.Year {
			continue
		}
		if filter.Paid != nil && r.Paid != *filter.Paid {
			continue
		}
		out = append(out, m.join(r))
	}
	total := int64(len(out))
	if filter.Limit > 0 {
		out = out[min(filter.Offset(), len(out)):min(filter.Offset()+filter.Limit, len(out))]
	}
	return out, total, nil
}

func (m *memPayrollRepo) ListByPeriod(ctx context.Context, period payroll.Period) ([]payroll.PayrollRecord, error) {
	out, _, err := m.List(ctx, payroll.PayrollFilter{Month: &period.Month, Year: &period.Year})
	sort.Slice(out, func(i, j int) bool { return *out[i].EmployeeCode < *out[j].EmployeeCode })
	return out, err
}

func (m *memPayrollRepo) Update(ctx context.Context, r payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[r.ID]; !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	r.UpdatedAt = time.Now()
	m.records[r.ID] = r
	return r, nil
}

func (m *memPayrollRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return payroll.ErrPayrollRecordNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *memPayrollRepo) GetSummary(ctx context.Context, period payroll.Period) (payroll.PayrollSummary, error) {
	records, err := m.ListByPeriod(ctx, period)
	if err != nil {
		return payroll.PayrollSummary{}, err
	}
	summary := payroll.PayrollSummary{
		Month: period.Month, Year: period.Year,
		TotalBasic: decimal.Zero, TotalNetSalary: decimal.Zero, TotalPaidAmount: decimal.Zero,
	}
	for _, r := range records {
		summary.TotalRecords++
		summary.TotalBasic = summary.TotalBasic.Add(r.BasicSalary)
		summary.TotalNetSalary = summary.TotalNetSalary.Add(r.NetSalary)
		if r.Paid {
			summary.PaidCount++
			summary.TotalPaidAmount = summary.TotalPaidAmount.Add(r.NetSalary)
		} else {
			summary.PendingCount++
		}
	}
	return summary, nil
}

func (m *memPayrollRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

type memEmployeeRepo struct {
	employee.EmployeeRepository
	roster  []employee.Employee
	byID    map[string]employee.Employee
	listErr error
}

func newMemEmployeeRepo(emps ...employee.Employee) *memEmployeeRepo {
	m := &memEmployeeRepo{byID: map[string]employee.Employee{}}
	for _, e := range emps {
		m.roster = append(m.roster, e)
		m.byID[e.ID] = e
	}
	return m
}

func (m *memEmployeeRepo) GetAll(ctx context.Context) ([]employee.Employee, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.roster, nil
}

func (m *memEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := m.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

type memLeaveRepo struct {
	leave.LeaveRequestRepository
	requests []leave.LeaveRequest
	failFor  map[string]bool
}

func (m *memLeaveRepo) GetApprovedStartingBetween(ctx context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	if m.failFor[employeeID] {
		return nil, errors.New("ledger unavailable")
	}
	var out []leave.LeaveRequest
	for _, lr := range m.requests {
		if lr.EmployeeID != employeeID || lr.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		if lr.StartDate.Before(from) || lr.StartDate.After(to) {
			continue
		}
		out = append(out, lr)
	}
	return out, nil
}

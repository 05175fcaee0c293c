package validator

import (
	"context"
	"testing"

	"github.com/paigang/paigang/pkg/model"
	"github.com/paigang/paigang/pkg/scheduler/condition/builtin"
	"github.com/paigang/paigang/pkg/scheduler/solver"
)

func solveFixture(t *testing.T) (*solver.Request, *solver.Result) {
	t.Helper()

	req := &solver.Request{
		Shifts: []model.ShiftSlot{
			{ID: "s1", Date: "2025-01-06", Role: "Phục vụ",
				TimeSlot: model.TimeWindow{Start: "08:00", End: "12:00"}, MinUsers: 2},
		},
		Employees: []model.Employee{
			{UID: "u1", Name: "An", Role: "Phục vụ"},
			{UID: "u2", Name: "Bình", Role: "Phục vụ"},
		},
		Availability: []model.AvailabilityWindow{
			{UserID: "u1", Date: "2025-01-06", Ranges: []model.TimeWindow{{Start: "07:00", End: "13:00"}}},
			{UserID: "u2", Date: "2025-01-06", Ranges: []model.TimeWindow{{Start: "07:00", End: "13:00"}}},
		},
	}

	s := solver.NewGreedySolver(builtin.NewDefaultEngine())
	result, err := s.Solve(context.Background(), req)
	if err != nil {
		t.Fatalf("派岗失败: %v", err)
	}
	return req, result
}

func TestAuditor_CleanResult(t *testing.T) {
	req, result := solveFixture(t)

	issues := NewAuditor().Audit(req, result)
	if len(issues) != 0 {
		t.Errorf("干净的结果不应有审计问题: %v", issues)
	}
}

func TestAuditor_DetectsViolations(t *testing.T) {
	a := NewAuditor()

	t.Run("引用不存在的班次", func(t *testing.T) {
		req, result := solveFixture(t)
		result.Assignments = append(result.Assignments, model.Assignment{ShiftID: "ghost", UserID: "u1"})
		if issues := a.Audit(req, result); len(issues) == 0 {
			t.Error("应发现不存在的班次引用")
		}
	})

	t.Run("引用不存在的员工", func(t *testing.T) {
		req, result := solveFixture(t)
		result.Assignments = append(result.Assignments, model.Assignment{ShiftID: "s1", UserID: "ghost"})
		if issues := a.Audit(req, result); len(issues) == 0 {
			t.Error("应发现不存在的员工引用")
		}
	})

	t.Run("岗位不匹配", func(t *testing.T) {
		req, result := solveFixture(t)
		req.Employees[0].Role = "Bếp"
		if issues := a.Audit(req, result); len(issues) == 0 {
			t.Error("应发现岗位不匹配")
		}
	})

	t.Run("空闲不覆盖", func(t *testing.T) {
		req, result := solveFixture(t)
		req.Availability[0].Ranges = []model.TimeWindow{{Start: "09:00", End: "11:00"}}
		if issues := a.Audit(req, result); len(issues) == 0 {
			t.Error("应发现空闲不覆盖")
		}
	})

	t.Run("超出人数上限", func(t *testing.T) {
		req, result := solveFixture(t)
		result.Shifts[0].AssignedUsers = append(result.Shifts[0].AssignedUsers, "u1", "u2", "u1")
		if issues := a.Audit(req, result); len(issues) == 0 {
			t.Error("应发现超员")
		}
	})
}

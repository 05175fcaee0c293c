package solver

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/paigang/paigang/pkg/errors"
	"github.com/paigang/paigang/pkg/model"
	"github.com/paigang/paigang/pkg/scheduler/condition/builtin"
)

func newSolver() *GreedySolver {
	return NewGreedySolver(builtin.NewDefaultEngine())
}

func serverSlot(id, date, start, end string, minUsers int) model.ShiftSlot {
	return model.ShiftSlot{
		ID: id, Date: date, Role: "Phục vụ",
		TimeSlot: model.TimeWindow{Start: start, End: end},
		MinUsers: minUsers,
	}
}

func allDay(uid, date string) model.AvailabilityWindow {
	return model.AvailabilityWindow{
		UserID: uid, Date: date,
		Ranges: []model.TimeWindow{{Start: "07:00", End: "23:00"}},
	}
}

// TestSolve_FullStaffing 两名服务员都空闲，班次满员且无警告
func TestSolve_FullStaffing(t *testing.T) {
	req := &Request{
		Shifts: []model.ShiftSlot{serverSlot("s1", "2025-01-06", "08:00", "12:00", 2)},
		Employees: []model.Employee{
			{UID: "u1", Name: "An", Role: "Phục vụ"},
			{UID: "u2", Name: "Bình", Role: "Phục vụ"},
		},
		Availability: []model.AvailabilityWindow{
			{UserID: "u1", Date: "2025-01-06", Ranges: []model.TimeWindow{{Start: "07:00", End: "13:00"}}},
			{UserID: "u2", Date: "2025-01-06", Ranges: []model.TimeWindow{{Start: "07:00", End: "13:00"}}},
		},
	}

	result, err := newSolver().Solve(context.Background(), req)
	if err != nil {
		t.Fatalf("派岗失败: %v", err)
	}

	if len(result.Assignments) != 2 {
		t.Errorf("分配数 = %d, expected 2", len(result.Assignments))
	}
	if len(result.Unfilled) != 0 {
		t.Errorf("不应有缺员记录: %v", result.Unfilled)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("不应有警告: %v", result.Warnings)
	}
	if result.Statistics.FillRate != 1.0 {
		t.Errorf("满员率 = %v, expected 1.0", result.Statistics.FillRate)
	}
}

// TestSolve_Shortfall 只有一人空闲，产生缺员记录和警告
func TestSolve_Shortfall(t *testing.T) {
	req := &Request{
		Shifts: []model.ShiftSlot{serverSlot("s1", "2025-01-06", "08:00", "12:00", 2)},
		Employees: []model.Employee{
			{UID: "u1", Name: "An", Role: "Phục vụ"},
		},
		Availability: []model.AvailabilityWindow{
			{UserID: "u1", Date: "2025-01-06", Ranges: []model.TimeWindow{{Start: "07:00", End: "13:00"}}},
		},
	}

	result, err := newSolver().Solve(context.Background(), req)
	if err != nil {
		t.Fatalf("派岗失败: %v", err)
	}

	if len(result.Assignments) != 1 {
		t.Errorf("分配数 = %d, expected 1", len(result.Assignments))
	}
	if len(result.Unfilled) != 1 {
		t.Fatalf("缺员记录数 = %d, expected 1", len(result.Unfilled))
	}
	if result.Unfilled[0].ShiftID != "s1" || result.Unfilled[0].Remaining != 1 {
		t.Errorf("缺员记录 = %+v", result.Unfilled[0])
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "s1") {
		t.Errorf("警告 = %v", result.Warnings)
	}
}

// TestSolve_BackToBackShifts 重叠班次争夺同一员工，先处理的班次获胜
func TestSolve_BackToBackShifts(t *testing.T) {
	req := &Request{
		Shifts: []model.ShiftSlot{
			serverSlot("s2", "2025-01-06", "11:00", "15:00", 1),
			serverSlot("s1", "2025-01-06", "08:00", "12:00", 1),
		},
		Employees: []model.Employee{
			{UID: "u1", Name: "An", Role: "Phục vụ"},
		},
		Availability: []model.AvailabilityWindow{allDay("u1", "2025-01-06")},
	}

	result, err := newSolver().Solve(context.Background(), req)
	if err != nil {
		t.Fatalf("派岗失败: %v", err)
	}

	if len(result.Assignments) != 1 {
		t.Fatalf("分配数 = %d, expected 1", len(result.Assignments))
	}
	// 开始时间早的班次先处理
	if result.Assignments[0].ShiftID != "s1" {
		t.Errorf("分配到 %s, expected s1", result.Assignments[0].ShiftID)
	}
	if len(result.Unfilled) != 1 || result.Unfilled[0].ShiftID != "s2" {
		t.Errorf("缺员记录 = %v", result.Unfilled)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("警告 = %v", result.Warnings)
	}
}

// TestSolve_MaxShiftsPerWeek 周班次上限耗尽后跳过员工并告警
func TestSolve_MaxShiftsPerWeek(t *testing.T) {
	// 四个不同日期的班次，同属一周，只有一名员工
	req := &Request{
		Shifts: []model.ShiftSlot{
			serverSlot("s1", "2025-01-05", "08:00", "12:00", 1),
			serverSlot("s2", "2025-01-06", "08:00", "12:00", 1),
			serverSlot("s3", "2025-01-07", "08:00", "12:00", 1),
			serverSlot("s4", "2025-01-08", "08:00", "12:00", 1),
		},
		Employees: []model.Employee{
			{UID: "u1", Name: "An", Role: "Phục vụ"},
		},
		Availability: []model.AvailabilityWindow{
			allDay("u1", "2025-01-05"), allDay("u1", "2025-01-06"),
			allDay("u1", "2025-01-07"), allDay("u1", "2025-01-08"),
		},
		Conditions: []model.ScheduleCondition{
			{Name: "每周最多3班", Kind: model.KindMaxShiftsPerWeek, Params: model.JSONMap{"max": float64(3)}},
		},
	}

	result, err := newSolver().Solve(context.Background(), req)
	if err != nil {
		t.Fatalf("派岗失败: %v", err)
	}

	if len(result.Assignments) != 3 {
		t.Errorf("分配数 = %d, expected 3", len(result.Assignments))
	}
	if len(result.Unfilled) != 1 || result.Unfilled[0].ShiftID != "s4" {
		t.Fatalf("缺员记录 = %v", result.Unfilled)
	}
	// 警告携带条件否决原因
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "条件否决") {
		t.Errorf("警告 = %v", result.Warnings)
	}
}

// TestSolve_SecondaryRole 兼岗员工可承接两种岗位的班次
func TestSolve_SecondaryRole(t *testing.T) {
	barShift := serverSlot("s2", "2025-01-06", "14:00", "18:00", 1)
	barShift.Role = "Pha chế"

	req := &Request{
		Shifts: []model.ShiftSlot{
			serverSlot("s1", "2025-01-06", "08:00", "12:00", 1),
			barShift,
		},
		Employees: []model.Employee{
			{UID: "u1", Name: "An", Role: "Phục vụ", SecondaryRoles: []string{"Pha chế"}},
		},
		Availability: []model.AvailabilityWindow{allDay("u1", "2025-01-06")},
	}

	result, err := newSolver().Solve(context.Background(), req)
	if err != nil {
		t.Fatalf("派岗失败: %v", err)
	}

	if len(result.Assignments) != 2 {
		t.Errorf("分配数 = %d, expected 2: %v", len(result.Assignments), result.Assignments)
	}
	if len(result.Unfilled) != 0 {
		t.Errorf("不应有缺员: %v", result.Unfilled)
	}
}

// TestSolve_Deterministic 相同输入两次运行产生相同输出
func TestSolve_Deterministic(t *testing.T) {
	build := func() *Request {
		return &Request{
			Shifts: []model.ShiftSlot{
				serverSlot("s3", "2025-01-07", "08:00", "12:00", 2),
				serverSlot("s1", "2025-01-06", "08:00", "12:00", 1),
				serverSlot("s2", "2025-01-06", "14:00", "18:00", 2),
			},
			Employees: []model.Employee{
				{UID: "u3", Name: "Cường", Role: "Phục vụ"},
				{UID: "u1", Name: "An", Role: "Phục vụ"},
				{UID: "u2", Name: "Bình", Role: "Phục vụ"},
			},
			Availability: []model.AvailabilityWindow{
				allDay("u1", "2025-01-06"), allDay("u1", "2025-01-07"),
				allDay("u2", "2025-01-06"), allDay("u2", "2025-01-07"),
				allDay("u3", "2025-01-06"), allDay("u3", "2025-01-07"),
			},
		}
	}

	s := newSolver()
	r1, err := s.Solve(context.Background(), build())
	if err != nil {
		t.Fatalf("第一次派岗失败: %v", err)
	}
	r2, err := s.Solve(context.Background(), build())
	if err != nil {
		t.Fatalf("第二次派岗失败: %v", err)
	}

	if !reflect.DeepEqual(r1.Assignments, r2.Assignments) {
		t.Errorf("分配不一致:\n%v\n%v", r1.Assignments, r2.Assignments)
	}
	if !reflect.DeepEqual(r1.Unfilled, r2.Unfilled) {
		t.Errorf("缺员记录不一致:\n%v\n%v", r1.Unfilled, r2.Unfilled)
	}
	if !reflect.DeepEqual(r1.Warnings, r2.Warnings) {
		t.Errorf("警告不一致:\n%v\n%v", r1.Warnings, r2.Warnings)
	}
}

// TestSolve_HeadcountBound 分配人数不超过最低人数
func TestSolve_HeadcountBound(t *testing.T) {
	req := &Request{
		Shifts: []model.ShiftSlot{serverSlot("s1", "2025-01-06", "08:00", "12:00", 2)},
		Employees: []model.Employee{
			{UID: "u1", Name: "An", Role: "Phục vụ"},
			{UID: "u2", Name: "Bình", Role: "Phục vụ"},
			{UID: "u3", Name: "Cường", Role: "Phục vụ"},
			{UID: "u4", Name: "Dung", Role: "Phục vụ"},
		},
		Availability: []model.AvailabilityWindow{
			allDay("u1", "2025-01-06"), allDay("u2", "2025-01-06"),
			allDay("u3", "2025-01-06"), allDay("u4", "2025-01-06"),
		},
	}

	result, err := newSolver().Solve(context.Background(), req)
	if err != nil {
		t.Fatalf("派岗失败: %v", err)
	}

	for _, s := range result.Shifts {
		if s.AssignedCount() > s.MinUsers {
			t.Errorf("班次 %s 分配 %d 人超出最低人数 %d", s.ID, s.AssignedCount(), s.MinUsers)
		}
	}
}

// TestSolve_FairnessSpread 同质班次下工时差不超过一个班次时长
func TestSolve_FairnessSpread(t *testing.T) {
	dates := []string{"2025-01-05", "2025-01-06", "2025-01-07", "2025-01-08", "2025-01-09", "2025-01-10"}

	var shifts []model.ShiftSlot
	var availability []model.AvailabilityWindow
	for i, date := range dates {
		shifts = append(shifts, serverSlot("s"+string(rune('1'+i)), date, "08:00", "12:00", 1))
		availability = append(availability,
			allDay("u1", date), allDay("u2", date), allDay("u3", date))
	}

	req := &Request{
		Shifts: shifts,
		Employees: []model.Employee{
			{UID: "u1", Name: "An", Role: "Phục vụ"},
			{UID: "u2", Name: "Bình", Role: "Phục vụ"},
			{UID: "u3", Name: "Cường", Role: "Phục vụ"},
		},
		Availability: availability,
	}

	result, err := newSolver().Solve(context.Background(), req)
	if err != nil {
		t.Fatalf("派岗失败: %v", err)
	}

	minutes := make(map[string]int)
	for _, a := range result.Assignments {
		minutes[a.UserID] += 240
	}

	min, max := 1<<30, 0
	for _, uid := range []string{"u1", "u2", "u3"} {
		m := minutes[uid]
		if m < min {
			min = m
		}
		if m > max {
			max = m
		}
	}
	if max-min > 240 {
		t.Errorf("工时差 = %d 分钟，超过单班时长 240: %v", max-min, minutes)
	}
}

// TestSolve_UnsupportedCondition 未识别种类产生警告且不阻断运行
func TestSolve_UnsupportedCondition(t *testing.T) {
	req := &Request{
		Shifts: []model.ShiftSlot{serverSlot("s1", "2025-01-06", "08:00", "12:00", 1)},
		Employees: []model.Employee{
			{UID: "u1", Name: "An", Role: "Phục vụ"},
		},
		Availability: []model.AvailabilityWindow{allDay("u1", "2025-01-06")},
		Conditions: []model.ScheduleCondition{
			{Name: "按资历配额", Kind: "quota-by-seniority", Params: model.JSONMap{"tier": "senior"}},
		},
	}

	result, err := newSolver().Solve(context.Background(), req)
	if err != nil {
		t.Fatalf("未识别种类不应导致失败: %v", err)
	}

	if len(result.Assignments) != 1 {
		t.Errorf("分配数 = %d, expected 1", len(result.Assignments))
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "quota-by-seniority") {
		t.Errorf("警告 = %v", result.Warnings)
	}
}

// TestSolve_ValidationErrors 非法输入在派岗前整体拒绝
func TestSolve_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{
			"班次ID重复",
			&Request{
				Shifts: []model.ShiftSlot{
					serverSlot("s1", "2025-01-06", "08:00", "12:00", 1),
					serverSlot("s1", "2025-01-07", "08:00", "12:00", 1),
				},
			},
		},
		{
			"最低人数为零",
			&Request{Shifts: []model.ShiftSlot{serverSlot("s1", "2025-01-06", "08:00", "12:00", 0)}},
		},
		{
			"时间格式非法",
			&Request{Shifts: []model.ShiftSlot{serverSlot("s1", "2025-01-06", "8:00", "12:00", 1)}},
		},
		{
			"日期非法",
			&Request{Shifts: []model.ShiftSlot{serverSlot("s1", "2025-13-40", "08:00", "12:00", 1)}},
		},
		{
			"员工UID重复",
			&Request{
				Shifts: []model.ShiftSlot{serverSlot("s1", "2025-01-06", "08:00", "12:00", 1)},
				Employees: []model.Employee{
					{UID: "u1", Name: "An", Role: "Phục vụ"},
					{UID: "u1", Name: "Bình", Role: "Phục vụ"},
				},
			},
		},
	}

	s := newSolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.Solve(context.Background(), tt.req)
			if err == nil {
				t.Fatal("应返回验证错误")
			}
			if result != nil {
				t.Error("验证失败时不应产生结果")
			}
			if !errors.Is(err, errors.CodeValidationFail) {
				t.Errorf("错误码 = %v, expected %v", errors.GetCode(err), errors.CodeValidationFail)
			}
		})
	}
}

// TestSolve_InputNotMutated 求解器不改动调用方的班次数据
func TestSolve_InputNotMutated(t *testing.T) {
	req := &Request{
		Shifts: []model.ShiftSlot{serverSlot("s1", "2025-01-06", "08:00", "12:00", 1)},
		Employees: []model.Employee{
			{UID: "u1", Name: "An", Role: "Phục vụ"},
		},
		Availability: []model.AvailabilityWindow{allDay("u1", "2025-01-06")},
	}

	if _, err := newSolver().Solve(context.Background(), req); err != nil {
		t.Fatalf("派岗失败: %v", err)
	}

	if len(req.Shifts[0].AssignedUsers) != 0 {
		t.Errorf("入参班次被改动: %v", req.Shifts[0].AssignedUsers)
	}
}

// TestSolve_ContextCanceled 取消的上下文中断运行
func TestSolve_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := &Request{
		Shifts: []model.ShiftSlot{serverSlot("s1", "2025-01-06", "08:00", "12:00", 1)},
		Employees: []model.Employee{
			{UID: "u1", Name: "An", Role: "Phục vụ"},
		},
		Availability: []model.AvailabilityWindow{allDay("u1", "2025-01-06")},
	}

	if _, err := newSolver().Solve(ctx, req); err == nil {
		t.Error("已取消的上下文应返回错误")
	}
}

package stats

import (
	"math"
	"testing"

	"github.com/paigang/paigang/pkg/model"
)

func statsFixture() ([]model.Employee, []*model.ShiftSlot, []model.Assignment) {
	employees := []model.Employee{
		{UID: "u1", Name: "An", Role: "Phục vụ"},
		{UID: "u2", Name: "Bình", Role: "Phục vụ"},
		{UID: "u3", Name: "Cường", Role: "Phục vụ"},
	}
	shifts := []*model.ShiftSlot{
		{ID: "s1", Date: "2025-01-06", MinUsers: 1,
			TimeSlot: model.TimeWindow{Start: "08:00", End: "12:00"}, AssignedUsers: []string{"u1"}},
		{ID: "s2", Date: "2025-01-06", MinUsers: 2,
			TimeSlot: model.TimeWindow{Start: "14:00", End: "18:00"}, AssignedUsers: []string{"u2"}},
		{ID: "s3", Date: "2025-01-07", MinUsers: 1,
			TimeSlot: model.TimeWindow{Start: "08:00", End: "16:00"}, AssignedUsers: []string{"u1"}},
	}
	assignments := []model.Assignment{
		{ShiftID: "s1", UserID: "u1", UserName: "An"},
		{ShiftID: "s2", UserID: "u2", UserName: "Bình"},
		{ShiftID: "s3", UserID: "u1", UserName: "An"},
	}
	return employees, shifts, assignments
}

func TestBuildFairnessReport(t *testing.T) {
	employees, shifts, assignments := statsFixture()

	report := BuildFairnessReport(employees, shifts, assignments)

	if len(report.Loads) != 3 {
		t.Fatalf("负载条目数 = %d, expected 3", len(report.Loads))
	}
	// 工时降序：An(720) > Bình(240) > Cường(0)
	if report.Loads[0].UserID != "u1" || report.Loads[0].Minutes != 720 {
		t.Errorf("第一名 = %+v", report.Loads[0])
	}
	if report.Loads[2].UserID != "u3" || report.Loads[2].Minutes != 0 {
		t.Errorf("无分配员工也应计入: %+v", report.Loads[2])
	}

	if report.MinMinutes != 0 || report.MaxMinutes != 720 {
		t.Errorf("min/max = %d/%d", report.MinMinutes, report.MaxMinutes)
	}
	if math.Abs(report.AvgMinutes-320) > 1e-9 {
		t.Errorf("平均工时 = %v, expected 320", report.AvgMinutes)
	}
	if report.Gini <= 0 || report.Gini > 1 {
		t.Errorf("基尼系数越界: %v", report.Gini)
	}
}

func TestBuildFairnessReport_Uniform(t *testing.T) {
	employees := []model.Employee{
		{UID: "u1", Name: "An"},
		{UID: "u2", Name: "Bình"},
	}
	shifts := []*model.ShiftSlot{
		{ID: "s1", Date: "2025-01-06", MinUsers: 1, TimeSlot: model.TimeWindow{Start: "08:00", End: "12:00"}},
		{ID: "s2", Date: "2025-01-06", MinUsers: 1, TimeSlot: model.TimeWindow{Start: "14:00", End: "18:00"}},
	}
	assignments := []model.Assignment{
		{ShiftID: "s1", UserID: "u1"},
		{ShiftID: "s2", UserID: "u2"},
	}

	report := BuildFairnessReport(employees, shifts, assignments)
	if report.Gini != 0 {
		t.Errorf("完全均衡时基尼系数应为 0，实际 %v", report.Gini)
	}
}

func TestBuildCoverage(t *testing.T) {
	_, shifts, _ := statsFixture()

	coverage := BuildCoverage(shifts)
	if len(coverage) != 2 {
		t.Fatalf("日期数 = %d, expected 2", len(coverage))
	}

	// 按日期升序
	if coverage[0].Date != "2025-01-06" || coverage[1].Date != "2025-01-07" {
		t.Errorf("日期顺序错误: %v", coverage)
	}
	// 01-06: s1 满员, s2 缺员
	if coverage[0].Shifts != 2 || coverage[0].Filled != 1 || coverage[0].FillRate != 0.5 {
		t.Errorf("01-06 覆盖 = %+v", coverage[0])
	}
	if coverage[1].FillRate != 1.0 {
		t.Errorf("01-07 覆盖 = %+v", coverage[1])
	}
}

// Package stats 提供派岗结果的统计分析
package stats

import (
	"math"
	"sort"

	"github.com/paigang/paigang/pkg/model"
)

// EmployeeLoad 单个员工的工时负载
type EmployeeLoad struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Shifts   int    `json:"shifts"`
	Minutes  int    `json:"minutes"`
}

// FairnessReport 工时公平性报告
type FairnessReport struct {
	Loads      []EmployeeLoad `json:"loads"`
	MinMinutes int            `json:"min_minutes"`
	MaxMinutes int            `json:"max_minutes"`
	AvgMinutes float64        `json:"avg_minutes"`
	Gini       float64        `json:"gini"` // 0 为绝对均衡，越大越失衡
}

// BuildFairnessReport 根据派岗结果计算各员工工时分布
// 花名册上没有任何分配的员工也计入，工时为零
func BuildFairnessReport(employees []model.Employee, shifts []*model.ShiftSlot, assignments []model.Assignment) *FairnessReport {
	shiftMap := make(map[string]*model.ShiftSlot, len(shifts))
	for _, s := range shifts {
		shiftMap[s.ID] = s
	}

	loads := make(map[string]*EmployeeLoad, len(employees))
	for _, e := range employees {
		loads[e.UID] = &EmployeeLoad{UserID: e.UID, UserName: e.Name}
	}
	for _, asg := range assignments {
		load := loads[asg.UserID]
		shift := shiftMap[asg.ShiftID]
		if load == nil || shift == nil {
			continue
		}
		load.Shifts++
		load.Minutes += shift.TimeSlot.Minutes()
	}

	report := &FairnessReport{Loads: make([]EmployeeLoad, 0, len(loads))}
	for _, l := range loads {
		report.Loads = append(report.Loads, *l)
	}
	sort.Slice(report.Loads, func(i, j int) bool {
		if report.Loads[i].Minutes != report.Loads[j].Minutes {
			return report.Loads[i].Minutes > report.Loads[j].Minutes
		}
		return report.Loads[i].UserID < report.Loads[j].UserID
	})

	if len(report.Loads) == 0 {
		return report
	}

	total := 0
	report.MinMinutes = math.MaxInt
	for _, l := range report.Loads {
		total += l.Minutes
		if l.Minutes < report.MinMinutes {
			report.MinMinutes = l.Minutes
		}
		if l.Minutes > report.MaxMinutes {
			report.MaxMinutes = l.Minutes
		}
	}
	report.AvgMinutes = float64(total) / float64(len(report.Loads))
	report.Gini = gini(report.Loads, total)

	return report
}

// gini 计算工时分布的基尼系数
func gini(loads []EmployeeLoad, total int) float64 {
	n := len(loads)
	if n == 0 || total == 0 {
		return 0
	}

	var diffSum float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			diffSum += math.Abs(float64(loads[i].Minutes - loads[j].Minutes))
		}
	}
	return diffSum / (2 * float64(n) * float64(total))
}

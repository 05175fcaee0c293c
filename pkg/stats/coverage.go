package stats

import (
	"sort"

	"github.com/paigang/paigang/pkg/model"
)

// DateCoverage 单日的排班覆盖情况
type DateCoverage struct {
	Date     string  `json:"date"`
	Shifts   int     `json:"shifts"`
	Filled   int     `json:"filled"`
	FillRate float64 `json:"fill_rate"`
}

// BuildCoverage 按日期统计班次满员情况，结果按日期升序
func BuildCoverage(shifts []*model.ShiftSlot) []DateCoverage {
	byDate := make(map[string]*DateCoverage)
	for _, s := range shifts {
		c := byDate[s.Date]
		if c == nil {
			c = &DateCoverage{Date: s.Date}
			byDate[s.Date] = c
		}
		c.Shifts++
		if s.Remaining() == 0 {
			c.Filled++
		}
	}

	result := make([]DateCoverage, 0, len(byDate))
	for _, c := range byDate {
		if c.Shifts > 0 {
			c.FillRate = float64(c.Filled) / float64(c.Shifts)
		}
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}

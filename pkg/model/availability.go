// Package model 定义派岗引擎的核心数据模型
package model

// AvailabilityWindow 员工某一天申报的空闲时段
// 每次派岗运行时整体传入，引擎不会修改
type AvailabilityWindow struct {
	UserID   string       `json:"user_id" db:"user_id"`
	UserName string       `json:"user_name,omitempty" db:"user_name"`
	Date     string       `json:"date" db:"date"` // YYYY-MM-DD
	Ranges   []TimeWindow `json:"ranges" db:"-"`  // 互不重叠的空闲时段
}

// Covers 检查是否存在某一个空闲时段完整包含给定窗口
// 多个时段各自独立判断，命中任意一个即可
func (a *AvailabilityWindow) Covers(w TimeWindow) bool {
	for _, r := range a.Ranges {
		if r.Contains(w) {
			return true
		}
	}
	return false
}

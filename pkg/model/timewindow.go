// Package model 定义派岗引擎的核心数据模型
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeWindow 日内时间窗口，格式为 "HH:mm"
// 采用半开区间语义：[Start, End)，结束于 12:00 的班次与开始于 12:00 的班次不重叠
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Validate 校验时间窗口格式是否合法
func (w TimeWindow) Validate() error {
	start, ok := parseClock(w.Start)
	if !ok {
		return fmt.Errorf("无效的时间格式: %q", w.Start)
	}
	end, ok := parseClock(w.End)
	if !ok {
		return fmt.Errorf("无效的时间格式: %q", w.End)
	}
	if end <= start {
		return fmt.Errorf("结束时间 %s 必须晚于开始时间 %s", w.End, w.Start)
	}
	return nil
}

// StartMinutes 返回开始时间对应的当日分钟数
func (w TimeWindow) StartMinutes() int {
	m, _ := parseClock(w.Start)
	return m
}

// EndMinutes 返回结束时间对应的当日分钟数
func (w TimeWindow) EndMinutes() int {
	m, _ := parseClock(w.End)
	return m
}

// Minutes 返回窗口时长（分钟）
func (w TimeWindow) Minutes() int {
	return w.EndMinutes() - w.StartMinutes()
}

// Contains 检查本窗口是否完整包含另一个窗口
func (w TimeWindow) Contains(other TimeWindow) bool {
	return w.StartMinutes() <= other.StartMinutes() && other.EndMinutes() <= w.EndMinutes()
}

// Overlaps 检查两个窗口是否重叠（半开区间，首尾相接不算重叠）
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.StartMinutes() < other.EndMinutes() && other.StartMinutes() < w.EndMinutes()
}

// String 返回 "HH:mm-HH:mm" 形式
func (w TimeWindow) String() string {
	return w.Start + "-" + w.End
}

// parseClock 解析 "HH:mm" 为当日分钟数
// 允许 "24:00" 作为一天的结束
func parseClock(s string) (int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	if h < 0 || h > 24 || m < 0 || m > 59 {
		return 0, false
	}
	total := h*60 + m
	if total > 24*60 {
		return 0, false
	}
	return total, true
}

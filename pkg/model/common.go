// Package model 定义派岗引擎的核心数据模型
package model

import "time"

// JSONMap 用于存储 JSONB 数据
type JSONMap map[string]interface{}

// GetInt 获取整数参数
func (m JSONMap) GetInt(key string, defaultVal int) int {
	if val, ok := m[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case int64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return defaultVal
}

// GetFloat 获取浮点数参数
func (m JSONMap) GetFloat(key string, defaultVal float64) float64 {
	if val, ok := m[key]; ok {
		switch v := val.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		}
	}
	return defaultVal
}

// GetString 获取字符串参数
func (m JSONMap) GetString(key string, defaultVal string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return defaultVal
}

// GetStrings 获取字符串列表参数（兼容 JSON 反序列化产生的 []interface{}）
func (m JSONMap) GetStrings(key string) []string {
	switch v := m[key].(type) {
	case []string:
		return v
	case []interface{}:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	}
	return nil
}

// ValidDate 检查日期字符串是否为合法的 YYYY-MM-DD
func ValidDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// WeekStart 获取日期所在周的开始日期（周日）
func WeekStart(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	weekday := int(t.Weekday())
	return t.AddDate(0, 0, -weekday).Format("2006-01-02")
}

package util

import (
	"time"
)

// TruncateToDate 归一化到当天零点（UTC），保证按日分组聚合的确定性
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate 解析 YYYY-MM-DD 日期参数
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

package models

import (
	"time"
)

// Run 一次倒计时的记录. 只用于历史显示, 重启后不会恢复
type Run struct {
	ID         int64
	Start      time.Time
	Target     time.Time
	LaunchedAt time.Time
	ExpiredAt  *time.Time // 未过期时为 nil
}

// Expired 是否已经过期
func (r *Run) Expired() bool {
	return r.ExpiredAt != nil
}

// RunStats 历史统计
type RunStats struct {
	TotalRuns   int
	ExpiredRuns int
}

package countdown

import (
	"time"
)

// Clock 提供当前时间, 测试时可替换为固定时钟
type Clock interface {
	Now() time.Time
}

// SystemClock 读取系统本地时钟
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// ClockSource 根据固定的开始时间和目标时间计算倒计时的各项时长
type ClockSource struct {
	clock  Clock
	start  time.Time
	target time.Time
	total  time.Duration // 构造时计算, 之后不变
}

// NewClockSource 创建时间源, target 必须晚于 start
func NewClockSource(clock Clock, start, target time.Time) (*ClockSource, error) {
	if !target.After(start) {
		return nil, ErrInvalidWindow
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &ClockSource{
		clock:  clock,
		start:  start,
		target: target,
		total:  target.Sub(start),
	}, nil
}

// Now 当前时间, 每次都读取时钟, 不做缓存
func (c *ClockSource) Now() time.Time {
	return c.clock.Now()
}

func (c *ClockSource) Start() time.Time {
	return c.start
}

func (c *ClockSource) Target() time.Time {
	return c.target
}

// TotalDuration 总时长 = target - start
func (c *ClockSource) TotalDuration() time.Duration {
	return c.total
}

// Remaining 剩余时间 = target - now, 过期后为负数
func (c *ClockSource) Remaining() time.Duration {
	return c.RemainingAt(c.clock.Now())
}

// RemainingAt 给定时刻的剩余时间
func (c *ClockSource) RemainingAt(now time.Time) time.Duration {
	return c.target.Sub(now)
}

// Elapsed 已经过的时间 = now - start
func (c *ClockSource) Elapsed() time.Duration {
	return c.clock.Now().Sub(c.start)
}

// PercentComplete 完成百分比, 不做截断 (过期后可能超过 100)
func (c *ClockSource) PercentComplete() float64 {
	return c.PercentCompleteAt(c.clock.Now())
}

// PercentCompleteAt 给定时刻的完成百分比
func (c *ClockSource) PercentCompleteAt(now time.Time) float64 {
	return float64(now.Sub(c.start)) / float64(c.total) * 100
}

package countdown

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// 时间单位 (毫秒)
const (
	msPerSecond int64 = 1000
	msPerMinute       = 60 * msPerSecond
	msPerHour         = 60 * msPerMinute
	msPerDay          = 24 * msPerHour
)

// TimeUnits 剩余时间拆分后的天/时/分/秒
type TimeUnits struct {
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
}

// Milliseconds 把各单位还原为毫秒数
func (u TimeUnits) Milliseconds() int64 {
	return u.Days*msPerDay + u.Hours*msPerHour + u.Minutes*msPerMinute + u.Seconds*msPerSecond
}

// Decompose 按整除截断拆分时长, 负数按 0 处理
func Decompose(d time.Duration) TimeUnits {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	return TimeUnits{
		Days:    ms / msPerDay,
		Hours:   ms % msPerDay / msPerHour,
		Minutes: ms % msPerHour / msPerMinute,
		Seconds: ms % msPerMinute / msPerSecond,
	}
}

// PadNumber 左侧补零到 size 位, 超过 size 位的不截断
func PadNumber(n int64, size int) string {
	s := strconv.FormatInt(n, 10)
	if len(s) >= size {
		return s
	}
	return strings.Repeat("0", size-len(s)) + s
}

// FormatPercentage 保留两位小数并加上 "%"
func FormatPercentage(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

// RoundPercent 四舍五入到整数 (0.5 向上)
func RoundPercent(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

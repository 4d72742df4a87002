package countdown

import (
	"sync"
	"time"
)

// Schedule 周期性触发回调的资源. Cancel 可以重复调用
type Schedule interface {
	Arm(period time.Duration, fn func())
	Cancel()
}

// TickerSchedule 基于 time.Ticker 的 Schedule, 只能 Arm 一次
type TickerSchedule struct {
	mu        sync.Mutex
	stop      chan struct{}
	armed     bool
	cancelled bool
}

func NewTickerSchedule() *TickerSchedule {
	return &TickerSchedule{stop: make(chan struct{})}
}

// Arm 启动计时 goroutine, 回调在同一个 goroutine 中依次执行, 不会重叠
func (s *TickerSchedule) Arm(period time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.armed || s.cancelled || period <= 0 {
		return
	}
	s.armed = true

	go func(stop <-chan struct{}) {
		ticker := time.NewTicker(period)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				// Cancel 可能与 tick 同时就绪
				select {
				case <-stop:
					return
				default:
				}
				fn()
			}
		}
	}(s.stop)
}

// Cancel 停止计时, 重复调用无影响
func (s *TickerSchedule) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelled {
		return
	}
	s.cancelled = true
	close(s.stop)
}

// Armed 是否已经启动且尚未取消
func (s *TickerSchedule) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armed && !s.cancelled
}

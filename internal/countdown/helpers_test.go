package countdown

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// manualSchedule 记录 Arm 的参数, 由测试手动触发 tick
type manualSchedule struct {
	period    time.Duration
	fn        func()
	arms      int
	cancels   int
	cancelled bool
}

func (m *manualSchedule) Arm(period time.Duration, fn func()) {
	m.arms++
	m.period = period
	m.fn = fn
}

func (m *manualSchedule) Cancel() {
	m.cancels++
	m.cancelled = true
}

func (m *manualSchedule) Fire() {
	if m.fn != nil && !m.cancelled {
		m.fn()
	}
}

// panicRenderer 在指定位置写入时 panic
type panicRenderer struct {
	*Surface
	slot  Slot
	armed bool
}

func (p *panicRenderer) SetText(slot Slot, value string) {
	if p.armed && slot == p.slot {
		panic("render failed")
	}
	p.Surface.SetText(slot, value)
}

// mustText 读取位置的文本, 位置不存在时测试失败
func mustText(t *testing.T, s *Surface, slot Slot) string {
	t.Helper()
	v, ok := s.Text(slot)
	require.True(t, ok, "slot %s missing", slot)
	return v
}

// steppingClock 每次读取后前进 step, 用来发现同一 tick 内的重复读取
type steppingClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (s *steppingClock) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now
	s.now = s.now.Add(s.step)
	return now
}

func (s *steppingClock) SetStep(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = d
}

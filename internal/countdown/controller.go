package countdown

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultUpdateInterval 默认刷新间隔
const DefaultUpdateInterval = time.Second

// State 倒计时状态, 只能从 Running 变为 Expired
type State int

const (
	StateRunning State = iota
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateExpired:
		return "expired"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Settings 倒计时配置, 创建控制器后不再改变
type Settings struct {
	Start          time.Time
	Target         time.Time
	UpdateInterval time.Duration
	Locale         string
	ExpiredMessage string
}

// Snapshot 最近一次渲染的数值
type Snapshot struct {
	State      State
	Units      TimeUnits
	Percentage string
	ValueNow   int64
	RenderedAt time.Time
}

// Controller 倒计时控制器: 每次 tick 读取时间, 计算显示值并写入 Renderer
type Controller struct {
	settings Settings
	source   *ClockSource
	renderer Renderer
	schedule Schedule
	log      logrus.FieldLogger

	onExpired []func(at time.Time)

	mu       sync.Mutex
	state    State
	started  bool
	stopped  bool
	snapshot Snapshot
}

// Option 控制器可选参数
type Option func(*Controller)

// WithClock 替换时钟, 主要用于测试
func WithClock(clock Clock) Option {
	return func(c *Controller) {
		c.source.clock = clock
	}
}

// WithSchedule 替换周期触发器
func WithSchedule(schedule Schedule) Option {
	return func(c *Controller) {
		c.schedule = schedule
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// OnExpired 注册过期回调, 只会被调用一次
func OnExpired(fn func(at time.Time)) Option {
	return func(c *Controller) {
		if fn != nil {
			c.onExpired = append(c.onExpired, fn)
		}
	}
}

// New 创建控制器并渲染开始/结束日期. 目标时间不晚于开始时间时返回 ErrInvalidWindow
func New(settings Settings, renderer Renderer, opts ...Option) (*Controller, error) {
	if renderer == nil {
		return nil, ErrNoRenderer
	}
	source, err := NewClockSource(SystemClock{}, settings.Start, settings.Target)
	if err != nil {
		return nil, fmt.Errorf("create clock source: %w", err)
	}
	if settings.UpdateInterval <= 0 {
		settings.UpdateInterval = DefaultUpdateInterval
	}
	if settings.Locale == "" {
		settings.Locale = DefaultLocale
	}

	c := &Controller{
		settings: settings,
		source:   source,
		renderer: renderer,
		log:      logrus.StandardLogger(),
		state:    StateRunning,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.source.clock == nil {
		c.source.clock = SystemClock{}
	}
	if c.schedule == nil {
		c.schedule = NewTickerSchedule()
	}

	c.renderDateLabels()
	c.logInitialInfo()
	return c, nil
}

func (c *Controller) renderDateLabels() {
	c.renderer.SetText(SlotStartDate, FormatDate(c.settings.Start, c.settings.Locale))
	c.renderer.SetText(SlotEndDate, FormatDate(c.settings.Target, c.settings.Locale))
}

func (c *Controller) logInitialInfo() {
	c.log.WithFields(logrus.Fields{
		"target":     c.settings.Target.Format(time.DateTime),
		"now":        c.source.Now().Format(time.DateTime),
		"start":      c.settings.Start.Format(time.DateTime),
		"total_days": c.source.TotalDuration().Hours() / 24,
	}).Info("countdown loaded")
}

// Start 立即刷新一次, 然后按 UpdateInterval 周期刷新. 重复调用无效
func (c *Controller) Start() {
	c.mu.Lock()
	if c.started || c.stopped {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	c.Tick()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateRunning && !c.stopped && c.schedule != nil {
		c.schedule.Arm(c.settings.UpdateInterval, c.Tick)
	}
}

// Tick 执行一次刷新. 过期之后调用不会改变任何显示
func (c *Controller) Tick() {
	at, expired := c.tick()
	if expired {
		c.fireExpired(at)
	}
}

func (c *Controller) tick() (at time.Time, expired bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateExpired || c.stopped {
		return time.Time{}, false
	}

	// 单次渲染失败不能影响后续的 tick
	defer func() {
		if r := recover(); r != nil {
			c.log.WithField("panic", r).Error("countdown tick failed")
		}
	}()

	// 每次 tick 只读一次时钟, 剩余时间和百分比都基于同一时刻
	now := c.source.Now()
	remaining := c.source.RemainingAt(now)
	if remaining <= 0 {
		at, expired = now, true
		c.expireLocked(now)
		return at, expired
	}

	units := Decompose(remaining)
	c.renderUnits(units)

	percent := c.source.PercentCompleteAt(now)
	formatted := FormatPercentage(percent)
	valueNow := RoundPercent(percent)
	c.renderProgress(formatted, valueNow)

	c.snapshot = Snapshot{
		State:      StateRunning,
		Units:      units,
		Percentage: formatted,
		ValueNow:   valueNow,
		RenderedAt: now,
	}
	c.log.WithFields(logrus.Fields{
		"days":    units.Days,
		"hours":   units.Hours,
		"minutes": units.Minutes,
		"seconds": units.Seconds,
		"percent": formatted,
	}).Debug("countdown tick")
	return time.Time{}, false
}

// expireLocked 进入过期状态, 调用方必须持有 c.mu
func (c *Controller) expireLocked(now time.Time) {
	c.state = StateExpired
	if c.schedule != nil {
		c.schedule.Cancel()
		c.schedule = nil
	}

	// 不使用真实百分比, 避免显示 100.04% 之类的数值
	var zero TimeUnits
	c.renderUnits(zero)
	c.renderProgress(FormatPercentage(100), 100)
	c.renderer.SetText(SlotMessage, c.settings.ExpiredMessage)

	c.snapshot = Snapshot{
		State:      StateExpired,
		Units:      zero,
		Percentage: FormatPercentage(100),
		ValueNow:   100,
		RenderedAt: now,
	}
	c.log.WithField("target", c.settings.Target.Format(time.DateTime)).Info("countdown expired")
}

func (c *Controller) fireExpired(at time.Time) {
	for _, fn := range c.onExpired {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.log.WithField("panic", r).Error("expired callback failed")
				}
			}()
			fn(at)
		}()
	}
}

func (c *Controller) renderUnits(units TimeUnits) {
	c.renderer.SetText(SlotDays, PadNumber(units.Days, 2))
	c.renderer.SetText(SlotHours, PadNumber(units.Hours, 2))
	c.renderer.SetText(SlotMinutes, PadNumber(units.Minutes, 2))
	c.renderer.SetText(SlotSeconds, PadNumber(units.Seconds, 2))
	c.renderer.SetText(SlotTotalDays, strconv.FormatInt(units.Days, 10))
}

func (c *Controller) renderProgress(formatted string, valueNow int64) {
	c.renderer.SetStyleProperty(SlotProgressBar, StyleWidth, formatted)
	c.renderer.SetText(SlotProgressPercentage, formatted)
	c.renderer.SetAttribute(SlotProgressBar, AttrValueNow, strconv.FormatInt(valueNow, 10))
}

// Stop 释放周期触发器. 不会进入过期状态
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	if c.schedule != nil {
		c.schedule.Cancel()
		c.schedule = nil
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

func (c *Controller) Settings() Settings {
	return c.settings
}

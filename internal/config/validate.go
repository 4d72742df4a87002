package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"Countdown/internal/countdown"
)

// ErrInvalidInstant 无法解析的时间
var ErrInvalidInstant = errors.New("invalid instant")

// 支持的时间格式, 按顺序尝试
var instantLayouts = []string{
	time.DateTime,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// ParseInstant 按本地时区解析时间
func ParseInstant(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidInstant, value)
}

func (cfg *Config) Validate() error {
	if err := cfg.Countdown.validate(); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if cfg.Sound.Enabled && cfg.Sound.Path == "" {
		return errors.New("sound: path is required when sound is enabled")
	}
	return nil
}

func (c CountdownConfig) validate() error {
	start, err := ParseInstant(c.Start)
	if err != nil {
		return fmt.Errorf("countdown.start: %w", err)
	}
	target, err := ParseInstant(c.Target)
	if err != nil {
		return fmt.Errorf("countdown.target: %w", err)
	}
	if !target.After(start) {
		return fmt.Errorf("countdown: target %s is not after start %s: %w",
			target.Format(time.DateTime), start.Format(time.DateTime), countdown.ErrInvalidWindow)
	}
	if c.UpdateInterval < 0 {
		return fmt.Errorf("countdown.update_interval: must not be negative, got %s", c.UpdateInterval)
	}
	return nil
}

// Settings 转换为倒计时控制器使用的不可变配置
func (c CountdownConfig) Settings() (countdown.Settings, error) {
	if err := c.validate(); err != nil {
		return countdown.Settings{}, err
	}
	start, _ := ParseInstant(c.Start)
	target, _ := ParseInstant(c.Target)
	return countdown.Settings{
		Start:          start,
		Target:         target,
		UpdateInterval: c.UpdateInterval,
		Locale:         c.Locale,
		ExpiredMessage: c.ExpiredMessage,
	}, nil
}

// LogLevel 配置的日志级别, 无效时为 info
func (cfg *Config) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// 配置文件路径的环境变量
const EnvConfigPath = "COUNTDOWN_CONFIG"

type Config struct {
	App       AppConfig       `yaml:"app"`
	Countdown CountdownConfig `yaml:"countdown"`
	Sound     SoundConfig     `yaml:"sound"`
	Database  DatabaseConfig  `yaml:"database"`
	Theme     ThemeConfig     `yaml:"theme"`
	Log       LogConfig       `yaml:"log"`
}

type AppConfig struct {
	Name         string `yaml:"name"`
	Version      string `yaml:"version"`
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
}

// CountdownConfig 倒计时的开始/目标时间使用本地时区
type CountdownConfig struct {
	Target         string        `yaml:"target"`
	Start          string        `yaml:"start"`
	UpdateInterval time.Duration `yaml:"update_interval"`
	Locale         string        `yaml:"locale"`
	ExpiredMessage string        `yaml:"expired_message"`
}

type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Path    string  `yaml:"path"`
	Volume  float64 `yaml:"volume"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type ThemeConfig struct {
	FontSize int `yaml:"font_size"` // 数字的字号
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// 默认配置
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:         "Odpočítavanie",
			Version:      "1.0.0",
			WindowWidth:  560,
			WindowHeight: 420,
		},
		Countdown: CountdownConfig{
			Target:         "2025-08-31 23:59:59",
			Start:          "2025-05-17 00:00:00",
			UpdateInterval: time.Second,
			Locale:         "sk-SK",
			ExpiredMessage: "Čas vypršal! Dúfam, že si pripravený na svoju novú kariéru dátového analytika!",
		},
		// 默认不播放, 需要在配置中指定 wav 文件
		Sound: SoundConfig{
			Enabled: false,
			Path:    "assets/expired.wav",
			Volume:  0,
		},
		Database: DatabaseConfig{
			Path: "countdown.db",
		},
		Theme: ThemeConfig{
			FontSize: 32,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

type Manager struct {
	config     *Config
	configPath string
}

// NewManager 从用户目录加载配置, 文件不存在时写入默认配置
func NewManager() (*Manager, error) {
	configPath := os.Getenv(EnvConfigPath)
	if configPath == "" {
		configDir, err := getConfigDir()
		if err != nil {
			return nil, err
		}
		configPath = filepath.Join(configDir, "config.yaml")
	}
	return NewManagerAt(configPath)
}

// NewManagerAt 使用指定的配置文件路径
func NewManagerAt(configPath string) (*Manager, error) {
	manager := &Manager{
		configPath: configPath,
	}

	// 加载或创建配置
	err := manager.loadConfig()
	switch {
	case errors.Is(err, os.ErrNotExist):
		manager.config = DefaultConfig()
		if err := manager.SaveConfig(); err != nil {
			return nil, fmt.Errorf("write default config: %w", err)
		}
	case err != nil:
		return nil, err
	}

	if err := manager.config.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", configPath, err)
	}
	return manager, nil
}

func (m *Manager) loadConfig() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	// 未写出的字段保留默认值
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parse config %s: %w", m.configPath, err)
	}

	m.config = config
	return nil
}

func (m *Manager) SaveConfig() error {
	data, err := yaml.Marshal(m.config)
	if err != nil {
		return err
	}

	// 确保配置目录存在
	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	return os.WriteFile(m.configPath, data, 0644)
}

func (m *Manager) GetConfig() *Config {
	return m.config
}

func (m *Manager) Path() string {
	return m.configPath
}

// 获取配置文件目录
func getConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".countdown"), nil
}

// UpdateCountdownConfig 校验后保存新的倒计时配置
func (m *Manager) UpdateCountdownConfig(config CountdownConfig) error {
	if err := config.validate(); err != nil {
		return err
	}
	m.config.Countdown = config
	return m.SaveConfig()
}

func (m *Manager) UpdateThemeConfig(config ThemeConfig) error {
	m.config.Theme = config
	return m.SaveConfig()
}

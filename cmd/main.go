package main

import (
	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"

	"Countdown/internal/config"
	"Countdown/internal/storage"
	"Countdown/internal/ui"
)

func main() {
	// 初始化配置管理器
	configManager, err := config.NewManager()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	cfg := configManager.GetConfig()
	logrus.SetLevel(cfg.LogLevel())
	logrus.Infof("using config %s", configManager.Path())

	// 历史记录不可用时倒计时照常运行
	db, err := storage.NewDatabase(cfg.Database.Path)
	if err != nil {
		logrus.WithError(err).Warn("history disabled")
		db = nil
	}
	defer db.Close()

	// 创建应用
	myApp := app.New()

	// 创建主窗口
	mainWindow := ui.NewMainWindow(myApp, configManager, db)

	// 设置窗口大小
	mainWindow.SetSize(float32(cfg.App.WindowWidth), float32(cfg.App.WindowHeight))

	mainWindow.Show()
}

package ui

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"Countdown/internal/config"
	"Countdown/internal/countdown"
	"Countdown/internal/models"
	"Countdown/internal/storage"
)

type MainWindow struct {
	app           fyne.App
	window        fyne.Window
	view          *CountdownView
	history       *HistoryView
	db            *storage.Database
	configManager *config.Manager
	notifier      *Notifier
	log           logrus.FieldLogger

	controller *countdown.Controller
	run        *models.Run
}

// NewMainWindow 创建主窗口. db 为 nil 时不记录历史
func NewMainWindow(app fyne.App, configManager *config.Manager, db *storage.Database) *MainWindow {
	cfg := configManager.GetConfig()
	w := &MainWindow{
		app:           app,
		window:        app.NewWindow(cfg.App.Name),
		view:          NewCountdownView(float32(cfg.Theme.FontSize)),
		db:            db,
		configManager: configManager,
		log:           logrus.WithField("component", "window"),
	}

	var store RunStore
	if db != nil {
		store = db
	}
	w.history = NewHistoryView(store)

	if cfg.Sound.Enabled {
		notifier, err := NewNotifier(cfg.Sound.Path, cfg.Sound.Volume)
		if err != nil {
			w.log.WithError(err).Warn("notification sound disabled")
		} else {
			w.notifier = notifier
		}
	}

	w.setup()

	// 应用启动完成后再创建倒计时
	app.Lifecycle().SetOnStarted(w.start)
	app.Lifecycle().SetOnStopped(w.stop)
	return w
}

func (w *MainWindow) SetSize(width, height float32) {
	w.window.Resize(fyne.NewSize(width, height))
}

func (w *MainWindow) setup() {
	settingsBtn := widget.NewButtonWithIcon("Settings", theme.SettingsIcon(), w.showSettings)

	countdownTab := container.NewBorder(nil, container.NewHBox(settingsBtn), nil, nil,
		container.NewPadded(w.view.Container()))

	tabs := container.NewAppTabs(
		container.NewTabItem("Odpočítavanie", countdownTab),
		container.NewTabItem("History", container.NewVScroll(w.history.Container())),
	)

	w.window.SetContent(tabs)
}

func (w *MainWindow) Show() {
	w.window.ShowAndRun()
}

// start 初始化失败只记录日志并显示在界面上, 不能让程序崩溃
func (w *MainWindow) start() {
	defer func() {
		if r := recover(); r != nil {
			w.log.WithField("panic", r).Error("countdown initialisation failed")
			w.view.SetText(countdown.SlotMessage, fmt.Sprint(r))
		}
	}()

	if err := w.startCountdown(); err != nil {
		w.log.WithError(err).Error("countdown initialisation failed")
		w.view.SetText(countdown.SlotMessage, err.Error())
	}
}

func (w *MainWindow) startCountdown() error {
	if w.controller != nil {
		return nil
	}

	settings, err := w.configManager.GetConfig().Countdown.Settings()
	if err != nil {
		return fmt.Errorf("countdown settings: %w", err)
	}

	controller, err := countdown.New(settings, w.view,
		countdown.WithLogger(logrus.WithField("component", "countdown")),
		countdown.OnExpired(w.onExpired),
	)
	if err != nil {
		return fmt.Errorf("create countdown: %w", err)
	}
	w.controller = controller
	w.recordRun(settings)

	controller.Start()
	return nil
}

// recordRun 保存本次运行, 失败不影响倒计时
func (w *MainWindow) recordRun(settings countdown.Settings) {
	if w.db == nil {
		return
	}
	run := &models.Run{
		Start:      settings.Start,
		Target:     settings.Target,
		LaunchedAt: time.Now(),
	}
	if err := w.db.SaveRun(run); err != nil {
		w.log.WithError(err).Warn("save run")
		return
	}
	w.run = run
	w.refreshHistory()
}

func (w *MainWindow) onExpired(at time.Time) {
	if w.db != nil && w.run != nil {
		if err := w.db.MarkExpired(w.run.ID, at); err != nil {
			w.log.WithError(err).WithField("run", w.run.ID).Warn("mark run expired")
		}
		w.refreshHistory()
	}

	// 播放提示音
	go w.notifier.Play()
}

func (w *MainWindow) refreshHistory() {
	w.view.post(w.history.Refresh)
}

func (w *MainWindow) stop() {
	if w.controller != nil {
		w.controller.Stop()
	}
}

// showSettings 显示设置窗口, 修改在下次启动时生效
func (w *MainWindow) showSettings() {
	cfg := w.configManager.GetConfig()

	startEntry := widget.NewEntry()
	startEntry.SetText(cfg.Countdown.Start)

	targetEntry := widget.NewEntry()
	targetEntry.SetText(cfg.Countdown.Target)

	messageEntry := widget.NewEntry()
	messageEntry.SetText(cfg.Countdown.ExpiredMessage)

	fontEntry := widget.NewEntry()
	fontEntry.SetText(strconv.Itoa(cfg.Theme.FontSize))

	items := []*widget.FormItem{
		{Text: "Start", Widget: startEntry},
		{Text: "Target", Widget: targetEntry},
		{Text: "Message", Widget: messageEntry},
		{Text: "Font size", Widget: fontEntry},
	}

	dialog.ShowForm("Settings", "Save", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		err := w.saveSettings(startEntry.Text, targetEntry.Text, messageEntry.Text, fontEntry.Text)
		if err != nil {
			dialog.ShowError(err, w.window)
			return
		}
		dialog.ShowInformation("Settings", "Saved. Restart to apply.", w.window)
	}, w.window)
}

func (w *MainWindow) saveSettings(start, target, message, fontSize string) error {
	size, err := strconv.Atoi(fontSize)
	if err != nil || size <= 0 {
		return errors.New("font size must be a positive number")
	}

	cd := w.configManager.GetConfig().Countdown
	cd.Start = start
	cd.Target = target
	cd.ExpiredMessage = message
	if err := w.configManager.UpdateCountdownConfig(cd); err != nil {
		return err
	}

	th := w.configManager.GetConfig().Theme
	th.FontSize = size
	return w.configManager.UpdateThemeConfig(th)
}

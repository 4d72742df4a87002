package ui

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"Countdown/internal/models"
)

// 历史记录显示的最大条数
const historyLimit = 20

// RunStore 历史记录的数据来源
type RunStore interface {
	RecentRuns(limit int) ([]*models.Run, error)
	GetRunStats(since time.Time) (*models.RunStats, error)
}

type HistoryView struct {
	container  *fyne.Container
	store      RunStore
	dateRange  *widget.Select
	stats      *widget.Label
	runs       *widget.Label
	refreshBtn *widget.Button
	now        func() time.Time
}

func NewHistoryView(store RunStore) *HistoryView {
	hv := &HistoryView{
		store: store,
		stats: widget.NewLabel(""),
		runs:  widget.NewLabel(""),
		now:   time.Now,
	}
	hv.setup()
	return hv
}

func (hv *HistoryView) setup() {
	title := widget.NewLabelWithStyle("History", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	// 创建刷新按钮
	hv.refreshBtn = widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), hv.Refresh)

	// 创建日期范围选择器
	hv.dateRange = widget.NewSelect(
		[]string{"Today", "This Week", "This Month", "All Time"},
		func(selected string) {
			hv.updateStats(selected)
		},
	)

	toolbar := container.NewHBox(
		widget.NewLabel("Time Range:"),
		hv.dateRange,
		hv.refreshBtn,
	)

	hv.container = container.NewVBox(
		title,
		toolbar,
		hv.stats,
		widget.NewLabelWithStyle("Recent Runs", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		hv.runs,
	)

	// 设置默认选中值并更新统计
	hv.dateRange.SetSelected("All Time")
}

// Refresh 按当前选择的范围重新读取
func (hv *HistoryView) Refresh() {
	if selected := hv.dateRange.Selected; selected != "" {
		hv.updateStats(selected)
	}
}

// rangeStart 根据选择的时间范围计算开始时间, 零值表示不限制
func rangeStart(timeRange string, now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch timeRange {
	case "Today":
		return today
	case "This Week":
		return today.AddDate(0, 0, -int(now.Weekday()))
	case "This Month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Time{}
	}
}

func (hv *HistoryView) updateStats(timeRange string) {
	if hv.store == nil {
		hv.stats.SetText("History is unavailable")
		return
	}

	stats, err := hv.store.GetRunStats(rangeStart(timeRange, hv.now()))
	if err != nil {
		logrus.WithError(err).Warn("load run stats")
		return
	}
	hv.stats.SetText(fmt.Sprintf(
		"Runs: %d\n"+
			"Expired: %d",
		stats.TotalRuns,
		stats.ExpiredRuns,
	))

	runs, err := hv.store.RecentRuns(historyLimit)
	if err != nil {
		logrus.WithError(err).Warn("load recent runs")
		return
	}
	hv.runs.SetText(formatRuns(runs))
}

func formatRuns(runs []*models.Run) string {
	if len(runs) == 0 {
		return "No runs yet"
	}
	var b strings.Builder
	for i, run := range runs {
		if i > 0 {
			b.WriteByte('\n')
		}
		status := "running"
		if run.Expired() {
			status = "expired " + run.ExpiredAt.Local().Format(time.DateTime)
		}
		fmt.Fprintf(&b, "#%d  %s → %s  (launched %s, %s)",
			run.ID,
			run.Start.Local().Format(time.DateOnly),
			run.Target.Local().Format(time.DateOnly),
			run.LaunchedAt.Local().Format(time.DateTime),
			status,
		)
	}
	return b.String()
}

func (hv *HistoryView) Container() *fyne.Container {
	return hv.container
}

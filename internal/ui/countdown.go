package ui

import (
	"image/color"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"Countdown/internal/countdown"
)

// 定义颜色常量
var (
	digitColor   = color.NRGBA{R: 25, G: 25, B: 25, A: 255}
	captionColor = color.NRGBA{R: 80, G: 80, B: 80, A: 255}
	messageColor = color.NRGBA{R: 255, G: 64, B: 129, A: 255}
)

// CountdownView 倒计时界面, 实现 countdown.Renderer
type CountdownView struct {
	container *fyne.Container
	texts     map[countdown.Slot]*canvas.Text
	bar       *widget.ProgressBar
	valueNow  string

	// 界面修改必须在主线程执行
	post func(func())
}

// NewCountdownView 创建倒计时界面. fontSize 为数字的字号
func NewCountdownView(fontSize float32) *CountdownView {
	v := &CountdownView{
		texts: make(map[countdown.Slot]*canvas.Text),
		bar:   widget.NewProgressBar(),
		post:  fyne.Do,
	}
	if fontSize <= 0 {
		fontSize = 32
	}

	units := container.NewGridWithColumns(4,
		v.unit(countdown.SlotDays, "dní", fontSize),
		v.unit(countdown.SlotHours, "hodín", fontSize),
		v.unit(countdown.SlotMinutes, "minút", fontSize),
		v.unit(countdown.SlotSeconds, "sekúnd", fontSize),
	)

	v.bar.TextFormatter = func() string {
		if v.valueNow == "" {
			return ""
		}
		return v.valueNow + "%"
	}

	totalDays := v.text(countdown.SlotTotalDays, "", 14, captionColor)
	dates := container.NewHBox(
		v.text(countdown.SlotStartDate, "", 14, captionColor),
		canvas.NewText("→", captionColor),
		v.text(countdown.SlotEndDate, "", 14, captionColor),
	)

	message := v.text(countdown.SlotMessage, "", 16, messageColor)
	message.TextStyle = fyne.TextStyle{Bold: true}

	v.container = container.NewVBox(
		container.NewCenter(dates),
		container.NewPadded(units),
		container.NewHBox(widget.NewLabel("Zostáva dní:"), totalDays),
		v.bar,
		container.NewCenter(v.text(countdown.SlotProgressPercentage, "", 14, captionColor)),
		container.NewCenter(message),
	)
	return v
}

func (v *CountdownView) unit(slot countdown.Slot, caption string, size float32) fyne.CanvasObject {
	digits := v.text(slot, "--", size, digitColor)
	digits.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}

	label := canvas.NewText(caption, captionColor)
	label.Alignment = fyne.TextAlignCenter
	return container.NewVBox(digits, label)
}

func (v *CountdownView) text(slot countdown.Slot, initial string, size float32, c color.Color) *canvas.Text {
	t := canvas.NewText(initial, c)
	t.TextSize = size
	t.Alignment = fyne.TextAlignCenter
	v.texts[slot] = t
	return t
}

// Container 返回界面的根容器
func (v *CountdownView) Container() fyne.CanvasObject {
	return v.container
}

func (v *CountdownView) SetText(slot countdown.Slot, value string) {
	t, ok := v.texts[slot]
	if !ok {
		return
	}
	v.post(func() {
		t.Text = value
		t.Refresh()
	})
}

// SetAttribute 只支持进度条的 aria-valuenow, 显示在进度条上
func (v *CountdownView) SetAttribute(slot countdown.Slot, name, value string) {
	if slot != countdown.SlotProgressBar || name != countdown.AttrValueNow {
		return
	}
	v.post(func() {
		v.valueNow = value
		v.bar.Refresh()
	})
}

// SetStyleProperty 只支持进度条的 width, 例如 "42.52%"
func (v *CountdownView) SetStyleProperty(slot countdown.Slot, property, value string) {
	if slot != countdown.SlotProgressBar || property != countdown.StyleWidth {
		return
	}
	percent, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(value), "%"), 64)
	if err != nil {
		logrus.WithError(err).WithField("value", value).Debug("ignore progress width")
		return
	}
	fraction := percent / 100
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	v.post(func() {
		v.bar.SetValue(fraction)
	})
}

// Text 当前显示的文本
func (v *CountdownView) Text(slot countdown.Slot) string {
	if t, ok := v.texts[slot]; ok {
		return t.Text
	}
	return ""
}

package ui

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/sirupsen/logrus"
)

// 扬声器只能初始化一次
var (
	speakerOnce sync.Once
	speakerErr  error
)

// Notifier 倒计时结束时播放提示音
type Notifier struct {
	buffer *beep.Buffer
	volume float64
}

// NewNotifier 读取 wav 文件到内存
func NewNotifier(path string, volume float64) (*Notifier, error) {
	buffer, err := loadSound(path)
	if err != nil {
		return nil, err
	}
	return &Notifier{buffer: buffer, volume: volume}, nil
}

func loadSound(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sound: %w", err)
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode sound %s: %w", path, err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	return buffer, nil
}

func initSpeaker(format beep.Format) error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
	})
	return speakerErr
}

// Play 异步播放, 失败只记录日志
func (n *Notifier) Play() {
	if n == nil || n.buffer == nil {
		return
	}
	if err := initSpeaker(n.buffer.Format()); err != nil {
		logrus.WithError(err).Warn("init speaker")
		return
	}

	// 创建音量控制器
	volumeCtrl := &effects.Volume{
		Streamer: n.buffer.Streamer(0, n.buffer.Len()),
		Base:     2,
		Volume:   n.volume,
		Silent:   false,
	}
	speaker.Play(volumeCtrl)
}

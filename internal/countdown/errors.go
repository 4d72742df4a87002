package countdown

import "errors"

var (
	// ErrInvalidWindow 目标时间不晚于开始时间
	ErrInvalidWindow = errors.New("countdown: target must be after start")
	// ErrNoRenderer 没有可用的显示界面
	ErrNoRenderer = errors.New("countdown: renderer is nil")
)

package countdown

import (
	"sync"
)

// Slot 显示界面上的命名位置
type Slot string

const (
	SlotDays               Slot = "days"
	SlotHours              Slot = "hours"
	SlotMinutes            Slot = "minutes"
	SlotSeconds            Slot = "seconds"
	SlotTotalDays          Slot = "total-days"
	SlotStartDate          Slot = "start-date"
	SlotEndDate            Slot = "end-date"
	SlotProgressBar        Slot = "progress-bar"
	SlotProgressPercentage Slot = "progress-percentage"
	SlotMessage            Slot = "message"
)

// Slots 控制器会写入的全部位置
var Slots = []Slot{
	SlotDays, SlotHours, SlotMinutes, SlotSeconds, SlotTotalDays,
	SlotStartDate, SlotEndDate, SlotProgressBar, SlotProgressPercentage, SlotMessage,
}

const (
	AttrValueNow = "aria-valuenow"
	StyleWidth   = "width"
)

// Renderer 显示界面. 写入不存在的位置时什么也不做, 不能报错
type Renderer interface {
	SetText(slot Slot, value string)
	SetAttribute(slot Slot, name, value string)
	SetStyleProperty(slot Slot, property, value string)
}

// Surface 内存中的显示界面, 只接受创建时声明的位置
type Surface struct {
	mu    sync.RWMutex
	slots map[Slot]*slotState
}

type slotState struct {
	text  string
	attrs map[string]string
	style map[string]string
}

// NewSurface 创建包含指定位置的界面, 不传参数时包含全部位置
func NewSurface(slots ...Slot) *Surface {
	if len(slots) == 0 {
		slots = Slots
	}
	s := &Surface{slots: make(map[Slot]*slotState, len(slots))}
	for _, slot := range slots {
		s.slots[slot] = &slotState{
			attrs: make(map[string]string),
			style: make(map[string]string),
		}
	}
	return s
}

func (s *Surface) SetText(slot Slot, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.slots[slot]; ok {
		st.text = value
	}
}

func (s *Surface) SetAttribute(slot Slot, name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.slots[slot]; ok {
		st.attrs[name] = value
	}
}

func (s *Surface) SetStyleProperty(slot Slot, property, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.slots[slot]; ok {
		st.style[property] = value
	}
}

// Text 读取位置的文本, 位置不存在时返回 false
func (s *Surface) Text(slot Slot) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.slots[slot]
	if !ok {
		return "", false
	}
	return st.text, true
}

func (s *Surface) Attribute(slot Slot, name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.slots[slot]
	if !ok {
		return "", false
	}
	v, ok := st.attrs[name]
	return v, ok
}

func (s *Surface) StyleProperty(slot Slot, property string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.slots[slot]
	if !ok {
		return "", false
	}
	v, ok := st.style[property]
	return v, ok
}

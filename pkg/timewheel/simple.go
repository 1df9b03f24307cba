package timewheel

import (
	"sync"
	"time"
)

type Handler[T any] func(wheel *SimpleTimeWheel[T], key string, value T)

// SimpleTimeWheel 单层时间轮，按 tick 推进，到点的任务交给 handler
type SimpleTimeWheel[T any] struct {
	tick    time.Duration
	slotNum int
	slots   []map[string]*entry[T]
	pos     map[string]int // key -> slot 下标，支持 Remove
	cur     int

	handler Handler[T]

	mu   sync.Mutex
	quit chan struct{}
	once sync.Once
}

type entry[T any] struct {
	value  T
	rounds int // 还要转几圈才触发
}

func NewSimpleTimeWheel[T any](tick time.Duration, slotNum int, handler Handler[T]) *SimpleTimeWheel[T] {
	slots := make([]map[string]*entry[T], slotNum)
	for i := range slots {
		slots[i] = make(map[string]*entry[T])
	}
	return &SimpleTimeWheel[T]{
		tick:    tick,
		slotNum: slotNum,
		slots:   slots,
		pos:     make(map[string]int),
		handler: handler,
		quit:    make(chan struct{}),
	}
}

func (w *SimpleTimeWheel[T]) Start() {
	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.advance()
		case <-w.quit:
			return
		}
	}
}

func (w *SimpleTimeWheel[T]) Stop() {
	w.once.Do(func() {
		close(w.quit)
	})
}

// Add 注册延时任务，同 key 重复注册时覆盖旧任务
func (w *SimpleTimeWheel[T]) Add(key string, value T, delay time.Duration) {
	ticks := int(delay / w.tick)
	if ticks < 1 {
		ticks = 1
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if old, ok := w.pos[key]; ok {
		delete(w.slots[old], key)
	}

	slot := (w.cur + ticks) % w.slotNum
	w.slots[slot][key] = &entry[T]{
		value:  value,
		rounds: ticks / w.slotNum,
	}
	w.pos[key] = slot
}

func (w *SimpleTimeWheel[T]) Remove(key string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if slot, ok := w.pos[key]; ok {
		delete(w.slots[slot], key)
		delete(w.pos, key)
	}
}

func (w *SimpleTimeWheel[T]) advance() {
	w.mu.Lock()
	w.cur = (w.cur + 1) % w.slotNum
	slot := w.slots[w.cur]

	due := make(map[string]T)
	for key, e := range slot {
		if e.rounds > 0 {
			e.rounds--
			continue
		}
		due[key] = e.value
		delete(slot, key)
		delete(w.pos, key)
	}
	w.mu.Unlock()

	// handler 在锁外执行，允许 handler 里重新 Add
	for key, value := range due {
		w.handler(w, key, value)
	}
}

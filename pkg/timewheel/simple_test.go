package timewheel

import (
	"sync"
	"testing"
	"time"
)

// 1. 到点触发
func TestSimpleTimeWheel_Trigger(t *testing.T) {
	var (
		mu    sync.Mutex
		fired = make(map[string]int)
	)

	obj := NewSimpleTimeWheel[int](
		10*time.Millisecond,
		10,
		func(wheel *SimpleTimeWheel[int], key string, value int) {
			mu.Lock()
			fired[key] = value
			mu.Unlock()
		},
	)

	go obj.Start()
	defer obj.Stop()

	obj.Add("a", 1, 20*time.Millisecond)
	obj.Add("b", 2, 50*time.Millisecond)

	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if fired["a"] != 1 || fired["b"] != 2 {
		t.Fatalf("任务未全部触发: %v", fired)
	}
}

// 2. Remove 之后不再触发
func TestSimpleTimeWheel_Remove(t *testing.T) {
	var (
		mu    sync.Mutex
		count int
	)

	obj := NewSimpleTimeWheel[int](
		10*time.Millisecond,
		10,
		func(wheel *SimpleTimeWheel[int], key string, value int) {
			mu.Lock()
			count++
			mu.Unlock()
		},
	)

	go obj.Start()
	defer obj.Stop()

	obj.Add("a", 1, 50*time.Millisecond)
	obj.Remove("a")

	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Fatalf("已移除的任务被触发了 %d 次", count)
	}
}

// 3. 同 key 覆盖：只触发一次
func TestSimpleTimeWheel_Overwrite(t *testing.T) {
	var (
		mu   sync.Mutex
		got  []int
	)

	obj := NewSimpleTimeWheel[int](
		10*time.Millisecond,
		10,
		func(wheel *SimpleTimeWheel[int], key string, value int) {
			mu.Lock()
			got = append(got, value)
			mu.Unlock()
		},
	)

	go obj.Start()
	defer obj.Stop()

	obj.Add("a", 1, 30*time.Millisecond)
	obj.Add("a", 2, 30*time.Millisecond)

	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("覆盖语义不对: %v", got)
	}
}

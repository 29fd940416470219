package events

import "testing"

// 测试用事件类型
type testEvent struct {
	Value int
}

type otherEvent struct {
	Name string
}

// TestPublishDeliversToSubscribers 测试事件按订阅顺序投递给所有订阅者
func TestPublishDeliversToSubscribers(t *testing.T) {
	bus := NewBus()

	var order []int
	Subscribe(bus, func(e testEvent) {
		order = append(order, 1)
		if e.Value != 42 {
			t.Errorf("handler 1 got Value %d, want 42", e.Value)
		}
	})
	Subscribe(bus, func(e testEvent) {
		order = append(order, 2)
	})

	Publish(bus, testEvent{Value: 42})

	if len(order) != 2 {
		t.Fatalf("got %d handler calls, want 2", len(order))
	}
	// 验证按订阅顺序投递
	if order[0] != 1 || order[1] != 2 {
		t.Errorf("delivery order: got %v, want [1 2]", order)
	}
}

// TestPublishOnlyMatchingType 测试只有匹配类型的订阅者收到事件
func TestPublishOnlyMatchingType(t *testing.T) {
	bus := NewBus()

	testCalls := 0
	otherCalls := 0
	Subscribe(bus, func(e testEvent) { testCalls++ })
	Subscribe(bus, func(e otherEvent) { otherCalls++ })

	Publish(bus, testEvent{Value: 1})

	if testCalls != 1 {
		t.Errorf("testEvent handler calls: got %d, want 1", testCalls)
	}
	if otherCalls != 0 {
		t.Errorf("otherEvent handler calls: got %d, want 0", otherCalls)
	}
}

// TestPublishWithoutSubscribers 测试无订阅者时发布为静默空操作
func TestPublishWithoutSubscribers(t *testing.T) {
	bus := NewBus()
	// 不应 panic
	Publish(bus, testEvent{Value: 1})
}

// TestSubscribeNilHandlerPanics 测试 nil 处理器立即 panic
func TestSubscribeNilHandlerPanics(t *testing.T) {
	bus := NewBus()
	defer func() {
		if r := recover(); r == nil {
			t.Error("Subscribe(nil) did not panic")
		}
	}()
	Subscribe[testEvent](bus, nil)
}

// TestPublishNilEventPanics 测试发布 nil 指针事件立即 panic
func TestPublishNilEventPanics(t *testing.T) {
	bus := NewBus()
	Subscribe(bus, func(e *testEvent) {})
	defer func() {
		if r := recover(); r == nil {
			t.Error("Publish(nil) did not panic")
		}
	}()
	var e *testEvent
	Publish(bus, e)
}

// TestSubscribeDuringPublish 测试发布过程中新增的订阅不收到在途事件
func TestSubscribeDuringPublish(t *testing.T) {
	bus := NewBus()

	lateCalls := 0
	Subscribe(bus, func(e testEvent) {
		Subscribe(bus, func(e testEvent) {
			lateCalls++
		})
	})

	Publish(bus, testEvent{Value: 1})
	if lateCalls != 0 {
		t.Errorf("late subscriber received in-flight event: got %d calls, want 0", lateCalls)
	}

	// 之后的发布应正常投递给新订阅者
	Publish(bus, testEvent{Value: 2})
	if lateCalls != 1 {
		t.Errorf("late subscriber calls after second publish: got %d, want 1", lateCalls)
	}
}

// TestDisposeIdempotent 测试 Dispose 幂等且释放后不再投递
func TestDisposeIdempotent(t *testing.T) {
	bus := NewBus()

	calls := 0
	sub := Subscribe(bus, func(e testEvent) { calls++ })

	Publish(bus, testEvent{})
	sub.Dispose()
	sub.Dispose() // 第二次调用应为空操作
	Publish(bus, testEvent{})

	if calls != 1 {
		t.Errorf("handler calls: got %d, want 1", calls)
	}
	if n := SubscriberCount[testEvent](bus); n != 0 {
		t.Errorf("SubscriberCount after dispose: got %d, want 0", n)
	}
}

// TestDisposeDuringDispatch 测试处理器内部取消订阅不破坏迭代
func TestDisposeDuringDispatch(t *testing.T) {
	bus := NewBus()

	var subA *Subscription
	aCalls := 0
	bCalls := 0

	subA = Subscribe(bus, func(e testEvent) {
		aCalls++
		subA.Dispose() // 在投递中释放自己
	})
	Subscribe(bus, func(e testEvent) {
		bCalls++
	})

	Publish(bus, testEvent{})
	Publish(bus, testEvent{})

	if aCalls != 1 {
		t.Errorf("disposed handler calls: got %d, want 1", aCalls)
	}
	// 后续订阅者在两次发布中都应正常收到
	if bCalls != 2 {
		t.Errorf("remaining handler calls: got %d, want 2", bCalls)
	}
}

// TestNestedPublish 测试处理器内部再次发布（嵌套发布）
func TestNestedPublish(t *testing.T) {
	bus := NewBus()

	var sequence []string
	Subscribe(bus, func(e testEvent) {
		sequence = append(sequence, "outer")
		Publish(bus, otherEvent{Name: "nested"})
	})
	Subscribe(bus, func(e otherEvent) {
		sequence = append(sequence, "inner")
	})

	Publish(bus, testEvent{})

	if len(sequence) != 2 || sequence[0] != "outer" || sequence[1] != "inner" {
		t.Errorf("nested publish sequence: got %v, want [outer inner]", sequence)
	}
}

// TestUnsubscribeViaBus 测试 Bus.Unsubscribe 等价于 Dispose
func TestUnsubscribeViaBus(t *testing.T) {
	bus := NewBus()

	calls := 0
	sub := Subscribe(bus, func(e testEvent) { calls++ })
	bus.Unsubscribe(sub)
	bus.Unsubscribe(nil) // nil 容忍

	Publish(bus, testEvent{})
	if calls != 0 {
		t.Errorf("handler calls after Unsubscribe: got %d, want 0", calls)
	}
}

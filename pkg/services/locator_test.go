package services

import "testing"

// 测试用服务类型
type fakeAudio struct {
	Volume float64
}

type fakeStorage struct {
	Path string
}

// greeter 用于验证接口类型键
type greeter interface {
	Greet() string
}

type englishGreeter struct{}

func (englishGreeter) Greet() string { return "hello" }

// TestRegisterAndResolveGlobal 测试全局服务的注册与解析
func TestRegisterAndResolveGlobal(t *testing.T) {
	l := NewLocator()
	audio := &fakeAudio{Volume: 0.5}
	RegisterGlobal(l, audio)

	got, ok := Resolve[*fakeAudio](l)
	if !ok {
		t.Fatal("Resolve returned ok=false for registered service")
	}
	if got != audio {
		t.Error("Resolve returned a different instance")
	}
}

// TestResolveUnregistered 测试未注册类型返回零值和 false
func TestResolveUnregistered(t *testing.T) {
	l := NewLocator()
	got, ok := Resolve[*fakeAudio](l)
	if ok {
		t.Error("Resolve returned ok=true for unregistered service")
	}
	if got != nil {
		t.Errorf("Resolve returned non-zero value: %v", got)
	}
}

// TestSceneShadowsGlobal 测试场景级注册遮蔽同类型的全局注册
func TestSceneShadowsGlobal(t *testing.T) {
	l := NewLocator()
	globalAudio := &fakeAudio{Volume: 0.5}
	sceneAudio := &fakeAudio{Volume: 1.0}
	RegisterGlobal(l, globalAudio)
	RegisterScene(l, sceneAudio)

	got, ok := Resolve[*fakeAudio](l)
	if !ok {
		t.Fatal("Resolve returned ok=false")
	}
	if got != sceneAudio {
		t.Error("Resolve did not prefer the scene-scoped instance")
	}
}

// TestClearSceneServices 测试场景卸载往返：
// 注册场景服务 -> 解析命中 -> 清除 -> 解析未命中，全局服务不受影响
func TestClearSceneServices(t *testing.T) {
	l := NewLocator()
	RegisterGlobal(l, &fakeAudio{Volume: 0.5})
	RegisterScene(l, &fakeStorage{Path: "/tmp/scene"})

	if _, ok := Resolve[*fakeStorage](l); !ok {
		t.Fatal("scene service not resolvable before clear")
	}
	if n := l.SceneServiceCount(); n != 1 {
		t.Errorf("SceneServiceCount: got %d, want 1", n)
	}

	l.ClearSceneServices()

	if _, ok := Resolve[*fakeStorage](l); ok {
		t.Error("scene service still resolvable after ClearSceneServices")
	}
	if _, ok := Resolve[*fakeAudio](l); !ok {
		t.Error("global service lost after ClearSceneServices")
	}
	if n := l.SceneServiceCount(); n != 0 {
		t.Errorf("SceneServiceCount after clear: got %d, want 0", n)
	}
}

// TestRegisterOverwrites 测试同类型重复注册覆盖旧实例
func TestRegisterOverwrites(t *testing.T) {
	l := NewLocator()
	RegisterGlobal(l, &fakeAudio{Volume: 0.1})
	second := &fakeAudio{Volume: 0.9}
	RegisterGlobal(l, second)

	got, _ := Resolve[*fakeAudio](l)
	if got != second {
		t.Error("second registration did not overwrite the first")
	}
}

// TestResolveInterfaceKey 测试以接口类型作为注册键
func TestResolveInterfaceKey(t *testing.T) {
	l := NewLocator()
	RegisterGlobal[greeter](l, englishGreeter{})

	got, ok := Resolve[greeter](l)
	if !ok {
		t.Fatal("interface-keyed service not resolvable")
	}
	if got.Greet() != "hello" {
		t.Errorf("Greet(): got %q, want %q", got.Greet(), "hello")
	}
}

// TestMustResolvePanics 测试 MustResolve 对缺失服务 panic
func TestMustResolvePanics(t *testing.T) {
	l := NewLocator()
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustResolve did not panic for missing service")
		}
	}()
	MustResolve[*fakeAudio](l)
}

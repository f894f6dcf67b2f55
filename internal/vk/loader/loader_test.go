//go:build (darwin || linux) && (amd64 || arm64)

package loader

import (
	"errors"
	"slices"
	"testing"

	"vkdebug/internal/messenger"
	"vkdebug/internal/vk"
)

func openOrSkip(t *testing.T) *Library {
	t.Helper()
	lib, err := Open("")
	if err != nil {
		t.Skipf("vulkan loader not available: %v", err)
	}
	t.Cleanup(func() { _ = lib.Close() })
	return lib
}

func TestAttachRejectsNullInstance(t *testing.T) {
	lib := openOrSkip(t)
	if _, err := lib.Attach(0, []string{vk.ExtDebugUtils}); !errors.Is(err, ErrNullInstance) {
		t.Fatalf("Attach(0) = %v, want ErrNullInstance", err)
	}
}

func TestAttachWithoutDebugUtils(t *testing.T) {
	lib := openOrSkip(t)
	ctx, err := lib.Attach(1, nil)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if ctx.ExtensionEnabled(vk.ExtDebugUtils) {
		t.Fatal("extension reported enabled")
	}
	if _, res := ctx.DebugUtils().CreateDebugUtilsMessenger(ctx.Handle(), &vk.DebugUtilsMessengerCreateInfo{}); res != vk.ErrorExtensionNotPresent {
		t.Fatalf("create without extension = %v", res)
	}
}

func TestOpenMissingLibrary(t *testing.T) {
	if _, err := Open("/nonexistent/libvulkan-missing.so"); err == nil {
		t.Fatal("Open succeeded for a missing library")
	}
}

func TestCreateInstanceSubscription(t *testing.T) {
	lib := openOrSkip(t)
	exts, err := lib.InstanceExtensions()
	if err != nil {
		t.Fatalf("InstanceExtensions: %v", err)
	}
	if !slices.Contains(exts, vk.ExtDebugUtils) {
		t.Skipf("%s not offered by the loader", vk.ExtDebugUtils)
	}
	inst, err := lib.CreateInstance("vkdebug-test", nil, []string{vk.ExtDebugUtils})
	if errors.Is(err, vk.ErrorIncompatibleDriver) {
		t.Skip("no driver installed")
	}
	if err != nil {
		t.Fatalf("CreateInstance: %v", err)
	}

	sub, err := messenger.New(inst, messenger.SeverityAll, messenger.CategoryAll, func(*messenger.Message) {})
	if err != nil {
		_ = inst.Destroy()
		t.Fatalf("messenger.New: %v", err)
	}
	if err := inst.Destroy(); !errors.Is(err, ErrInstanceInUse) {
		t.Fatalf("Destroy with live subscription = %v", err)
	}
	if _, err := inst.PhysicalDeviceCount(); err != nil {
		t.Errorf("PhysicalDeviceCount: %v", err)
	}
	if err := sub.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := inst.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
}

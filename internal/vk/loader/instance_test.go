//go:build (darwin || linux) && (amd64 || arm64)

package loader

import (
	"errors"
	"testing"

	"vkdebug/internal/vk"
)

func TestInstanceEntryPointsDestroysOnMissingSymbol(t *testing.T) {
	const handle = uintptr(0x1234)
	tests := []struct {
		name          string
		symbols       map[string]uintptr
		wantErr       bool
		wantDestroyed bool
	}{
		{"all resolved", map[string]uintptr{"vkDestroyInstance": 1, "vkEnumeratePhysicalDevices": 2}, false, false},
		{"enumerate missing", map[string]uintptr{"vkDestroyInstance": 1}, true, true},
		{"destroy missing", map[string]uintptr{"vkEnumeratePhysicalDevices": 2}, true, false},
		{"nothing resolved", map[string]uintptr{}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var destroyed []uintptr
			lookup := func(name string) uintptr { return tt.symbols[name] }
			destroy, enumerate, err := instanceEntryPoints(handle, lookup, func(sym, h uintptr) {
				if sym != tt.symbols["vkDestroyInstance"] {
					t.Errorf("destroy called through symbol %d", sym)
				}
				destroyed = append(destroyed, h)
			})

			if tt.wantErr {
				if !errors.Is(err, vk.ErrorInitializationFailed) {
					t.Fatalf("err = %v", err)
				}
			} else if err != nil || destroy != 1 || enumerate != 2 {
				t.Fatalf("got %d, %d, %v", destroy, enumerate, err)
			}
			if tt.wantDestroyed != (len(destroyed) == 1 && destroyed[0] == handle) || len(destroyed) > 1 {
				t.Fatalf("destroyed = %v, want destroyed %v", destroyed, tt.wantDestroyed)
			}
		})
	}
}

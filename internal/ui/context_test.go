package ui

import (
	"sync"
	"testing"
)

func TestGetViewContext_Singleton(t *testing.T) {
	if GetViewContext() != GetViewContext() {
		t.Error("GetViewContext should return the same instance")
	}
}

func TestViewContext_UpdateTerminalSize(t *testing.T) {
	ctx := GetViewContext()

	ctx.UpdateTerminalSize(120, 40)

	if ctx.TerminalWidth != 120 || ctx.TerminalHeight != 40 {
		t.Errorf("Expected 120x40, got %dx%d", ctx.TerminalWidth, ctx.TerminalHeight)
	}

	expectedContent := 40 - HeaderHeight - FooterHeight
	if ctx.ContentHeight != expectedContent {
		t.Errorf("Expected ContentHeight %d, got %d", expectedContent, ctx.ContentHeight)
	}

	expectedSidebar := 120 / SidebarWidthRatio
	if ctx.SidebarWidth != expectedSidebar {
		t.Errorf("Expected SidebarWidth %d, got %d", expectedSidebar, ctx.SidebarWidth)
	}

	if ctx.ChatWidth != 120-expectedSidebar {
		t.Errorf("Expected ChatWidth %d, got %d", 120-expectedSidebar, ctx.ChatWidth)
	}
}

func TestViewContext_Clamping(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"tiny", 5, 2, MinTerminalWidth, MinTerminalHeight},
		{"zero", 0, 0, MinTerminalWidth, MinTerminalHeight},
		{"normal", 100, 30, 100, 30},
	}

	ctx := GetViewContext()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx.UpdateTerminalSize(tt.width, tt.height)
			if ctx.TerminalWidth != tt.wantW || ctx.TerminalHeight != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", ctx.TerminalWidth, ctx.TerminalHeight, tt.wantW, tt.wantH)
			}
			if ctx.SidebarWidth < MinSidebarWidth {
				t.Errorf("SidebarWidth %d below minimum %d", ctx.SidebarWidth, MinSidebarWidth)
			}
			if ctx.SidebarWidth+ctx.ChatWidth != ctx.TerminalWidth {
				t.Errorf("panels (%d+%d) do not fill width %d", ctx.SidebarWidth, ctx.ChatWidth, ctx.TerminalWidth)
			}
		})
	}
}

func TestViewContext_InnerDimensions(t *testing.T) {
	ctx := GetViewContext()
	if got := ctx.InnerWidth(50); got != 50-BorderSize {
		t.Errorf("InnerWidth(50) = %d, want %d", got, 50-BorderSize)
	}
	if got := ctx.InnerHeight(20); got != 20-BorderSize {
		t.Errorf("InnerHeight(20) = %d, want %d", got, 20-BorderSize)
	}
}

func TestViewContext_ConcurrentUpdates(t *testing.T) {
	ctx := GetViewContext()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ctx.UpdateTerminalSize(80+n, 24+n)
		}(i)
	}
	wg.Wait()
}

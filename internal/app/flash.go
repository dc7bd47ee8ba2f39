package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/tripchat/internal/health"
	"github.com/zhubert/tripchat/internal/ui"
)

// ShowFlash puts text in the footer and schedules its dismissal
func (m *Model) ShowFlash(text string, flashType ui.FlashType) tea.Cmd {
	m.footer.SetFlash(text, flashType)
	return ui.FlashTick()
}

func (m *Model) ShowFlashError(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashError)
}

func (m *Model) ShowFlashWarning(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashWarning)
}

func (m *Model) ShowFlashInfo(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashInfo)
}

func (m *Model) ShowFlashSuccess(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashSuccess)
}

// flashHealth reports the outcome of a manual re-check
func (m *Model) flashHealth(s health.Status) tea.Cmd {
	switch s {
	case health.StatusReady:
		return m.ShowFlashSuccess("Chat service is ready")
	case health.StatusError:
		return m.ShowFlashWarning("Chat service is offline")
	}
	return nil
}

// handleFlashTick clears an expired flash, or keeps ticking while one is showing
func (m *Model) handleFlashTick() tea.Cmd {
	if m.footer.ClearIfExpired() {
		return nil
	}
	if m.footer.HasFlash() {
		return ui.FlashTick()
	}
	return nil
}

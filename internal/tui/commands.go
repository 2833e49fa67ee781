package tui

import (
	"context"
	"time"

	"github.com/theirongolddev/spendlog/internal/ledger"

	tea "github.com/charmbracelet/bubbletea"
)

// loadedMsg carries the initial record set.
type loadedMsg struct {
	state    ledger.State
	err      error
	loadTime time.Duration
}

// ledgerMsg is the result of one storage-backed command. sent is the state
// the command was dispatched with.
type ledgerMsg struct {
	op    string
	sent  ledger.State
	state ledger.State
	err   error
}

// Storage-backed operations shown in the status bar.
const (
	opAdd    = "add"
	opSave   = "save"
	opDelete = "delete"
)

func loadCmd(svc *ledger.Service, st ledger.State) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		next, err := svc.Reload(context.Background(), st)
		return loadedMsg{state: next, err: err, loadTime: time.Since(start)}
	}
}

func addCmd(svc *ledger.Service, st ledger.State) tea.Cmd {
	return func() tea.Msg {
		next, err := svc.Add(context.Background(), st)
		return ledgerMsg{op: opAdd, sent: st, state: next, err: err}
	}
}

func saveCmd(svc *ledger.Service, st ledger.State) tea.Cmd {
	return func() tea.Msg {
		next, err := svc.SaveEdit(context.Background(), st)
		return ledgerMsg{op: opSave, sent: st, state: next, err: err}
	}
}

func deleteCmd(svc *ledger.Service, st ledger.State, id int64) tea.Cmd {
	return func() tea.Msg {
		next, err := svc.Delete(context.Background(), st, id)
		return ledgerMsg{op: opDelete, sent: st, state: next, err: err}
	}
}

// Package ui contains the Bubble Tea program that hosts the terminal panel.
// The Model type focuses on message orchestration, while dedicated helpers
// own key handling, the picker overlay, rendering and backend updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses either trigger a panel binding (new, kill, switch, toggle),
//     drive the picker overlay, or are forwarded to the active terminal.
//   - Panel actions run through the internal/ui/command bus on the update
//     goroutine; the bus reports a Result message back to the model.
//
// Goroutines:
//   - Terminal reader goroutines never touch the panel. They post signals to
//     a terminal.Notifier; waitForSignal turns those into messages so that
//     exits are handled on the update goroutine.
//   - A backend.Watcher polls the settings file and the tmux user options;
//     applyBackendEvent layers them and hands the result to settings.Store,
//     whose observers propagate theme and configuration changes to the panel.
package ui

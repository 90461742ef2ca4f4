// Package ui provides the carview terminal user interface.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea program. Model is a value type; Update is the
// only place state changes and it runs on one goroutine, so nothing in the
// package locks. Every API call is a tea.Cmd that runs off that goroutine and
// reports back with a message.
//
// # Package Structure
//
//   - app.go: Model, Update/View, key dispatch, messages and commands
//   - list.go: the car list, reloads and the delete flow
//   - detail.go: the detail view of one car
//   - form.go: the create form
//   - confirm.go: the delete confirmation modal
//   - render.go: pure rendering with fallbacks for missing car fields
//   - header.go: status bar and command bar
//   - help.go, keys.go, theme.go, style_helpers.go: presentation
//
// # Regions and States
//
// Each region tracks its request through internal/state:
//
//	list    state.Load        Idle → Loading → Loaded | Failed
//	detail  state.Load        Loading → Loaded | Failed (per car id)
//	form    state.CreateForm  Idle → Validating → Invalid | Submitting → Created | Failed
//	delete  state.DeleteFlow  None → Pending(id) → Confirming → None | Pending(id)+error
//
// Results carry the sequence number of the request that produced them. A
// result for a superseded list reload or for a detail view the user already
// left is dropped. Leaving the detail view also cancels its request context.
//
// # Create Flow
//
// Submitting validates the draft locally first. Invalid drafts list every
// problem and never reach the network. A valid draft disables the submit key
// until the create request finishes; on success the form is cleared, the
// list reloads at once and the form closes after CreateCloseDelay.
//
// # Delete Flow
//
// d opens the confirmation modal for the selected car. Confirming sends one
// delete request. On success the card fades for FadeDuration and is then
// removed; an emptied list shows the empty state. On failure the modal stays
// open with the error and the car stays pending so y retries. Dismissing the
// modal always clears the pending car.
//
// # Key Bindings
//
//   - j/k, g/G, ctrl+d/u: Move through the list
//   - enter: Show details
//   - n: New car
//   - d: Delete car (y to confirm, n/esc to cancel)
//   - r: Reload the list, or retry the detail request
//   - esc: Back
//   - T: Cycle theme (saved to prefs)
//   - h/?: Help
//   - e or ctrl+c: Exit (only ctrl+c inside the form)
//
// # Usage Example
//
//	client, _ := carapi.NewClient(carapi.Options{BaseURL: cfg.APIBaseURL, APIKey: cfg.APIKey})
//	err := ui.Run(ui.Options{
//		Context:  ctx,
//		Cars:     client,
//		Logger:   logger,
//		APILabel: client.BaseURL(),
//	})
package ui

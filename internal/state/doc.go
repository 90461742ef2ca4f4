// Package state holds the interaction state of the carview UI.
//
// # Overview
//
// The Bubble Tea model owns one value of each type below and passes it
// around by value; nothing here is global and nothing needs locking, because
// Update runs on a single goroutine.
//
//   - Load: request lifecycle of one view region (Idle, Loading, Loaded,
//     Failed) plus a sequence number for dropping stale results.
//   - DeleteFlow: the car pending deletion (None, Pending(id), Confirming).
//   - CreateForm: one submission of the create form.
//
// # Stale Results
//
// Commands run off the UI goroutine and their results may arrive in any
// order. Every Load.Begin issues a new sequence number that the command
// echoes back in its message:
//
//	seq := m.list.Begin()
//	return m, fetchList(client, seq)
//
//	case listLoadedMsg:
//		if !m.list.Succeed(msg.seq) {
//			return m, nil // superseded by a newer reload
//		}
//
// Abandon bumps the sequence without issuing a request, so a panel the user
// has left ignores whatever its old request eventually returns.
//
// # Delete Flow
//
//	None ──d──▶ Pending(id) ──y──▶ Confirming ──ok──▶ None
//	              ▲    │                │
//	              │    esc              fail
//	              │    ▼                │
//	              │   None              │
//	              └─────────────────────┘  (Err set, retry possible)
//
// A new delete request replaces a pending one. While Confirming, further
// requests and confirms are refused.
//
// # Create Form
//
//	Idle ─▶ Validating ─▶ Invalid
//	                   └▶ Submitting ─▶ Created
//	                                 └▶ Failed
//
// Invalid, Created and Failed accept a new submit just like Idle, so no exit
// path can leave the submit control disabled. BeginSubmit refuses while
// Validating or Submitting; that refusal is what makes a double submit send
// exactly one create request.
package state

package state

import "github.com/five82/carview/internal/carapi"

// DeleteStage is the position of the delete flow.
type DeleteStage int

const (
	DeleteNone DeleteStage = iota
	DeletePending
	DeleteConfirming
)

func (s DeleteStage) String() string {
	switch s {
	case DeleteNone:
		return "none"
	case DeletePending:
		return "pending"
	case DeleteConfirming:
		return "confirming"
	default:
		return "unknown"
	}
}

// DeleteFlow holds the car awaiting delete confirmation. The zero value is
// DeleteNone.
//
//	None -> Pending(id) -> Confirming -> None           (deleted)
//	                                  -> Pending(id)    (failed, Err set)
//	any  -> None                                        (dismissed)
type DeleteFlow struct {
	stage DeleteStage
	id    carapi.ID
	err   error
}

// Stage returns the current stage.
func (f DeleteFlow) Stage() DeleteStage { return f.stage }

// Pending returns the car awaiting confirmation, if any. A car whose delete
// request is in flight is still reported.
func (f DeleteFlow) Pending() (carapi.ID, bool) {
	if f.stage == DeleteNone {
		return "", false
	}
	return f.id, true
}

// Confirming reports whether a delete request is in flight.
func (f DeleteFlow) Confirming() bool { return f.stage == DeleteConfirming }

// Err returns the failure of the last confirm attempt.
func (f DeleteFlow) Err() error { return f.err }

// Request marks id as pending deletion. A later request replaces an earlier
// pending one. It reports false while a delete is already in flight.
func (f *DeleteFlow) Request(id carapi.ID) bool {
	if f.stage == DeleteConfirming {
		return false
	}
	*f = DeleteFlow{stage: DeletePending, id: id}
	return true
}

// Confirm moves a pending flow to Confirming and returns the id to delete.
// A second confirm while one is in flight reports false.
func (f *DeleteFlow) Confirm() (carapi.ID, bool) {
	if f.stage != DeletePending {
		return "", false
	}
	f.stage = DeleteConfirming
	f.err = nil
	return f.id, true
}

// Succeed clears the flow when id is the car being deleted.
func (f *DeleteFlow) Succeed(id carapi.ID) bool {
	if f.stage != DeleteConfirming || f.id != id {
		return false
	}
	*f = DeleteFlow{}
	return true
}

// Fail returns the flow to Pending(id) with err so the user can retry.
func (f *DeleteFlow) Fail(id carapi.ID, err error) bool {
	if f.stage != DeleteConfirming || f.id != id {
		return false
	}
	f.stage = DeletePending
	f.err = err
	return true
}

// Dismiss clears the flow whatever its stage.
func (f *DeleteFlow) Dismiss() {
	*f = DeleteFlow{}
}

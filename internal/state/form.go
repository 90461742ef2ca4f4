package state

// FormPhase is the position of the create form.
type FormPhase int

const (
	FormIdle FormPhase = iota
	FormValidating
	FormInvalid
	FormSubmitting
	FormCreated
	FormFailed
)

func (p FormPhase) String() string {
	switch p {
	case FormIdle:
		return "idle"
	case FormValidating:
		return "validating"
	case FormInvalid:
		return "invalid"
	case FormSubmitting:
		return "submitting"
	case FormCreated:
		return "created"
	case FormFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CreateForm tracks one submission of the create form. Invalid, Created and
// Failed are resting phases: the form accepts a new submit from each of them,
// exactly as from Idle. Only Validating and Submitting block submission.
type CreateForm struct {
	phase    FormPhase
	problems []string
	err      error
}

// Phase returns the current phase.
func (f CreateForm) Phase() FormPhase { return f.phase }

// CanSubmit reports whether the submit control is enabled.
func (f CreateForm) CanSubmit() bool {
	return f.phase != FormValidating && f.phase != FormSubmitting
}

// Busy reports whether a create request is in flight.
func (f CreateForm) Busy() bool { return f.phase == FormSubmitting }

// Problems returns the validation messages of the last rejected submit.
func (f CreateForm) Problems() []string { return f.problems }

// Err returns the failure of the last submission.
func (f CreateForm) Err() error { return f.err }

// BeginSubmit starts validating a submission. It reports false, changing
// nothing, when the submit control is disabled.
func (f *CreateForm) BeginSubmit() bool {
	if !f.CanSubmit() {
		return false
	}
	*f = CreateForm{phase: FormValidating}
	return true
}

// Reject ends a submission that failed local validation.
func (f *CreateForm) Reject(problems []string) {
	if f.phase != FormValidating {
		return
	}
	f.phase = FormInvalid
	f.problems = append([]string(nil), problems...)
}

// Submit moves a validated submission to Submitting.
func (f *CreateForm) Submit() bool {
	if f.phase != FormValidating {
		return false
	}
	f.phase = FormSubmitting
	return true
}

// Created ends an in-flight submission successfully.
func (f *CreateForm) Created() bool {
	if f.phase != FormSubmitting {
		return false
	}
	*f = CreateForm{phase: FormCreated}
	return true
}

// Failed ends an in-flight submission with err. problems carries any
// field-level detail returned by the server.
func (f *CreateForm) Failed(err error, problems []string) bool {
	if f.phase != FormSubmitting {
		return false
	}
	*f = CreateForm{phase: FormFailed, err: err, problems: append([]string(nil), problems...)}
	return true
}

// Reset returns the form to Idle, dropping messages.
func (f *CreateForm) Reset() {
	*f = CreateForm{}
}

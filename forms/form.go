package forms

import (
	"context"
	"errors"
	"sync"
)

// Submitter sends a validated draft to the backend (one create or update
// call, bound when the form is constructed).
type Submitter[T any] func(ctx context.Context, draft T) error

// Form holds the mutable staging copy of a create/edit payload. Submit
// validates first and only clears on success; failures of either kind
// leave the draft and dialog untouched so errors can be surfaced in place.
type Form[T any] struct {
	mu        sync.Mutex
	draft     T
	defaults  T
	open      bool
	fieldErrs map[string]string
	submit    Submitter[T]
}

// NewForm creates a form whose drafts reset to defaults.
func NewForm[T any](defaults T, submit Submitter[T]) (*Form[T], error) {
	if submit == nil {
		return nil, errors.New("[NewForm] submitter is required")
	}
	return &Form[T]{defaults: defaults, draft: defaults, submit: submit}, nil
}

// Open starts a create dialog session with a fresh default draft.
func (f *Form[T]) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = f.defaults
	f.fieldErrs = nil
	f.open = true
}

// OpenWith starts an edit dialog session pre-filled from an existing
// record.
func (f *Form[T]) OpenWith(draft T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = draft
	f.fieldErrs = nil
	f.open = true
}

// Cancel discards the draft and closes the dialog.
func (f *Form[T]) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = f.defaults
	f.fieldErrs = nil
	f.open = false
}

// IsOpen reports whether the dialog is showing.
func (f *Form[T]) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// Draft returns the current draft value.
func (f *Form[T]) Draft() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// SetDraft replaces the draft (field edits from the UI).
func (f *Form[T]) SetDraft(draft T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = draft
}

// FieldErrors returns the messages from the last failed validation,
// keyed by wire field name.
func (f *Form[T]) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fieldErrs
}

// Validate checks the draft against its rules without submitting.
func (f *Form[T]) Validate() error {
	f.mu.Lock()
	draft := f.draft
	f.mu.Unlock()

	err := CheckStruct(draft)
	f.recordValidation(err)
	return err
}

// Submit validates, then runs the bound create/update call. The dialog
// closes and the draft resets only on success.
func (f *Form[T]) Submit(ctx context.Context) error {
	f.mu.Lock()
	draft := f.draft
	f.mu.Unlock()

	if err := CheckStruct(draft); err != nil {
		f.recordValidation(err)
		return err
	}
	f.recordValidation(nil)

	if err := f.submit(ctx, draft); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = f.defaults
	f.fieldErrs = nil
	f.open = false
	return nil
}

func (f *Form[T]) recordValidation(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		f.fieldErrs = vErr.Fields
		return
	}
	f.fieldErrs = nil
}

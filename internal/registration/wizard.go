package registration

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"negromart_seller/internal/api"
	"negromart_seller/internal/config"
	"negromart_seller/internal/logger"
	"negromart_seller/internal/models"
	"negromart_seller/internal/services/dto"
	"negromart_seller/internal/validator"
	"negromart_seller/pkg/apperrors"
)

var (
	ErrForwardJump = errors.New("registration: cannot skip ahead, use Next")
	ErrUnknownSlot = errors.New("registration: unknown file slot")
)

// Submitter posts the finished application (services.RegistrationService).
type Submitter interface {
	Submit(ctx context.Context, payload *api.Multipart) (*dto.RegistrationResponse, error)
}

type WizardOption func(*Wizard)

// WithUploadPolicy limits what SetFile accepts.
func WithUploadPolicy(p config.UploadPolicy) WizardOption {
	return func(w *Wizard) { w.uploads = p }
}

// Wizard walks StepBusiness -> StepProfile -> StepPayment -> StepReview.
// Every change is saved to the DraftStore before the call returns.
type Wizard struct {
	store     *DraftStore
	validator *validator.Validator
	submitter Submitter
	uploads   config.UploadPolicy

	// saveMu orders draft writes so storage always ends with the latest draft.
	// It is taken before mu.
	saveMu sync.Mutex

	mu          sync.Mutex
	draft       Draft
	step        Step
	errors      map[string]string
	reuploads   []string
	warningSent bool
}

func NewWizard(store *DraftStore, v *validator.Validator, submitter Submitter, opts ...WizardOption) *Wizard {
	w := &Wizard{
		store:     store,
		validator: v,
		submitter: submitter,
		step:      StepBusiness,
		errors:    map[string]string{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Resume restores a saved draft. It reports whether one was found. Files
// never survive, so slots that had one come back name-only.
func (w *Wizard) Resume(ctx context.Context) (bool, error) {
	draft, found, err := w.store.Load(ctx)
	if err != nil {
		return false, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !found {
		return false, nil
	}
	w.draft = draft
	w.step = StepBusiness
	w.errors = map[string]string{}
	w.reuploads = draft.NameOnlySlots()
	w.warningSent = false

	if len(w.reuploads) > 0 {
		logger.CtxInfo(ctx, "restored registration draft without files", "slots", w.reuploads)
	}
	return true, nil
}

// PendingReuploads lists the slots that need their file picked again.
func (w *Wizard) PendingReuploads() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.NameOnlySlots()
}

// ReuploadWarning returns the slots to warn about once per restore: the
// first call after Resume gets them, later calls get nothing.
func (w *Wizard) ReuploadWarning() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.warningSent || len(w.reuploads) == 0 {
		return nil
	}
	w.warningSent = true
	return append([]string(nil), w.reuploads...)
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Draft returns a copy of the current draft.
func (w *Wizard) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.clone()
}

// Errors returns the field errors of the last failed Next or Submit.
func (w *Wizard) Errors() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]string, len(w.errors))
	for k, v := range w.errors {
		out[k] = v
	}
	return out
}

// Update applies fn to the draft and saves it.
func (w *Wizard) Update(ctx context.Context, fn func(d *Draft)) error {
	w.saveMu.Lock()
	defer w.saveMu.Unlock()

	w.mu.Lock()
	fn(&w.draft)
	draft := w.draft.clone()
	w.mu.Unlock()

	return w.store.Save(ctx, draft)
}

// SetFile loads a file into a slot and saves the draft (name only).
func (w *Wizard) SetFile(ctx context.Context, slot, name, contentType string, data []byte) error {
	if !w.uploads.Allows(contentType, int64(len(data))) {
		return &validator.ValidationError{Errors: map[string]string{slot: "File type or size not allowed"}}
	}

	w.saveMu.Lock()
	defer w.saveMu.Unlock()

	w.mu.Lock()
	target := w.draft.Slot(slot)
	if target == nil {
		w.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownSlot, slot)
	}
	*target = models.NewFileSlot(name, contentType, data)
	delete(w.errors, slot)
	draft := w.draft.clone()
	w.mu.Unlock()

	return w.store.Save(ctx, draft)
}

// ClearFile empties a slot.
func (w *Wizard) ClearFile(ctx context.Context, slot string) error {
	w.saveMu.Lock()
	defer w.saveMu.Unlock()

	w.mu.Lock()
	target := w.draft.Slot(slot)
	if target == nil {
		w.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownSlot, slot)
	}
	*target = models.FileSlot{}
	draft := w.draft.clone()
	w.mu.Unlock()

	return w.store.Save(ctx, draft)
}

// Next validates the current step and moves forward. On failure the wizard
// stays put and Errors() holds the field messages.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step == StepReview {
		return nil
	}
	if err := validateStep(w.validator, w.step, &w.draft); err != nil {
		w.setErrors(err)
		return err
	}
	w.errors = map[string]string{}
	w.step++
	return nil
}

func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step > StepBusiness {
		w.step--
	}
	w.errors = map[string]string{}
}

// GoTo jumps back to an earlier (or the current) step.
func (w *Wizard) GoTo(step Step) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if step < StepBusiness || step > w.step {
		return ErrForwardJump
	}
	w.step = step
	w.errors = map[string]string{}
	return nil
}

// Submit validates every step and posts the application. On a validation
// failure the wizard moves to the first step with errors. The saved draft is
// cleared only when the server accepts it.
func (w *Wizard) Submit(ctx context.Context) (*dto.RegistrationResponse, error) {
	w.mu.Lock()
	if first, err := validateAll(w.validator, &w.draft); err != nil {
		w.setErrors(err)
		w.step = first
		w.mu.Unlock()
		return nil, err
	}
	payload := w.draft.Payload()
	w.mu.Unlock()

	res, err := w.submitter.Submit(ctx, payload)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.FieldErrors() != nil {
			w.mu.Lock()
			w.errors = appErr.FieldErrors()
			w.mu.Unlock()
		}
		return nil, err
	}

	w.saveMu.Lock()
	defer w.saveMu.Unlock()
	if err := w.store.Clear(ctx); err != nil {
		logger.CtxWarn(ctx, "registration accepted but draft not cleared", "error", err.Error())
	}
	w.mu.Lock()
	w.draft = Draft{}
	w.step = StepBusiness
	w.errors = map[string]string{}
	w.reuploads = nil
	w.mu.Unlock()
	return res, nil
}

func (w *Wizard) setErrors(err error) {
	var vErr *validator.ValidationError
	if errors.As(err, &vErr) {
		w.errors = vErr.Errors
		return
	}
	w.errors = map[string]string{"non_field_errors": err.Error()}
}

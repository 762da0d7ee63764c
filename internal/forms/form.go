package forms

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"zion-impact-fm/internal/model"
	"zion-impact-fm/internal/page"
)

// State is where a form is in its submit cycle.
type State int

const (
	Idle State = iota
	Submitting
	Success
	Failure
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Failure:
		return "failure"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Poster is the write side of the station API.
type Poster interface {
	PostJSON(ctx context.Context, path string, body any) error
	PostMultipart(ctx context.Context, path string, fields []model.Field, attachment *model.Attachment) error
}

// View holds a form's regions. AudioOptIn and AudioSection are only set
// for the testimony form.
type View struct {
	Form         *page.Region
	Message      *page.Region
	AudioOptIn   *page.Region
	AudioSection *page.Region
}

// ErrNoAttachment is returned when attaching a file to a form without a
// file field.
var ErrNoAttachment = errors.New("form has no file field")

var validate = validator.New()

// Form is the controller of one page form.
type Form struct {
	spec   Spec
	poster Poster
	view   View
	msg    *Message
	fields map[string]*page.Region

	mu         sync.Mutex
	state      State
	attachment *model.Attachment
}

// New binds spec to the form region in view. Every field the spec names
// must exist in the form.
func New(spec Spec, poster Poster, view View, messageTTL time.Duration) (*Form, error) {
	f := &Form{
		spec:   spec,
		poster: poster,
		view:   view,
		fields: make(map[string]*page.Region, len(spec.Fields)),
	}
	for _, fs := range spec.Fields {
		found := view.Form.Find(fmt.Sprintf("[name=%q]", fs.Name))
		if len(found) == 0 {
			return nil, fmt.Errorf("%s form: no field %q", spec.Kind, fs.Name)
		}
		f.fields[fs.Name] = found[0]
	}
	f.msg = NewMessage(view.Message, messageTTL, f.settle)
	return f, nil
}

func (f *Form) Kind() string {
	return f.spec.Kind
}

func (f *Form) Spec() Spec {
	return f.spec
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Message returns the form's status line.
func (f *Form) Message() *Message {
	return f.msg
}

// Set enters value into the named field.
func (f *Form) Set(name, value string) error {
	r, ok := f.fields[name]
	if !ok {
		return fmt.Errorf("%s form: no field %q", f.spec.Kind, name)
	}
	r.SetValue(value)
	return nil
}

// Value returns the named field's current value.
func (f *Form) Value(name string) string {
	if r, ok := f.fields[name]; ok {
		return r.Value()
	}
	return ""
}

// Attach picks a file for the form's file field. A nil attachment clears it.
func (f *Form) Attach(a *model.Attachment) error {
	if f.spec.FileField == "" {
		return ErrNoAttachment
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if a != nil {
		a.Field = f.spec.FileField
	}
	f.attachment = a
	return nil
}

// SetAudioOptIn mirrors the audio checkbox: the upload section is shown
// while it is checked.
func (f *Form) SetAudioOptIn(checked bool) error {
	if f.view.AudioOptIn == nil || f.view.AudioSection == nil {
		return fmt.Errorf("%s form has no audio section", f.spec.Kind)
	}
	f.view.AudioOptIn.SetChecked(checked)
	if checked {
		f.view.AudioSection.Show()
	} else {
		f.view.AudioSection.Hide()
	}
	return nil
}

// Snapshot captures the current field values in spec order.
func (f *Form) Snapshot() model.Submission {
	sub := model.Submission{
		Kind:      f.spec.Kind,
		Endpoint:  f.spec.Endpoint,
		Multipart: f.spec.Multipart(),
	}
	for _, fs := range f.spec.Fields {
		sub.Fields = append(sub.Fields, model.Field{Name: fs.Name, Value: f.fields[fs.Name].Value()})
	}

	f.mu.Lock()
	sub.Attachment = f.attachment
	f.mu.Unlock()
	return sub
}

// Submit validates the form and posts it. The outcome is shown in the
// message region; on success the form is reset. Submitting again while a
// message is up is allowed and restarts its timer.
func (f *Form) Submit(ctx context.Context) error {
	f.setState(Submitting)
	sub := f.Snapshot()

	if err := f.check(sub); err != nil {
		f.fail(outcomeInvalid)
		return err
	}

	var err error
	if sub.Multipart {
		err = f.poster.PostMultipart(ctx, sub.Endpoint, sub.Fields, sub.Attachment)
	} else {
		err = f.poster.PostJSON(ctx, sub.Endpoint, sub.Values())
	}
	if err != nil {
		log.Printf("forms: %s submission failed: %v", f.spec.Kind, err)
		f.fail(outcomeFailed)
		return fmt.Errorf("submitting %s: %w", f.spec.Kind, err)
	}

	f.Reset()
	f.setState(Success)
	f.msg.Show(f.spec.Success, "success")
	submissions.WithLabelValues(f.spec.Kind, outcomeOK).Inc()
	return nil
}

func (f *Form) check(sub model.Submission) error {
	values := sub.Values()
	for _, fs := range f.spec.Fields {
		if fs.Rules == "" {
			continue
		}
		if err := validate.Var(values[fs.Name], fs.Rules); err != nil {
			return fmt.Errorf("%s form: field %s: %w", f.spec.Kind, fs.Name, err)
		}
	}
	return nil
}

func (f *Form) fail(outcome string) {
	f.setState(Failure)
	f.msg.Show(f.spec.Failure, "error")
	submissions.WithLabelValues(f.spec.Kind, outcome).Inc()
}

// Reset empties every field, drops the attachment and collapses the audio
// section.
func (f *Form) Reset() {
	for _, r := range f.fields {
		r.SetValue("")
	}
	f.mu.Lock()
	f.attachment = nil
	f.mu.Unlock()

	if f.view.AudioOptIn != nil && f.view.AudioSection != nil {
		f.SetAudioOptIn(false)
	}
}

func (f *Form) setState(s State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = s
}

// settle returns a finished form to Idle once its message is gone.
func (f *Form) settle() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == Success || f.state == Failure {
		f.state = Idle
	}
}

// Package forms relays the site's four forms to the API and reports the
// outcome in each form's message region.
package forms

// Form kinds.
const (
	Testimony = "testimony"
	Booking   = "booking"
	Contact   = "contact"
	Partner   = "partner"
)

// FieldSpec names a form field and its validation rules, in
// go-playground/validator tag syntax. Empty rules accept anything.
type FieldSpec struct {
	Name  string
	Rules string
}

// Spec describes one form: where it posts, what it sends and what it says.
type Spec struct {
	Kind     string
	Endpoint string
	Fields   []FieldSpec

	// FileField is the name of the optional attachment. Forms with a file
	// field always post multipart/form-data; the rest post JSON.
	FileField string

	Success string
	Failure string
}

var specs = []Spec{
	{
		Kind:     Testimony,
		Endpoint: "/testimonies",
		Fields: []FieldSpec{
			{"name", "required"},
			{"email", "required,email"},
			{"phone", ""},
			{"content", "required"},
		},
		FileField: "audio",
		Success:   "Testimony submitted! Thank you for sharing.",
		Failure:   "Error submitting testimony. Please try again.",
	},
	{
		Kind:     Booking,
		Endpoint: "/bookings",
		Fields: []FieldSpec{
			{"name", "required"},
			{"email", "required,email"},
			{"phone", "required"},
			{"company", ""},
			{"booking_type", "required"},
			{"preferred_date", "required"},
			{"preferred_time", ""},
			{"message", ""},
		},
		FileField: "file",
		Success:   "Booking request submitted! We will contact you soon.",
		Failure:   "Error submitting booking. Please try again.",
	},
	{
		Kind:     Contact,
		Endpoint: "/contact",
		Fields: []FieldSpec{
			{"name", "required"},
			{"email", "required,email"},
			{"subject", "required"},
			{"type", ""},
			{"message", "required"},
		},
		Success: "Message sent successfully! We will reply soon.",
		Failure: "Error sending message. Please try again.",
	},
	{
		Kind:     Partner,
		Endpoint: "/partners",
		Fields: []FieldSpec{
			{"name", "required"},
			{"email", "required,email"},
			{"phone", "required"},
			{"level", "required"},
			{"message", ""},
		},
		Success: "Partnership registration submitted! We will contact you.",
		Failure: "Error submitting partnership. Please try again.",
	},
}

// Specs returns the specs of every form, in page order.
func Specs() []Spec {
	out := make([]Spec, len(specs))
	copy(out, specs)
	return out
}

// Lookup returns the spec for kind.
func Lookup(kind string) (Spec, bool) {
	for _, s := range specs {
		if s.Kind == kind {
			return s, true
		}
	}
	return Spec{}, false
}

// Multipart reports whether the form posts multipart/form-data.
func (s Spec) Multipart() bool {
	return s.FileField != ""
}

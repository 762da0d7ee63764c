package model

// Field is a single named form value. Order matters for multipart bodies.
type Field struct {
	Name  string
	Value string
}

// Attachment is a file picked in a form's file input.
type Attachment struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// Submission is a snapshot of a form taken at submit time.
type Submission struct {
	Kind       string
	Endpoint   string
	Fields     []Field
	Attachment *Attachment
	Multipart  bool
}

// Values returns the fields as a map, for JSON bodies.
func (s Submission) Values() map[string]string {
	m := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		m[f.Name] = f.Value
	}
	return m
}

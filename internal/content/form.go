package content

// FormMode is the state of a Form.
type FormMode string

const (
	FormClosed   FormMode = "closed"
	FormCreating FormMode = "creating"
	FormEditing  FormMode = "editing"
)

// Form stages the fields of a record being created or edited. It never
// holds a reference into the item store; opening a form for editing copies
// the record's fields.
type Form[F any] struct {
	Mode   FormMode `json:"mode"`
	ItemID int64    `json:"item_id,omitempty"`
	Fields F        `json:"fields"`
}

// Open reports whether the form is creating or editing.
func (f *Form[F]) Open() bool {
	return f != nil && (f.Mode == FormCreating || f.Mode == FormEditing)
}

// Close discards the staged fields.
func (f *Form[F]) Close() {
	var zero F
	f.Mode = FormClosed
	f.ItemID = 0
	f.Fields = zero
}

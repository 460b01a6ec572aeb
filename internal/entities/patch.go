package entities

// Field carries an optional patch value together with an explicit presence
// flag, so "set to the zero value" and "leave unchanged" stay distinct.
type Field[T any] struct {
	value T
	set   bool
}

// Set returns a Field that is present with the given value.
func Set[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// IsSet reports whether the field was supplied.
func (f Field[T]) IsSet() bool {
	return f.set
}

// Value returns the supplied value; meaningful only when IsSet is true.
func (f Field[T]) Value() T {
	return f.value
}

// UserPatch describes a partial update to a user. Immutable attributes
// (id, phone, createdAt) have no field here, so an attempt to change them
// cannot even be expressed.
type UserPatch struct {
	Name                 Field[string]
	Denomination         Field[string]
	PreferredTranslation Field[string]
}

// IsEmpty reports whether the patch supplies no fields at all.
func (p UserPatch) IsEmpty() bool {
	return !p.Name.IsSet() && !p.Denomination.IsSet() && !p.PreferredTranslation.IsSet()
}

// VersePatch describes a partial update to a verse. Ownership (userId) and
// timestamps are not patchable; updatedAt is refreshed by the repository on
// every update regardless of which fields are present.
type VersePatch struct {
	Book        Field[string]
	Chapter     Field[int]
	Verse       Field[int]
	Content     Field[string]
	Reference   Field[string]
	Translation Field[string]
	Notes       Field[string]
	Tags        Field[[]string]
}

// IsEmpty reports whether the patch supplies no fields at all.
func (p VersePatch) IsEmpty() bool {
	return !p.Book.IsSet() && !p.Chapter.IsSet() && !p.Verse.IsSet() &&
		!p.Content.IsSet() && !p.Reference.IsSet() && !p.Translation.IsSet() &&
		!p.Notes.IsSet() && !p.Tags.IsSet()
}

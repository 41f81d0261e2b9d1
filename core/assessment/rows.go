package assessment

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/apar/core"
)

const onlyRowNotice = "Cannot delete the only row. At least one row must remain."

var (
	ErrUnknownField = errors.New("unknown field")

	newRowID = uuid.NewString // mockable
)

// Row is implemented by the row type of every tabular section.
type Row interface {
	RowID() string
}

// TableSpec describes how a section's rows are created, edited and derived.
type TableSpec[R Row] struct {
	New func(id string) R
	// Set coerces raw and stores it in field; it reports false for fields that cannot be edited.
	Set func(r *R, field, raw string) bool
	// Derive recomputes the row's own derived fields.
	Derive func(r *R)
	// Aggregate recomputes fields that depend on the whole collection.
	Aggregate func(rows []R)

	MinRows       int
	Locked        func(index int) bool
	LockedNotice  string
	MinRowsNotice string
}

// Table is an ordered collection of rows addressed by identity.
// Derived fields are recomputed synchronously after every mutation.
type Table[R Row] struct {
	spec *TableSpec[R]
	rows []R
}

// Tabular is the section-independent view of a Table.
type Tabular interface {
	Add() string
	Update(id, field, raw string) error
	Delete(id string) error
	Len() int
	IDAt(index int) (string, bool)
}

var (
	_ Tabular = (*Table[LectureRow])(nil)
	_ Tabular = (*Table[ResultRow])(nil)
	_ Tabular = (*Table[AttendanceRow])(nil)
	_ Tabular = (*Table[ProjectRow])(nil)
)

func NewTable[R Row](spec *TableSpec[R], initialRows int) *Table[R] {
	t := &Table[R]{spec: spec, rows: make([]R, 0, initialRows)}
	for i := 0; i < initialRows; i++ {
		t.Add()
	}
	return t
}

func (t *Table[R]) Add() string {
	id := newRowID()
	r := t.spec.New(id)
	t.derive(&r)
	t.rows = append(t.rows, r)
	t.aggregate()
	return id
}

// Update replaces field of the row identified by id. An unknown id is ignored.
func (t *Table[R]) Update(id, field, raw string) error {
	i := t.index(id)
	if i < 0 {
		return nil
	}
	r := t.rows[i]
	if !t.spec.Set(&r, field, raw) {
		return unknownFieldError(field)
	}
	t.derive(&r)
	t.rows[i] = r
	t.aggregate()
	return nil
}

// Delete removes the row identified by id. An unknown id is ignored.
func (t *Table[R]) Delete(id string) error {
	i := t.index(id)
	if i < 0 {
		return nil
	}
	if t.spec.Locked != nil && t.spec.Locked(i) {
		return core.NewRefusedError(t.spec.LockedNotice)
	}
	if len(t.rows)-1 < t.spec.MinRows {
		return core.NewRefusedError(t.spec.MinRowsNotice)
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	t.aggregate()
	return nil
}

// Rows returns a copy of the rows in insertion order.
func (t *Table[R]) Rows() []R {
	rows := make([]R, len(t.rows))
	copy(rows, t.rows)
	return rows
}

func (t *Table[R]) Get(id string) (R, bool) {
	if i := t.index(id); i >= 0 {
		return t.rows[i], true
	}
	var zero R
	return zero, false
}

func (t *Table[R]) Len() int { return len(t.rows) }

func (t *Table[R]) IDAt(index int) (string, bool) {
	if index < 0 || index >= len(t.rows) {
		return "", false
	}
	return t.rows[index].RowID(), true
}

func (t *Table[R]) index(id string) int {
	for i := range t.rows {
		if t.rows[i].RowID() == id {
			return i
		}
	}
	return -1
}

func (t *Table[R]) derive(r *R) {
	if t.spec.Derive != nil {
		t.spec.Derive(r)
	}
}

func (t *Table[R]) aggregate() {
	if t.spec.Aggregate != nil {
		t.spec.Aggregate(t.rows)
	}
}

func unknownFieldError(field string) error {
	return core.NewValidationError(
		errors.Wrapf(ErrUnknownField, "%q", field),
		core.FieldError{Field: "field", Error: fmt.Sprintf("unknown field %q", field)},
	)
}

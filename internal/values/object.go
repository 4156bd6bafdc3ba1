package values

import "strings"

// Slot abstracts a single named storage cell inside an Object. It is
// implemented by internal/decl.Variable, which layers the constant-once-
// set and auto-unwrap-on-read rules on top of plain storage; internal/
// values only needs to know a slot can be read and written.
type Slot interface {
	Get() (Value, error)
	Set(Value) error
}

// ObjectField is one named slot of an Object, in declaration order.
type ObjectField struct {
	Name string
	Slot Slot
}

// Object is the ordered field→declared-variable mapping produced by an
// object literal.
type Object struct {
	TypeName string
	Fields   []ObjectField
	byName   map[string]int
}

// NewObject builds an Object from fields, in the given order.
func NewObject(typeName string, fields []ObjectField) *Object {
	o := &Object{TypeName: typeName, Fields: fields, byName: make(map[string]int, len(fields))}
	for i, f := range fields {
		o.byName[f.Name] = i
	}
	return o
}

func (*Object) Type() string { return "Object" }
func (o *Object) String() string {
	parts := make([]string, len(o.Fields))
	for i, f := range o.Fields {
		v, err := f.Slot.Get()
		if err != nil {
			parts[i] = f.Name + ": <error>"
			continue
		}
		parts[i] = f.Name + ": " + v.String()
	}
	name := o.TypeName
	if name == "" {
		name = "object"
	}
	return name + "{" + strings.Join(parts, ", ") + "}"
}
func (o *Object) IsNil() bool { return o == nil }

// Field looks up a field slot by name.
func (o *Object) Field(name string) (Slot, bool) {
	i, ok := o.byName[name]
	if !ok {
		return nil, false
	}
	return o.Fields[i].Slot, true
}

// GetField reads a field's current value.
func (o *Object) GetField(name string) (Value, error) {
	slot, ok := o.Field(name)
	if !ok {
		return nil, NewNilError("access field "+name, "Object")
	}
	return slot.Get()
}

// SetField writes a field's value.
func (o *Object) SetField(name string, v Value) error {
	slot, ok := o.Field(name)
	if !ok {
		return NewNilError("assign field "+name, "Object")
	}
	return slot.Set(v)
}

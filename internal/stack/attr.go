package stack

// keyID is the identity behind a Key. Allocated once per NewKey call, so
// keys compare by pointer identity rather than by name.
type keyID struct {
	name string
}

// Key identifies a typed attribute slot in a Bag. Two keys created with the
// same name are distinct slots; the name exists for diagnostics only.
//
// Declare keys as package-level variables next to the element that publishes
// them:
//
//	var SessionKey = stack.NewKey[ports.Session]("db.session")
type Key[T any] struct {
	id *keyID
}

// NewKey creates a new attribute key guarding values of type T.
func NewKey[T any](name string) Key[T] {
	return Key[T]{id: &keyID{name: name}}
}

// Name returns the diagnostic name the key was created with.
func (k Key[T]) Name() string {
	return k.id.name
}

// Bag is an immutable collection of request-scoped attributes. The zero
// value is an empty bag. Extension never mutates the receiver: set returns
// a copy, so a bag published to an inner element stays stable even if the
// caller keeps extending its own copy.
type Bag struct {
	values map[*keyID]any
}

// set returns a bag identical to the receiver except id now maps to v.
func (b Bag) set(id *keyID, v any) Bag {
	values := make(map[*keyID]any, len(b.values)+1)
	for k, val := range b.values {
		values[k] = val
	}

	values[id] = v

	return Bag{values: values}
}

// lookup reports the value stored for id, if any.
func (b Bag) lookup(id *keyID) (any, bool) {
	v, ok := b.values[id]
	return v, ok
}

// Len returns the number of attributes in the bag.
func (b Bag) Len() int {
	return len(b.values)
}

package constraint

// NewAny returns a constraint accepting every value, including null and
// absent.
func NewAny() *Constraint {
	c := New(Primitive(KindAny))
	c.Nullish()
	return c
}

// NewNull returns a constraint accepting exactly null.
func NewNull() *Constraint { return New(Primitive(KindNull)) }

// NewNullish returns a constraint accepting null or absent values.
func NewNullish() *Constraint { return New(Primitive(KindNullish)) }

// NewBool returns a boolean kind constraint; booleans carry no named rules.
func NewBool() *Constraint { return New(Primitive(KindBool)) }

// NewMap returns a map kind constraint. Acceptance covers the native untyped
// map shapes; structural map-like acceptance is expressed with Custom.
func NewMap() *Constraint {
	return New(Predicate("map", func(v any) bool {
		switch KindOf(v) {
		case KindMap, KindObject:
			return true
		}
		return false
	}))
}

// Custom returns a constraint whose acceptance is delegated entirely to pred,
// labelled with name in error messages. This is the escape hatch for
// duck-typed values the closed kind set cannot express.
func Custom(name string, pred func(any) bool) *Constraint {
	return New(Predicate(name, pred))
}

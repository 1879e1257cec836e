package types

type Type interface {
	String() string
	equal(Type) bool
}

// Primitive types

type PrimitiveKind int

const (
	KindInt PrimitiveKind = iota
	KindBool
	KindString
	KindVoid
	KindError
)

type Primitive struct {
	Kind PrimitiveKind
	Name string
}

func (p *Primitive) String() string { return p.Name }

func (p *Primitive) equal(other Type) bool {
	// Error is a sentinel: it compares unequal to everything, itself
	// included, so a faulted operand can never satisfy a later rule.
	if p.Kind == KindError {
		return false
	}
	o, ok := other.(*Primitive)
	if !ok {
		return false
	}
	if o.Kind == KindError {
		return false
	}
	return p.Kind == o.Kind
}

var (
	Int    = &Primitive{Kind: KindInt, Name: "Int"}
	Bool   = &Primitive{Kind: KindBool, Name: "Bool"}
	String = &Primitive{Kind: KindString, Name: "String"}
	Void   = &Primitive{Kind: KindVoid, Name: "Void"}
	Error  = &Primitive{Kind: KindError, Name: "Error"}
)

// IsError identifies the sentinel. Equal cannot be used for this since
// Error equals nothing.
func IsError(t Type) bool {
	if p, ok := t.(*Primitive); ok {
		return p.Kind == KindError
	}
	return false
}

func IsVoid(t Type) bool {
	if p, ok := t.(*Primitive); ok {
		return p.Kind == KindVoid
	}
	return false
}

// FromName maps a source-level type name to a primitive usable as a
// variable or parameter type. Void and unrecognized names yield false.
func FromName(name string) (*Primitive, bool) {
	switch name {
	case "Int":
		return Int, true
	case "Bool":
		return Bool, true
	case "String":
		return String, true
	default:
		return nil, false
	}
}

// Functions

// Func - function type: ordered parameter types plus a return type.
type Func struct {
	ParamTypes []Type
	Result     Type
}

func (f *Func) String() string {
	s := "("
	for i, pt := range f.ParamTypes {
		if i > 0 {
			s += ", "
		}
		s += pt.String()
	}
	s += ") -> "
	if f.Result != nil {
		s += f.Result.String()
	} else {
		s += "Void"
	}
	return s
}

func (f *Func) equal(other Type) bool {
	o, ok := other.(*Func)
	if !ok {
		return false
	}
	if len(f.ParamTypes) != len(o.ParamTypes) {
		return false
	}
	for i, pt := range f.ParamTypes {
		if !pt.equal(o.ParamTypes[i]) {
			return false
		}
	}
	if f.Result == nil || o.Result == nil {
		return f.Result == o.Result
	}
	return f.Result.equal(o.Result)
}

// Equal - public function for type checking
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.equal(b)
}

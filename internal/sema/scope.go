package sema

import "nimble/internal/types"

// Symbol is a declared name within one scope.
type Symbol struct {
	Name    string
	Type    types.Type
	IsParam bool
	Index   int // declaration order within the owning scope
}

// Scope is one node of the lexical scope tree: the global scope, the
// $main entry block, or a function body. Children are owned by their
// parent's child map; the enclosing link is a plain back-reference.
type Scope struct {
	Name       string
	ReturnType types.Type // declared return type; nil for the global scope

	enclosing *Scope
	symbols   map[string]*Symbol
	order     []*Symbol
	children  map[string]*Scope
}

// EntryScopeName names the scope for the script's trailing statements.
const EntryScopeName = "$main"

func NewGlobalScope() *Scope {
	return &Scope{
		Name:     "$global",
		symbols:  make(map[string]*Symbol),
		children: make(map[string]*Scope),
	}
}

// CreateChild creates and links a child scope. When a sibling already
// uses the name, the existing child is returned with ok=false so both
// passes keep re-entering the same scope for that name.
func (s *Scope) CreateChild(name string, returnType types.Type) (child *Scope, ok bool) {
	if existing, exists := s.children[name]; exists {
		return existing, false
	}
	child = &Scope{
		Name:       name,
		ReturnType: returnType,
		enclosing:  s,
		symbols:    make(map[string]*Symbol),
		children:   make(map[string]*Scope),
	}
	s.children[name] = child
	return child, true
}

// Define adds a symbol to this scope's local map. Callers pre-check for
// duplicates with ResolveLocally; a second Define for the same name is
// ignored so the original symbol's type is retained.
func (s *Scope) Define(name string, typ types.Type, isParam bool) *Symbol {
	if existing, exists := s.symbols[name]; exists {
		return existing
	}
	sym := &Symbol{
		Name:    name,
		Type:    typ,
		IsParam: isParam,
		Index:   len(s.order),
	}
	s.symbols[name] = sym
	s.order = append(s.order, sym)
	return sym
}

// ResolveLocally looks a name up in this scope only, without walking
// enclosing scopes.
func (s *Scope) ResolveLocally(name string) *Symbol {
	return s.symbols[name]
}

// Resolve walks from this scope through the enclosing links to global,
// returning the first match.
func (s *Scope) Resolve(name string) *Symbol {
	for sc := s; sc != nil; sc = sc.enclosing {
		if sym, exists := sc.symbols[name]; exists {
			return sym
		}
	}
	return nil
}

// Child returns the child scope with the given name, or nil.
func (s *Scope) Child(name string) *Scope {
	return s.children[name]
}

func (s *Scope) Enclosing() *Scope {
	return s.enclosing
}

// Symbols returns this scope's symbols in declaration order.
func (s *Scope) Symbols() []*Symbol {
	return s.order
}

// ChildNames returns the names of this scope's children in no
// particular order.
func (s *Scope) ChildNames() []string {
	names := make([]string, 0, len(s.children))
	for name := range s.children {
		names = append(names, name)
	}
	return names
}

// Parameters returns the parameter symbols of this scope in declaration
// order.
func (s *Scope) Parameters() []*Symbol {
	var params []*Symbol
	for _, sym := range s.order {
		if sym.IsParam {
			params = append(params, sym)
		}
	}
	return params
}

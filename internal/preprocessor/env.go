package preprocessor

// Macro is a single macro definition. Params is nil for an object-like
// macro; IsFunction distinguishes a function-like macro with zero
// parameters (`#define M() body`) from an object-like one, since both
// have an empty Params slice.
type Macro struct {
	Name       string
	Body       string
	Params     []string
	IsFunction bool
}

// Env is the read side of an ordered macro environment. Environment
// implements it directly; Without returns a lightweight shadowing view
// used to suppress self-reference during a macro's own expansion
// without copying the whole table on every recursive call.
type Env interface {
	Has(name string) bool
	Get(name string) (*Macro, bool)
	Names() []string
	Without(name string) Env
}

// Environment is the ordered mapping of macro name to definition. Order
// matters: the expander iterates macros in the order they were defined,
// so a plain Go map cannot serve as the sole backing store.
type Environment struct {
	order []string
	table map[string]*Macro
}

// NewEnvironment returns an empty environment.
func NewEnvironment() *Environment {
	return &Environment{table: make(map[string]*Macro)}
}

// Define records or overwrites a macro. A redefinition keeps its
// original position in the iteration order.
func (e *Environment) Define(name string, m *Macro) {
	if _, exists := e.table[name]; !exists {
		e.order = append(e.order, name)
	}
	copied := *m
	copied.Name = name
	e.table[name] = &copied
}

// Undef removes a macro, if present.
func (e *Environment) Undef(name string) {
	if _, exists := e.table[name]; !exists {
		return
	}
	delete(e.table, name)
	for i, n := range e.order {
		if n == name {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

func (e *Environment) Has(name string) bool {
	_, ok := e.table[name]
	return ok
}

func (e *Environment) Get(name string) (*Macro, bool) {
	m, ok := e.table[name]
	return m, ok
}

// Names returns macro names in definition order.
func (e *Environment) Names() []string {
	return e.order
}

// Without returns a view of the environment with name hidden from Has,
// Get, and Names, without disturbing the underlying table.
func (e *Environment) Without(name string) Env {
	return &shadowedEnv{base: e, hidden: name}
}

type shadowedEnv struct {
	base   Env
	hidden string
}

func (s *shadowedEnv) Has(name string) bool {
	if name == s.hidden {
		return false
	}
	return s.base.Has(name)
}

func (s *shadowedEnv) Get(name string) (*Macro, bool) {
	if name == s.hidden {
		return nil, false
	}
	return s.base.Get(name)
}

func (s *shadowedEnv) Names() []string {
	base := s.base.Names()
	out := make([]string, 0, len(base))
	for _, n := range base {
		if n != s.hidden {
			out = append(out, n)
		}
	}
	return out
}

func (s *shadowedEnv) Without(name string) Env {
	return &shadowedEnv{base: s, hidden: name}
}

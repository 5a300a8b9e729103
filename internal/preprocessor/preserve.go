package preprocessor

// PreservePolicy controls which directive node types survive into the
// walker's output instead of being consumed. A zero-value PreservePolicy
// preserves nothing: every recognized directive is removed once it has
// taken effect.
type PreservePolicy struct {
	Define          bool
	DefineArguments bool
	Undef           bool
	Conditional     bool
	Error           bool
	Pragma          bool
	Version         bool
	Extension       bool
	Line            bool
}

// keep reports whether policy preserves a node of the given type in the
// output alongside applying its effect.
func (p PreservePolicy) keep(node Node) bool {
	switch node.(type) {
	case *Define:
		return p.Define
	case *DefineArguments:
		return p.DefineArguments
	case *Undef:
		return p.Undef
	case *Conditional:
		return p.Conditional
	case *ErrorDirective:
		return p.Error
	case *Pragma:
		return p.Pragma
	case *Version:
		return p.Version
	case *Extension:
		return p.Extension
	case *Line:
		return p.Line
	default:
		return false
	}
}

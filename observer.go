package skema

// Observer is notified of every result produced by an observed validator.
// target names what was validated, for example "body" or "header:x-id".
type Observer interface {
	ObserveResult(target string, kind Kind)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(target string, kind Kind)

func (f ObserverFunc) ObserveResult(target string, kind Kind) { f(target, kind) }

// Observe wraps v so that o sees the kind of each result. A nil o returns v
// unchanged.
func Observe[In, Out any](v DataValidator[In, Out], target string, o Observer) DataValidator[In, Out] {
	if o == nil {
		return v
	}
	return func(input In) ValidationResult[Out] {
		r := v(input)
		o.ObserveResult(target, r.Kind)
		return r
	}
}

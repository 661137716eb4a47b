package effect

// Instance exposes Effect[any] through the generic capability interfaces of
// package algebra, with error as the raised type.
type Instance struct {
	engine Engine
}

// NewInstance returns the capability instance for engine.
func NewInstance(engine Engine) Instance {
	return Instance{engine: engine}
}

// Erase forgets the value type of fa.
func Erase[A any](fa Effect[A]) Effect[any] {
	return Map(fa, func(a A) any { return a })
}

func (i Instance) Pure(a any) Effect[any] {
	return Pure(i.engine, a)
}

func (i Instance) Map(m Effect[any], f func(any) any) Effect[any] {
	return Map(m, f)
}

func (i Instance) FlatMap(m Effect[any], f func(any) Effect[any]) Effect[any] {
	return FlatMap(m, f)
}

// TailRecM loops while step yields a continuing Step[any, any].
func (i Instance) TailRecM(seed any, step func(any) Effect[any]) Effect[any] {
	return TailRecM(i.engine, seed, func(s any) Effect[Step[any, any]] {
		return Map(step(s), func(v any) Step[any, any] { return v.(Step[any, any]) })
	})
}

func (i Instance) RaiseError(err error) Effect[any] {
	return Fail[any](i.engine, err)
}

func (i Instance) HandleErrorWith(m Effect[any], h func(error) Effect[any]) Effect[any] {
	return HandleErrorWith(m, h)
}

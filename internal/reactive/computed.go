package reactive

// Computed is a named expression over explicit inputs. Every notification
// from a tracked input re-evaluates the expression and pushes the result to
// its sink, whether or not the value changed.
type Computed[T any] struct {
	name  string
	eval  func() T
	sink  func(T)
	deps  []Subscription
	value T
	runs  int
}

// NewComputed creates an expression. It does not evaluate until Recompute
// or one of its inputs fires.
func NewComputed[T any](name string, eval func() T, sink func(T)) *Computed[T] {
	return &Computed[T]{name: name, eval: eval, sink: sink}
}

// Name returns the expression name.
func (c *Computed[T]) Name() string {
	return c.name
}

// Track adds inputs. Nil notifiers are ignored so optional collaborators
// can be passed through without checks at the call site.
func (c *Computed[T]) Track(inputs ...Notifier) {
	for _, in := range inputs {
		if in == nil {
			continue
		}
		c.deps = append(c.deps, in.Notify(c.Recompute))
	}
}

// Retrack drops every tracked input and tracks the given ones instead.
func (c *Computed[T]) Retrack(inputs ...Notifier) {
	c.Untrack()
	c.Track(inputs...)
}

// Untrack disconnects every input.
func (c *Computed[T]) Untrack() {
	for i := range c.deps {
		c.deps[i].Disconnect()
	}
	c.deps = nil
}

// Recompute evaluates the expression and pushes the result.
func (c *Computed[T]) Recompute() {
	c.value = c.eval()
	c.runs++
	if c.sink != nil {
		c.sink(c.value)
	}
}

// Value returns the last computed value.
func (c *Computed[T]) Value() T {
	return c.value
}

// Runs returns how many times the expression has been evaluated.
func (c *Computed[T]) Runs() int {
	return c.runs
}

// Inputs returns the number of tracked inputs.
func (c *Computed[T]) Inputs() int {
	return len(c.deps)
}

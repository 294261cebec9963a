package valuation

// Option configures Normalize.
type Option func(*Options)

// Options holds the subset selection applied by Normalize.
//
// A nil slice means "all labels in canonical order"; a non-nil slice is an
// exact ordered subset, even when empty.
type Options struct {
	Agents []string
	Items  []string
}

// DefaultOptions returns Options that keep every agent and item.
func DefaultOptions() Options { return Options{} }

// WithAgents restricts the model to the given agents, in this order.
func WithAgents(labels ...string) Option {
	return func(o *Options) {
		o.Agents = append([]string{}, labels...)
	}
}

// WithItems restricts the model to the given items, in this order.
func WithItems(labels ...string) Option {
	return func(o *Options) {
		o.Items = append([]string{}, labels...)
	}
}

// Normalize converts any accepted input shape into a Model.
//
// Steps:
//  1. Dispatch on the input variant and build the full model in the
//     variant's canonical order (strict: every agent must value every item).
//  2. If a subset option was given, Restrict to it, keeping caller order.
//
// Errors:
//   - *ShapeError        — non-rectangular input, duplicates, NaN/Inf.
//   - *UnknownLabelError — a subset label does not exist.
func Normalize(in Input, opts ...Option) (*Model, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if in == nil {
		return nil, &ShapeError{Reason: "nil input"}
	}

	m, err := in.model()
	if err != nil {
		return nil, err
	}
	if o.Agents == nil && o.Items == nil {
		return m, nil
	}

	return m.Restrict(o.Agents, o.Items)
}

// Ordered is an input that carries an explicit agent and item order, as
// produced by Decode. For positional item shapes Items is nil and items keep
// their positional labels.
type Ordered struct {
	Input  Input
	Agents []string
	Items  []string
}

// Shape reports the shape of the wrapped input.
// A nil *Ordered reports ShapePositionalMatrix, the shape of an empty
// document.
func (o *Ordered) Shape() Shape {
	if o == nil || o.Input == nil {
		return ShapePositionalMatrix
	}

	return o.Input.Shape()
}

func (o *Ordered) model() (*Model, error) {
	if o == nil {
		return nil, &ShapeError{Reason: "nil input"}
	}
	switch in := o.Input.(type) {
	case NestedMapping:
		agents := o.Agents
		if agents == nil {
			agents = sortedKeys(in)
		}
		if len(agents) != len(in) {
			return nil, &ShapeError{Reason: "agent order does not cover the input"}
		}
		return in.ordered(agents, o.Items)
	case LabeledVectors:
		agents := o.Agents
		if agents == nil {
			agents = sortedKeys(in)
		}
		if len(agents) != len(in) {
			return nil, &ShapeError{Reason: "agent order does not cover the input"}
		}
		return in.ordered(agents)
	case nil:
		return nil, &ShapeError{Reason: "nil input"}
	default:
		return in.model()
	}
}

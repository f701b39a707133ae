package anim

// Input is a named, typed value that drives a state machine.
type Input struct {
	name  string
	kind  InputKind
	value float64
}

// Name returns the input name as declared in the document.
func (in *Input) Name() string { return in.name }

// Kind returns the input's value type.
func (in *Input) Kind() InputKind { return in.kind }

// AsNumber returns a numeric view of the input, or false if it is not a number input.
func (in *Input) AsNumber() (*NumberInput, bool) {
	if in.kind != InputNumber {
		return nil, false
	}
	return &NumberInput{input: in}, true
}

// AsBoolean returns a boolean view of the input, or false if it is not a boolean input.
func (in *Input) AsBoolean() (*BooleanInput, bool) {
	if in.kind != InputBoolean {
		return nil, false
	}
	return &BooleanInput{input: in}, true
}

// NumberInput is a number-typed state machine input.
type NumberInput struct {
	input *Input
}

func (n *NumberInput) Name() string       { return n.input.name }
func (n *NumberInput) Value() float64     { return n.input.value }
func (n *NumberInput) SetValue(v float64) { n.input.value = v }

// BooleanInput is a boolean-typed state machine input.
type BooleanInput struct {
	input *Input
}

func (b *BooleanInput) Name() string { return b.input.name }
func (b *BooleanInput) Value() bool  { return b.input.value != 0 }

func (b *BooleanInput) SetValue(v bool) {
	if v {
		b.input.value = 1
	} else {
		b.input.value = 0
	}
}

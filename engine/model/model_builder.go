package model

// ModelBuilderOption is a functional option for configuring a Model.
type ModelBuilderOption func(*base)

// WithName sets the model's name.
//
// Parameters:
//   - name: the name
//
// Returns:
//   - ModelBuilderOption: functional option to set the name
func WithName(name string) ModelBuilderOption {
	return func(b *base) {
		b.name = name
	}
}

package config

// Validator is implemented by settings types that check their own constraints after loading.
type Validator interface {
	Validate() error
}

var _ Validator = (*Config)(nil)

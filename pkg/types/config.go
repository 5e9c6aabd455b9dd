package types

import "errors"

// Defaults applied when neither config.yaml nor a flag sets a value.
const (
	DefaultDictionary  = "/usr/share/dict/words"
	DefaultIterations  = 1
	DefaultMaxAttempts = 250000
)

// Config holds the parameters of a generate run.
type Config struct {
	Dictionary  string `json:"dictionary" yaml:"dictionary" mapstructure:"dictionary"`
	Iterations  int    `json:"iterations" yaml:"iterations" mapstructure:"iterations"`
	MaxAttempts int    `json:"max_attempts" yaml:"max_attempts" mapstructure:"max_attempts"`
	Seed        uint64 `json:"seed,omitempty" yaml:"seed,omitempty" mapstructure:"seed"`
	Record      bool   `json:"record" yaml:"record" mapstructure:"record"`
	DataDir     string `json:"data_dir,omitempty" yaml:"data_dir,omitempty" mapstructure:"data_dir"`
}

// Config validation errors.
var (
	ErrDictionaryEmpty    = errors.New("dictionary path must not be empty")
	ErrIterationsInvalid  = errors.New("iterations must be positive")
	ErrMaxAttemptsInvalid = errors.New("max attempts must not be negative")
)

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() Config {
	return Config{
		Dictionary:  DefaultDictionary,
		Iterations:  DefaultIterations,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Dictionary == "" {
		return ErrDictionaryEmpty
	}
	if c.Iterations < 1 {
		return ErrIterationsInvalid
	}
	if c.MaxAttempts < 0 {
		return ErrMaxAttemptsInvalid
	}
	return nil
}

package problemgen

// Config controls code generation and question writing.
type Config struct {
	// Validators is the ordered list of checks run on every program.
	Validators []Validator

	// CodeMaxTokens is the token budget for a program.
	CodeMaxTokens int

	// CodeTemperature is higher than QuestionTemperature so programs vary
	// between attempts.
	CodeTemperature float64

	// QuestionMaxTokens is the token budget for question wording.
	QuestionMaxTokens int

	QuestionTemperature float64

	// MaxPriorCode is the number of earlier programs quoted in the prompt.
	MaxPriorCode int

	// MaxFeedback is the number of earlier validation failures quoted in
	// the prompt.
	MaxFeedback int
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators:          DefaultValidators(),
		CodeMaxTokens:       500,
		CodeTemperature:     0.8,
		QuestionMaxTokens:   500,
		QuestionTemperature: 0.7,
		MaxPriorCode:        5,
		MaxFeedback:         5,
	}
}

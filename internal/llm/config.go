// Package llm wraps the external model provider behind a small client
// interface so handlers can be tested with a substitute gateway.
package llm

// ModelTier selects how much model capability a generation request needs.
type ModelTier string

const (
	// TierLite covers simple list generation (responsibilities, skills).
	TierLite ModelTier = "lite"
	// TierStandard covers single structured objects (new entries).
	TierStandard ModelTier = "standard"
	// TierAdvanced covers whole-document generation and tailoring.
	TierAdvanced ModelTier = "advanced"
)

// Config maps model tiers onto provider model names.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini tier mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a tier, falling back standard -> lite.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

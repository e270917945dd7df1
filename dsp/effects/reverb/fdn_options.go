package reverb

// FDNOption configures an FDN at construction time.
type FDNOption func(*fdnConfig)

type fdnConfig struct {
	feedbackGain float64
	maxFrameSize int
}

func defaultFDNConfig() fdnConfig {
	return fdnConfig{feedbackGain: defaultFDNFeedbackGain}
}

// WithFeedbackGain sets the scalar applied to the mixing matrix. The loop
// stays contractive only while |g|*sqrt(2) < 1; NewFDN rejects other values.
func WithFeedbackGain(g float64) FDNOption {
	return func(cfg *fdnConfig) {
		cfg.feedbackGain = g
	}
}

// WithMaxFrameSize reserves capacity for blocks up to n samples so that
// UpdateFrameSize never allocates for sizes within that bound.
func WithMaxFrameSize(n int) FDNOption {
	return func(cfg *fdnConfig) {
		if n > 0 {
			cfg.maxFrameSize = n
		}
	}
}

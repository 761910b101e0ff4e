package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# HomeQuote configuration
version: "1.0"

api:
  # Root URL of the price estimation service
  base_url: "http://127.0.0.1:5000"
  # GET endpoint returning {"locations": [...]}
  locations_path: "/get-location-names"
  # POST endpoint (form-encoded location, bhk, bath, sqft) returning {"estimated_price": N}
  estimate_path: "/get-estimated-price"
  # Per-request timeout
  timeout: 30s

output:
  # Format for the estimate and locations commands: text, json, markdown
  default_format: "text"
  # auto, always, never
  color_mode: "auto"
  verbose: false
  # default, high-contrast, minimal
  theme: "default"
  # Symbol printed before prices
  currency: "₹"
  # Where log lines go while the interactive form is open (empty discards them)
  log_file: ""
`
}

// MinimalSampleConfig returns a configuration with only the essentials
func MinimalSampleConfig() string {
	return `version: "1.0"
api:
  base_url: "http://127.0.0.1:5000"
output:
  default_format: "text"
`
}

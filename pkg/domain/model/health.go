package model

// LLMHealth reports the configuration state of the upstream model client
type LLMHealth struct {
	Configured bool   `json:"configured"`
	Model      string `json:"model"`
}

package models

type RephraseResult struct {
	Original  string      `json:"original"`
	Rephrased string      `json:"rephrased"`
	Type      VerdictType `json:"type"`
}

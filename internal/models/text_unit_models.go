package models

// TextUnit is a single span of page text handed to the pipeline by a
// collaborator (content script, batch scanner). The ID is an opaque handle
// the collaborator uses to map a verdict back onto the page; the pipeline
// never interprets it.
type TextUnit struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	URL    string `json:"url,omitempty"`
	Domain string `json:"domain,omitempty"`
}

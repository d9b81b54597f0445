// Package discover produces the structural facts the generation pipeline
// consumes: page structure from a headless browser, and API endpoints from
// captured network traffic. The core pipeline only reads these types; it
// never drives the browser itself.
package discover

// PageInfo is the discovered structure of one page.
type PageInfo struct {
	Title   string   `json:"title"`
	URL     string   `json:"url"`
	Forms   []Form   `json:"forms"`
	Buttons []Button `json:"buttons"`
	Links   []Link   `json:"links"`
	Inputs  []Input  `json:"inputs"`
}

// Form is one form element with its inputs.
type Form struct {
	Selector string  `json:"selector"`
	Action   string  `json:"action,omitempty"`
	Method   string  `json:"method,omitempty"`
	Inputs   []Input `json:"inputs"`
}

// Input is one input/textarea/select element.
type Input struct {
	Selector    string `json:"selector"`
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	Required    bool   `json:"required,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
}

// Button is one clickable button element.
type Button struct {
	Selector string `json:"selector"`
	Text     string `json:"text,omitempty"`
	Type     string `json:"type,omitempty"`
}

// Link is one anchor element.
type Link struct {
	Selector string `json:"selector"`
	Text     string `json:"text,omitempty"`
	Href     string `json:"href,omitempty"`
}

// Endpoint is one API endpoint observed in network traffic.
type Endpoint struct {
	Method   string            `json:"method"`
	URL      string            `json:"url"`
	Headers  map[string]string `json:"headers,omitempty"`
	Body     string            `json:"body,omitempty"`
	Response string            `json:"response,omitempty"`
	Status   int               `json:"status,omitempty"`
}

// TextInputs returns the free-text inputs of a form (text, email, password,
// search, tel, url), the ones worth probing with boundary and injection
// payloads.
func TextInputs(f Form) []Input {
	var out []Input
	for _, in := range f.Inputs {
		switch in.Type {
		case "text", "email", "password", "search", "tel", "url", "":
			out = append(out, in)
		}
	}
	return out
}

// RequiredInputs returns the inputs marked required.
func RequiredInputs(f Form) []Input {
	var out []Input
	for _, in := range f.Inputs {
		if in.Required {
			out = append(out, in)
		}
	}
	return out
}

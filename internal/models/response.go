package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Errors  []string    `json:"errors,omitempty"`
	Fields  interface{} `json:"fields,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func ErrorStrings(errors []error) []string {
	out := make([]string, 0, len(errors))
	for _, err := range errors {
		out = append(out, err.Error())
	}
	return out
}

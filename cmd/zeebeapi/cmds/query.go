package cmds

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/jmespath/go-jmespath"
)

// Query returns the value selected by the JMESPath expression from v as its JSON form.
// It returns nil and no error if the expression does not match anything.
func Query(expression string, v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	if expression == "" {
		return doc, nil
	}
	out, err := jmespath.Search(expression, doc)
	if err != nil {
		return nil, fmt.Errorf("jmespath: %w", err)
	}
	return out, nil
}

// PrintJSON writes v, filtered by expression when it is not empty, as indented JSON.
// Selected strings are printed bare.
func PrintJSON(w io.Writer, v any, expression string) error {
	out, err := Query(expression, v)
	if err != nil {
		return err
	}
	if s, ok := out.(string); ok && expression != "" {
		_, err = fmt.Fprintln(w, s)
		return err
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

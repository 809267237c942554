package mock

import "github.com/fwojciec/eventscout"

var _ eventscout.Converter = (*Converter)(nil)

// Converter is a mock implementation of eventscout.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

package mock

import "github.com/fwojciec/eventscout"

var _ eventscout.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of eventscout.Normalizer.
type Normalizer struct {
	NormalizeFn func(html string) (string, error)
}

func (n *Normalizer) Normalize(html string) (string, error) {
	return n.NormalizeFn(html)
}

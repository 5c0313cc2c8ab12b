package mock

import "github.com/fwojciec/htmlmeta"

var _ htmlmeta.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of htmlmeta.Extractor.
type Extractor struct {
	ExtractFn func(in htmlmeta.Input) htmlmeta.Meta
}

func (e *Extractor) Extract(in htmlmeta.Input) htmlmeta.Meta {
	return e.ExtractFn(in)
}

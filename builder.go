package lingua

import (
	"github.com/cmsdko/lingua/internal/features"
	"github.com/cmsdko/lingua/internal/metric"
)

// builder appends to a record and keeps the first error, so the extraction
// steps read as a flat list of keys.
type builder struct {
	rec *metric.Record
	err error
}

func newBuilder() *builder { return &builder{rec: metric.NewRecord()} }

func (b *builder) set(key string, v metric.Value) {
	if b.err != nil {
		return
	}
	b.err = b.rec.Set(key, v)
}

func (b *builder) int(key string, n int)       { b.set(key, metric.Int(n)) }
func (b *builder) float(key string, f float64) { b.set(key, metric.Float(f)) }
func (b *builder) text(key, s string)          { b.set(key, metric.Text(s)) }

func (b *builder) count(abs, rel string, c features.Count) {
	b.int(abs, c.Absolute)
	b.set(rel, c.Relative)
}

func (b *builder) fields(fs []features.Field) {
	for _, f := range fs {
		b.set(f.Key, f.Value)
	}
}

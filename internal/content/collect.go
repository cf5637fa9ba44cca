package content

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/syeo66/ochsenbein.red-2023/internal/schema"
)

// ResolverFactory returns the image resolver for content files in dir.
type ResolverFactory interface {
	For(dir string) schema.ImageResolver
}

// Validated pairs an entry with its typed record.
type Validated struct {
	Entry  Entry
	Record *schema.Record
}

// Failure is an entry that did not pass validation.
type Failure struct {
	Entry Entry
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Entry.Path, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Report is the outcome of collecting one or more collections.
type Report struct {
	Valid    []Validated
	Failures []Failure
}

// ByCollection returns the valid records of one collection, in load order.
func (r *Report) ByCollection(name string) []Validated {
	var out []Validated
	for _, v := range r.Valid {
		if v.Entry.Collection == name {
			out = append(out, v)
		}
	}
	return out
}

// Collector validates loaded entries. In strict mode the first invalid entry
// aborts collection; otherwise invalid entries are logged and skipped.
type Collector struct {
	Registry  *schema.Registry
	Resolvers ResolverFactory
	Strict    bool
	Logger    logrus.FieldLogger
}

// Collect validates entries once each, in order.
func (c *Collector) Collect(entries []Entry) (*Report, error) {
	report := &Report{}
	for _, entry := range entries {
		reg := c.Registry
		if c.Resolvers != nil {
			reg = reg.WithResolver(c.Resolvers.For(entry.Dir))
		}

		rec, err := reg.Validate(entry.Collection, entry.Raw)
		if err != nil {
			failure := Failure{Entry: entry, Err: err}
			if c.Strict {
				return nil, failure
			}
			c.logger().WithFields(logrus.Fields{
				"file":       entry.Path,
				"collection": entry.Collection,
				"field":      schema.FieldOf(err),
			}).WithError(err).Warn("Skipping invalid entry")
			report.Failures = append(report.Failures, failure)
			continue
		}
		report.Valid = append(report.Valid, Validated{Entry: entry, Record: rec})
	}
	return report, nil
}

// LoadAll loads and validates every collection of the registry.
func LoadAll(l *Loader, c *Collector) (*Report, error) {
	var entries []Entry
	for _, name := range c.Registry.Collections() {
		s, _ := c.Registry.Schema(name)
		loaded, err := l.Load(s)
		if err != nil {
			return nil, err
		}
		entries = append(entries, loaded...)
	}
	return c.Collect(entries)
}

func (c *Collector) logger() logrus.FieldLogger {
	if c.Logger == nil {
		return logrus.StandardLogger()
	}
	return c.Logger
}

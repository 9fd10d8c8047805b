// Package records implements the operator-facing content operations on
// top of a cms.Client. Each operation prints confirmation lines to its
// output as it goes.
package records

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"episolve/apperr"
	"episolve/cms"
	"episolve/content"
)

type Operations struct {
	client   cms.Client
	gen      *content.Generator
	out      io.Writer
	log      *zap.Logger
	now      func() time.Time
	mediaDir string
	mediaURL string
}

type Option func(*Operations)

func WithOutput(w io.Writer) Option {
	return func(o *Operations) { o.out = w }
}

func WithClock(now func() time.Time) Option {
	return func(o *Operations) { o.now = now }
}

// WithMedia sets where uploaded files are copied and the URL prefix they
// are served under.
func WithMedia(dir, urlPrefix string) Option {
	return func(o *Operations) {
		o.mediaDir = dir
		o.mediaURL = urlPrefix
	}
}

func New(client cms.Client, gen *content.Generator, log *zap.Logger, opts ...Option) *Operations {
	o := &Operations{
		client:   client,
		gen:      gen,
		out:      os.Stdout,
		log:      log,
		now:      time.Now,
		mediaDir: "media",
		mediaURL: "/media",
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Operations) printf(format string, args ...any) {
	fmt.Fprintf(o.out, format, args...)
}

func (o *Operations) println(args ...any) {
	fmt.Fprintln(o.out, args...)
}

func (o *Operations) timestamp() *time.Time {
	t := o.now().UTC()
	return &t
}

func (o *Operations) metaTitle(title string) string {
	return title + " | " + o.gen.Brand().LegalName
}

// findOne returns the first record whose field equals value, or a
// NotFound error.
func (o *Operations) findOne(ctx context.Context, collection, field string, value any) (cms.Document, error) {
	res, err := o.client.Find(ctx, collection, cms.Query{
		Where: []cms.Condition{cms.Eq(field, value)},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(res.Docs) == 0 {
		return nil, apperr.NotFound("%s with %s %v not found", collection, field, value)
	}
	return res.Docs[0], nil
}

// displayName picks the most descriptive label of a record.
func displayName(doc cms.Document) string {
	for _, key := range []string{"title", "name", "clientName", "email"} {
		if v := doc.String(key); v != "" {
			return v
		}
	}
	return "Item " + doc.ID()
}

package records

import (
	"context"

	"episolve/apperr"
	"episolve/cms"
	"episolve/models"
	"episolve/options"
)

// Testimonials dispatches the create, update, delete and list actions.
// update and delete take the record id as their first positional argument.
func (o *Operations) Testimonials(ctx context.Context, action string, opts *options.Options) error {
	switch action {
	case "create":
		if err := opts.Require("quote", "name"); err != nil {
			return err
		}
		order, err := opts.Int("order")
		if err != nil {
			return err
		}
		_, err = o.CreateTestimonial(ctx, TestimonialInput{
			Quote:         opts.Get("quote"),
			ClientName:    opts.Get("name"),
			ClientRole:    opts.Get("role"),
			ClientCompany: opts.Get("company"),
			Featured:      opts.Bool("featured"),
			Order:         order,
		})
		return err
	case "update":
		id := opts.Positional(0)
		if id == "" {
			return apperr.Usage("usage: testimonials update <id> [--field value]")
		}
		return o.UpdateTestimonial(ctx, id, opts)
	case "delete":
		id := opts.Positional(0)
		if id == "" {
			return apperr.Usage("usage: testimonials delete <id>")
		}
		return o.DeleteTestimonial(ctx, id)
	case "list":
		return o.List(ctx, models.CollectionTestimonials)
	}
	return apperr.Usage("unknown action %q, use one of: create, update, delete, list", action)
}

// UpdateTestimonial changes quote, featured and order. Other fields are
// reported and skipped.
func (o *Operations) UpdateTestimonial(ctx context.Context, id string, opts *options.Options) error {
	updates := cms.Document{}
	for _, key := range opts.Keys() {
		switch key {
		case "quote":
			updates["quote"] = opts.Get(key)
		case "featured":
			updates["featured"] = opts.Bool(key)
		case "order":
			n, err := opts.Int(key)
			if err != nil {
				return err
			}
			updates["order"] = n
		default:
			o.printf("⚠️  Unknown field: %s\n", key)
		}
	}

	doc, err := o.client.Update(ctx, models.CollectionTestimonials, id, updates)
	if err != nil {
		return err
	}

	o.println("✅ Testimonial updated!")
	o.printf("   ID: %s\n", doc.ID())
	o.printf("   Client: %s\n", doc.String("clientName"))
	o.printf("   Featured: %t\n", doc.Bool("featured"))
	return nil
}

func (o *Operations) DeleteTestimonial(ctx context.Context, id string) error {
	if err := o.client.Delete(ctx, models.CollectionTestimonials, id); err != nil {
		return err
	}
	o.printf("✅ Testimonial %s deleted!\n", id)
	return nil
}

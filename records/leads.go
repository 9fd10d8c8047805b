package records

import (
	"context"
	"slices"

	"episolve/apperr"
	"episolve/cms"
	"episolve/models"
)

// ListLeads prints leads newest first, optionally only those in status.
func (o *Operations) ListLeads(ctx context.Context, status string) error {
	q := cms.Query{Sort: "-createdAt"}
	if status != "" {
		if !slices.Contains(models.LeadStatuses, models.LeadStatus(status)) {
			return apperr.Invalid("status %q is not one of %v", status, models.LeadStatuses)
		}
		q.Where = []cms.Condition{cms.Eq("status", status)}
	}
	return o.list(ctx, models.CollectionLeads, q, listings[models.CollectionLeads])
}

// SetLeadStatus moves a lead along the pipeline.
func (o *Operations) SetLeadStatus(ctx context.Context, id, status string) error {
	if !slices.Contains(models.LeadStatuses, models.LeadStatus(status)) {
		return apperr.Invalid("status %q is not one of %v", status, models.LeadStatuses)
	}

	doc, err := o.client.Update(ctx, models.CollectionLeads, id, cms.Document{"status": status})
	if err != nil {
		return err
	}
	o.printf("✅ Lead %s (%s) is now %s\n", doc.ID(), doc.String("email"), doc.String("status"))
	return nil
}

func printLead(o *Operations, d cms.Document) {
	o.printf("#%s %s <%s>  [%s]\n", d.ID(), d.String("name"), d.String("email"), d.String("status"))
	if company := d.String("company"); company != "" {
		o.printf("   Company: %s\n", company)
	}
	o.printf("   Source: %s\n", d.String("source"))
	o.printf("   Received: %s\n", d.String("createdAt"))
	o.printf("   Message: %s\n\n", excerpt(d.String("message"), 80))
}

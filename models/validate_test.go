package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"episolve/apperr"
)

func TestServiceValidate(t *testing.T) {
	ok := &Service{Title: "Cloud Security", Slug: "cloud-security", Icon: "shield"}
	assert.NoError(t, ok.Validate())

	tests := []struct {
		name    string
		service Service
	}{
		{"missing title", Service{Slug: "x"}},
		{"missing slug", Service{Title: "X"}},
		{"long description", Service{Title: "X", Slug: "x", ShortDescription: strings.Repeat("a", 151)}},
		{"unknown icon", Service{Title: "X", Slug: "x", Icon: "rocket"}},
		{"bad status", Service{Title: "X", Slug: "x", Status: "archived"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.service.Validate()
			assert.True(t, apperr.IsValidation(err))
		})
	}
}

func TestServiceValidate_DescriptionAtLimit(t *testing.T) {
	s := &Service{Title: "X", Slug: "x", ShortDescription: strings.Repeat("é", 150)}
	assert.NoError(t, s.Validate())
}

func TestPageValidate_Blocks(t *testing.T) {
	page := &Page{
		Title: "Home",
		Slug:  "home",
		Hero:  Hero{Type: HeroHighImpact},
		Layout: []Block{
			{BlockType: BlockStats, Stats: []Stat{{Value: "15+", Label: "Years"}}},
		},
	}
	assert.True(t, apperr.IsValidation(page.Validate()))

	page.Layout[0].Stats = append(page.Layout[0].Stats, Stat{Value: "100%", Label: "Satisfaction"})
	assert.NoError(t, page.Validate())

	page.Layout = append(page.Layout, Block{BlockType: "carousel"})
	assert.True(t, apperr.IsValidation(page.Validate()))
}

func TestLeadValidate_Enums(t *testing.T) {
	lead := &Lead{Name: "Ann", Email: "ann@example.com", Message: "hello there", Status: LeadQualified}
	assert.NoError(t, lead.Validate())

	lead.Status = "won"
	assert.True(t, apperr.IsValidation(lead.Validate()))

	lead.Status = LeadNew
	lead.Source = "billboard"
	assert.True(t, apperr.IsValidation(lead.Validate()))
}

func TestSubscriberValidate(t *testing.T) {
	assert.NoError(t, (&Subscriber{Email: "a@b.co", Source: SubscriberFooter}).Validate())
	assert.Error(t, (&Subscriber{}).Validate())
	assert.Error(t, (&Subscriber{Email: "a@b.co", Source: "radio"}).Validate())
}

func TestCollections_AllValidate(t *testing.T) {
	for name, model := range Collections() {
		_, ok := model.(interface{ Validate() error })
		assert.True(t, ok, "collection %s has no Validate", name)
	}
}

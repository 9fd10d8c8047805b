package models

import "episolve/richtext"

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

type Icon string

var Icons = []Icon{"lightbulb", "code", "chart", "shield", "cloud", "database", "settings", "users"}

type LeadSource string

const (
	LeadSourceContactForm LeadSource = "contact_form"
	LeadSourceServicePage LeadSource = "service_page"
	LeadSourceNewsletter  LeadSource = "newsletter"
	LeadSourceHighLevel   LeadSource = "highlevel"
	LeadSourceManual      LeadSource = "manual"
)

var LeadSources = []LeadSource{
	LeadSourceContactForm, LeadSourceServicePage, LeadSourceNewsletter, LeadSourceHighLevel, LeadSourceManual,
}

// LeadStatus values in pipeline order.
type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadQualified LeadStatus = "qualified"
	LeadConverted LeadStatus = "converted"
	LeadClosed    LeadStatus = "closed"
)

var LeadStatuses = []LeadStatus{LeadNew, LeadContacted, LeadQualified, LeadConverted, LeadClosed}

type SubscriberSource string

const (
	SubscriberFooter  SubscriberSource = "footer"
	SubscriberBlog    SubscriberSource = "blog"
	SubscriberHome    SubscriberSource = "home"
	SubscriberContact SubscriberSource = "contact"
)

var SubscriberSources = []SubscriberSource{SubscriberFooter, SubscriberBlog, SubscriberHome, SubscriberContact}

type SubscriberStatus string

const (
	SubscriberActive       SubscriberStatus = "active"
	SubscriberUnsubscribed SubscriberStatus = "unsubscribed"
)

type Feature struct {
	Feature string `json:"feature" yaml:"feature"`
}

type CTA struct {
	Text string `json:"text" yaml:"text"`
	Link string `json:"link" yaml:"link"`
}

type Meta struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

type Link struct {
	Label      string `json:"label" yaml:"label"`
	URL        string `json:"url" yaml:"url"`
	NewTab     bool   `json:"newTab" yaml:"newTab"`
	Appearance string `json:"appearance,omitempty" yaml:"appearance,omitempty"`
}

type HeroType string

const (
	HeroHighImpact   HeroType = "highImpact"
	HeroMediumImpact HeroType = "mediumImpact"
	HeroLowImpact    HeroType = "lowImpact"
)

type Hero struct {
	Type     HeroType          `json:"type" yaml:"type"`
	RichText richtext.Document `json:"richText" yaml:"richText"`
	Links    []Link            `json:"links,omitempty" yaml:"links,omitempty"`
	Media    *uint             `json:"media,omitempty" yaml:"media,omitempty"`
}

type BlockType string

const (
	BlockContent      BlockType = "content"
	BlockStats        BlockType = "stats"
	BlockTestimonials BlockType = "testimonials"
	BlockCTA          BlockType = "cta"
	BlockForm         BlockType = "form"
)

// Block is one entry of a page layout. BlockType selects which of the
// remaining fields are meaningful.
type Block struct {
	BlockType BlockType `json:"blockType" yaml:"blockType"`
	BlockName string    `json:"blockName,omitempty" yaml:"blockName,omitempty"`
	Heading   string    `json:"heading,omitempty" yaml:"heading,omitempty"`

	// content
	Columns []Column `json:"columns,omitempty" yaml:"columns,omitempty"`

	// stats
	Stats       []Stat `json:"stats,omitempty" yaml:"stats,omitempty"`
	StatColumns string `json:"statColumns,omitempty" yaml:"statColumns,omitempty"`

	// testimonials
	Source       string `json:"source,omitempty" yaml:"source,omitempty"`
	Testimonials []uint `json:"testimonials,omitempty" yaml:"testimonials,omitempty"`
	Limit        int    `json:"limit,omitempty" yaml:"limit,omitempty"`

	// cta
	RichText *richtext.Document `json:"richText,omitempty" yaml:"richText,omitempty"`
	Links    []Link             `json:"links,omitempty" yaml:"links,omitempty"`

	// form
	Form string `json:"form,omitempty" yaml:"form,omitempty"`
}

type Column struct {
	Size     string            `json:"size" yaml:"size"`
	RichText richtext.Document `json:"richText" yaml:"richText"`
	Link     *Link             `json:"link,omitempty" yaml:"link,omitempty"`
}

type Stat struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

type CTAButton struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Text    string `json:"text" yaml:"text"`
	Link    string `json:"link" yaml:"link"`
	NewTab  bool   `json:"newTab" yaml:"newTab"`
}

type CompanyInfo struct {
	Address string `json:"address" yaml:"address"`
	Phone   string `json:"phone" yaml:"phone"`
	Email   string `json:"email" yaml:"email"`
	Hours   string `json:"hours" yaml:"hours"`
}

type SocialLink struct {
	Platform string `json:"platform" yaml:"platform"`
	URL      string `json:"url" yaml:"url"`
	NewTab   bool   `json:"newTab" yaml:"newTab"`
}

// Header and Footer are the shapes of the two global documents.
type Header struct {
	NavItems  []Link    `json:"navItems" yaml:"navItems"`
	CTAButton CTAButton `json:"ctaButton" yaml:"ctaButton"`
}

type Footer struct {
	NavItems      []Link       `json:"navItems" yaml:"navItems"`
	CompanyInfo   CompanyInfo  `json:"companyInfo" yaml:"companyInfo"`
	SocialLinks   []SocialLink `json:"socialLinks" yaml:"socialLinks"`
	NewsletterCTA string       `json:"newsletterCTA" yaml:"newsletterCTA"`
}

const (
	GlobalHeader = "header"
	GlobalFooter = "footer"
)

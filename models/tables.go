package models

import (
	"time"

	"episolve/richtext"
)

type Service struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
	Title            string            `gorm:"not null" json:"title"`
	Slug             string            `gorm:"uniqueIndex;not null" json:"slug"`
	Icon             Icon              `json:"icon"`
	ShortDescription string            `json:"shortDescription"`
	FullDescription  richtext.Document `gorm:"serializer:json" json:"fullDescription"`
	Features         []Feature         `gorm:"serializer:json" json:"features"`
	Featured         bool              `gorm:"index" json:"featured"`
	Order            int               `gorm:"index" json:"order"`
	CTA              CTA               `gorm:"serializer:json" json:"cta"`
	Meta             Meta              `gorm:"serializer:json" json:"meta"`
	Status           Status            `gorm:"index;not null;default:draft" json:"status"`
}

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Title     string    `gorm:"uniqueIndex;not null" json:"title"`
	Slug      string    `gorm:"index" json:"slug"`
}

type Post struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Title       string            `gorm:"not null" json:"title"`
	Slug        string            `gorm:"uniqueIndex;not null" json:"slug"`
	Categories  []uint            `gorm:"serializer:json" json:"categories"`
	Content     richtext.Document `gorm:"serializer:json" json:"content"`
	Meta        Meta              `gorm:"serializer:json" json:"meta"`
	PublishedAt *time.Time        `gorm:"index" json:"publishedAt,omitempty"`
	Status      Status            `gorm:"index;not null;default:draft" json:"status"`
}

type TeamMember struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Name      string            `gorm:"not null" json:"name"`
	Role      string            `gorm:"not null" json:"role"`
	Bio       richtext.Document `gorm:"serializer:json" json:"bio"`
	Email     string            `json:"email"`
	LinkedIn  string            `json:"linkedIn"`
	Order     int               `gorm:"index" json:"order"`
}

type Testimonial struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	Quote         string     `gorm:"type:text;not null" json:"quote"`
	ClientName    string     `gorm:"not null" json:"clientName"`
	ClientRole    string     `json:"clientRole"`
	ClientCompany string     `json:"clientCompany"`
	Featured      bool       `gorm:"index" json:"featured"`
	Order         int        `gorm:"index" json:"order"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
}

type Page struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Hero        Hero       `gorm:"serializer:json" json:"hero"`
	Layout      []Block    `gorm:"serializer:json" json:"layout"`
	Meta        Meta       `gorm:"serializer:json" json:"meta"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Status      Status     `gorm:"index;not null;default:draft" json:"status"`
}

type Media struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Alt       string    `gorm:"not null" json:"alt"`
	Filename  string    `gorm:"uniqueIndex;not null" json:"filename"`
	MimeType  string    `json:"mimeType"`
	Filesize  int64     `json:"filesize"`
	URL       string    `json:"url"`
}

type Lead struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Name      string     `gorm:"not null" json:"name"`
	Email     string     `gorm:"not null;index" json:"email"`
	Phone     string     `json:"phone"`
	Company   string     `json:"company"`
	ServiceID *uint      `json:"service,omitempty"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	Source    LeadSource `gorm:"not null;default:contact_form" json:"source"`
	Status    LeadStatus `gorm:"index;not null;default:new" json:"status"`
	Notes     string     `gorm:"type:text" json:"notes"`
	CRMID     string     `json:"crmId"`
}

type Subscriber struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time        `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
	Email     string           `gorm:"uniqueIndex;not null" json:"email"`
	Source    SubscriberSource `json:"source"`
	Status    SubscriberStatus `gorm:"not null;default:active" json:"status"`
	CRMID     string           `json:"crmId"`
}

// Global stores a singleton document (header, footer) by slug.
type Global struct {
	ID        uint           `gorm:"primaryKey" json:"-"`
	UpdatedAt time.Time      `json:"-"`
	Slug      string         `gorm:"uniqueIndex;not null" json:"-"`
	Data      map[string]any `gorm:"serializer:json" json:"-"`
}

// Package forms serves the public contact and newsletter endpoints.
package forms

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"episolve/apperr"
	"episolve/cms"
	"episolve/email"
	"episolve/models"
)

const (
	msgName     = "Name must be at least 2 characters"
	msgNameChar = "Name must be on a single line"
	msgEmail    = "Please enter a valid email address"
	msgPhone    = "Please enter a valid phone number"
	msgMessage  = "Message must be at least 10 characters"
	msgSource   = "Please choose a valid subscription source"
	msgFailed   = "Something went wrong. Please try again later."
	msgBadBody  = "Request body must be a JSON object"
	msgThanks   = "Thank you for your message. We'll be in touch soon!"
	msgAlready  = "You're already subscribed!"
	msgWelcome  = "You're subscribed! Check your email for confirmation."
	msgGone     = "You have been unsubscribed."
	msgBadToken = "This unsubscribe link is invalid."
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
)

type FormsModule struct {
	client            cms.Client
	notifier          *email.Notifier
	unsubscribeSecret string
	log               *zap.Logger
}

func NewFormsModule(client cms.Client, notifier *email.Notifier, unsubscribeSecret string, log *zap.Logger) *FormsModule {
	return &FormsModule{
		client:            client,
		notifier:          notifier,
		unsubscribeSecret: unsubscribeSecret,
		log:               log,
	}
}

func (f *FormsModule) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/contact", f.contact)
		api.POST("/subscribe", f.subscribe)
		api.GET("/unsubscribe", f.unsubscribe)
	}
}

type response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type contactRequest struct {
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone"`
	Company string          `json:"company"`
	Service json.RawMessage `json:"service"`
	Message string          `json:"message"`
}

func (r contactRequest) validate() map[string]string {
	errs := map[string]string{}
	switch {
	case utf8.RuneCountInString(strings.TrimSpace(r.Name)) < 2:
		errs["name"] = msgName
	case strings.ContainsFunc(r.Name, unicode.IsControl):
		errs["name"] = msgNameChar
	}
	if !emailPattern.MatchString(r.Email) {
		errs["email"] = msgEmail
	}
	if r.Phone != "" && !phonePattern.MatchString(r.Phone) {
		errs["phone"] = msgPhone
	}
	if utf8.RuneCountInString(strings.TrimSpace(r.Message)) < 10 {
		errs["message"] = msgMessage
	}
	return errs
}

func (f *FormsModule) contact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response{Message: msgBadBody})
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, response{Errors: errs})
		return
	}

	ctx := c.Request.Context()
	lead := cms.Document{
		"name":    strings.TrimSpace(req.Name),
		"email":   normalizeEmail(req.Email),
		"phone":   strings.TrimSpace(req.Phone),
		"company": strings.TrimSpace(req.Company),
		"message": strings.TrimSpace(req.Message),
		"source":  string(models.LeadSourceContactForm),
		"status":  string(models.LeadNew),
	}

	serviceID, serviceTitle, err := f.resolveService(ctx, req.Service)
	if err != nil {
		f.fail(c, "resolving contact service", err)
		return
	}
	if serviceID != "" {
		lead["service"] = json.Number(serviceID)
	}

	created, err := f.client.Create(ctx, models.CollectionLeads, lead)
	if err != nil {
		f.fail(c, "creating lead", err)
		return
	}
	f.log.Info("lead created", zap.String("id", created.ID()), zap.String("email", created.String("email")))

	f.notifier.ContactReceived(email.Contact{
		LeadID:  created.ID(),
		Name:    created.String("name"),
		Email:   created.String("email"),
		Phone:   created.String("phone"),
		Company: created.String("company"),
		Service: serviceTitle,
		Message: created.String("message"),
	})

	c.JSON(http.StatusOK, response{Success: true, Message: msgThanks})
}

// resolveService accepts a service id (number or numeric string) or a
// slug. References to missing services are dropped.
func (f *FormsModule) resolveService(ctx context.Context, raw json.RawMessage) (id, title string, err error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", "", nil
	}

	var ref string
	if err := json.Unmarshal(raw, &ref); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", "", nil
		}
		ref = n.String()
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", "", nil
	}

	var doc cms.Document
	if _, convErr := strconv.ParseUint(ref, 10, 64); convErr == nil {
		doc, err = f.client.FindByID(ctx, models.CollectionServices, ref)
	} else {
		var res *cms.Result
		res, err = f.client.Find(ctx, models.CollectionServices, cms.Query{
			Where: []cms.Condition{cms.Eq("slug", ref)},
			Limit: 1,
		})
		if err == nil && len(res.Docs) > 0 {
			doc = res.Docs[0]
		}
	}
	switch {
	case apperr.IsNotFound(err):
		return "", "", nil
	case err != nil:
		return "", "", err
	case doc == nil:
		return "", "", nil
	}
	return doc.ID(), doc.String("title"), nil
}

type subscribeRequest struct {
	Email  string `json:"email"`
	Source string `json:"source"`
}

func (f *FormsModule) subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response{Message: msgBadBody})
		return
	}
	if !emailPattern.MatchString(req.Email) {
		c.JSON(http.StatusBadRequest, response{Errors: map[string]string{"email": msgEmail}})
		return
	}
	source := models.SubscriberSource(req.Source)
	if source == "" {
		source = models.SubscriberFooter
	}
	if !slices.Contains(models.SubscriberSources, source) {
		c.JSON(http.StatusBadRequest, response{Errors: map[string]string{"source": msgSource}})
		return
	}

	ctx := c.Request.Context()
	address := normalizeEmail(req.Email)

	existing, err := f.findSubscriber(ctx, address)
	if err != nil {
		f.fail(c, "looking up subscriber", err)
		return
	}

	switch {
	case existing == nil:
		_, err = f.client.Create(ctx, models.CollectionSubscribers, cms.Document{
			"email":  address,
			"source": string(source),
			"status": string(models.SubscriberActive),
		})
	case existing.String("status") == string(models.SubscriberUnsubscribed):
		_, err = f.client.Update(ctx, models.CollectionSubscribers, existing.ID(), cms.Document{
			"status": string(models.SubscriberActive),
		})
	default:
		c.JSON(http.StatusOK, response{Success: true, Message: msgAlready})
		return
	}
	if err != nil {
		f.fail(c, "saving subscriber", err)
		return
	}

	f.log.Info("subscriber active", zap.String("email", address), zap.String("source", string(source)))
	f.notifier.Subscribed(address)
	c.JSON(http.StatusOK, response{Success: true, Message: msgWelcome})
}

func (f *FormsModule) unsubscribe(c *gin.Context) {
	address := normalizeEmail(c.Query("email"))
	if !emailPattern.MatchString(address) {
		c.JSON(http.StatusBadRequest, response{Errors: map[string]string{"email": msgEmail}})
		return
	}
	if f.unsubscribeSecret != "" && !email.ValidToken(f.unsubscribeSecret, address, c.Query("token")) {
		c.JSON(http.StatusBadRequest, response{Message: msgBadToken})
		return
	}

	ctx := c.Request.Context()
	existing, err := f.findSubscriber(ctx, address)
	if err != nil {
		f.fail(c, "looking up subscriber", err)
		return
	}
	if existing != nil && existing.String("status") != string(models.SubscriberUnsubscribed) {
		_, err := f.client.Update(ctx, models.CollectionSubscribers, existing.ID(), cms.Document{
			"status": string(models.SubscriberUnsubscribed),
		})
		if err != nil {
			f.fail(c, "unsubscribing", err)
			return
		}
		f.log.Info("subscriber unsubscribed", zap.String("email", address))
	}

	c.JSON(http.StatusOK, response{Success: true, Message: msgGone})
}

func (f *FormsModule) findSubscriber(ctx context.Context, address string) (cms.Document, error) {
	res, err := f.client.Find(ctx, models.CollectionSubscribers, cms.Query{
		Where: []cms.Condition{cms.Eq("email", address)},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(res.Docs) == 0 {
		return nil, nil
	}
	return res.Docs[0], nil
}

func (f *FormsModule) fail(c *gin.Context, what string, err error) {
	f.log.Error(what+" failed", zap.String("code", apperr.Code(err)), zap.Error(err))
	c.JSON(http.StatusInternalServerError, response{Message: msgFailed})
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

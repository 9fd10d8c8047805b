package email

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"html/template"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"

	"episolve/apperr"
	"episolve/content"
)

// Addresses are the From headers of the three kinds of mail.
type Addresses struct {
	NoReply       string `yaml:"noReply"`
	Notifications string `yaml:"notifications"`
	Newsletter    string `yaml:"newsletter"`
}

var DefaultAddresses = Addresses{
	NoReply:       "Episolve <noreply@episolve.com>",
	Notifications: "Episolve Notifications <notifications@episolve.com>",
	Newsletter:    "Episolve Insights <newsletter@episolve.com>",
}

type Config struct {
	Brand     content.Brand
	Addresses Addresses
	// TeamEmail receives new lead notifications. Empty disables them.
	TeamEmail string
	ServerURL string
	// UnsubscribeSecret signs unsubscribe links. Empty leaves them unsigned.
	UnsubscribeSecret string
}

// Contact is a stored contact form submission.
type Contact struct {
	LeadID  string
	Name    string
	Email   string
	Phone   string
	Company string
	Service string
	Message string
}

// Notifier sends mail in the background. Delivery failures are logged
// and never reported to the caller. Wait blocks until every pending send
// has finished.
type Notifier struct {
	sender Sender
	cfg    Config
	log    *zap.Logger
	wg     sync.WaitGroup
}

// NewNotifier returns a notifier delivering through sender. A nil sender
// disables mail entirely.
func NewNotifier(sender Sender, cfg Config, log *zap.Logger) *Notifier {
	if cfg.Brand.Name == "" {
		cfg.Brand = content.DefaultBrand
	}
	if cfg.Addresses == (Addresses{}) {
		cfg.Addresses = DefaultAddresses
	}
	cfg.ServerURL = strings.TrimSuffix(cfg.ServerURL, "/")
	return &Notifier{sender: sender, cfg: cfg, log: log}
}

func (n *Notifier) Enabled() bool {
	return n != nil && n.sender != nil
}

// ContactReceived confirms receipt to the sender and, when a team address
// is configured, notifies the team.
func (n *Notifier) ContactReceived(c Contact) {
	if !n.Enabled() {
		return
	}

	n.dispatch("contact confirmation", contactTmpl, Message{
		From:    n.cfg.Addresses.NoReply,
		To:      c.Email,
		Subject: "Thank you for contacting " + n.cfg.Brand.Name,
	}, map[string]any{"Contact": c, "Brand": n.cfg.Brand})

	if n.cfg.TeamEmail == "" {
		return
	}
	n.dispatch("team notification", teamTmpl, Message{
		From:    n.cfg.Addresses.Notifications,
		To:      n.cfg.TeamEmail,
		Subject: "New Lead: " + c.Name,
	}, map[string]any{"Contact": c, "AdminURL": n.cfg.ServerURL + "/admin/collections/leads/" + c.LeadID})
}

// Subscribed sends the newsletter welcome mail with an unsubscribe link.
func (n *Notifier) Subscribed(address string) {
	if !n.Enabled() {
		return
	}

	q := url.Values{"email": {address}}
	if n.cfg.UnsubscribeSecret != "" {
		q.Set("token", Token(n.cfg.UnsubscribeSecret, address))
	}

	n.dispatch("welcome", welcomeTmpl, Message{
		From:    n.cfg.Addresses.Newsletter,
		To:      address,
		Subject: "Welcome to " + n.cfg.Brand.Insights,
	}, map[string]any{
		"Brand":          n.cfg.Brand,
		"UnsubscribeURL": n.cfg.ServerURL + "/api/unsubscribe?" + q.Encode(),
	})
}

func (n *Notifier) dispatch(kind string, tmpl *template.Template, msg Message, data any) {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		n.log.Error("rendering email failed", zap.String("kind", kind), zap.Error(err))
		return
	}
	msg.HTML = body.String()

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.sender.Send(context.Background(), msg); err != nil {
			if !apperr.IsIntegration(err) {
				err = apperr.Integration(err, "sending "+kind)
			}
			n.log.Warn("email delivery failed",
				zap.String("kind", kind),
				zap.String("to", msg.To),
				zap.String("code", apperr.Code(err)),
				zap.Error(err),
			)
			return
		}
		n.log.Debug("email sent", zap.String("kind", kind), zap.String("to", msg.To))
	}()
}

func (n *Notifier) Wait() {
	if n == nil {
		return
	}
	n.wg.Wait()
}

// Drain waits for pending deliveries until ctx is done. It returns
// ctx.Err() when deliveries are still running at that point.
func (n *Notifier) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Token signs a lower-cased address for unsubscribe links.
func Token(secret, address string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strings.ToLower(strings.TrimSpace(address))))
	return hex.EncodeToString(mac.Sum(nil))
}

// ValidToken reports whether token was produced by Token for address.
func ValidToken(secret, address, token string) bool {
	want := Token(secret, address)
	return hmac.Equal([]byte(want), []byte(token))
}

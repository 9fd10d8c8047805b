package email

import "html/template"

var contactTmpl = template.Must(template.New("contact").Parse(`
<h2>Thanks for reaching out!</h2>
<p>Hi {{.Contact.Name}},</p>
<p>We've received your message and will get back to you shortly.</p>
<p><strong>Your message:</strong></p>
<p>{{.Contact.Message}}</p>
<hr />
<p><small>{{.Brand.LegalName}} | Technology Solutions for Business Problems</small></p>
`))

var teamTmpl = template.Must(template.New("team").Parse(`
<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Contact.Name}}</p>
<p><strong>Email:</strong> {{.Contact.Email}}</p>
{{- with .Contact.Phone}}
<p><strong>Phone:</strong> {{.}}</p>
{{- end}}
{{- with .Contact.Company}}
<p><strong>Company:</strong> {{.}}</p>
{{- end}}
{{- with .Contact.Service}}
<p><strong>Service Interest:</strong> {{.}}</p>
{{- end}}
<p><strong>Message:</strong></p>
<p>{{.Contact.Message}}</p>
<hr />
<p><a href="{{.AdminURL}}">View in Admin</a></p>
`))

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<h2>Thanks for subscribing!</h2>
<p>You're now subscribed to {{.Brand.Insights}}. We'll send you valuable content about technology, business solutions, and industry trends.</p>
<p>Stay tuned for our next update!</p>
<hr />
<p><small>{{.Brand.LegalName}} | Technology Solutions for Business Problems</small></p>
<p><small><a href="{{.UnsubscribeURL}}">Unsubscribe</a></small></p>
`))

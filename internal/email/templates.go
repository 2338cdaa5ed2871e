package email

import (
	"text/template"

	"github.com/julianstephens/bidtrack/internal/models"
)

type messageTemplate struct {
	name    string
	subject *template.Template
	body    *template.Template
}

func mustTemplate(name, subject, body string) *messageTemplate {
	return &messageTemplate{
		name:    name,
		subject: template.Must(template.New(name + "-subject").Parse(subject)),
		body:    template.Must(template.New(name + "-body").Parse(body)),
	}
}

const gcSignoff = `Thanks,
{{.Sender.Name}}
{{.Sender.Company}}
`

var awaitingInputTmpl = mustTemplate("awaiting_input",
	`Bid #{{.Bid.ID}} NOT Submitted – Awaiting Your Input – {{.Bid.Project}}`,
	`{{.Sender.PrincipalName}},

Bid #{{.Bid.ID}} – {{.Bid.Project}} is NOT SUBMITTED yet. I'm blocked awaiting your input:

Decision needed: {{.Bid.PendingQuestion}}
Deadline: {{index .Extra "Deadline"}}

{{.Sender.Name}}
`)

var submittedTmpl = mustTemplate("submitted",
	`Bid #{{.Bid.ID}} Submitted – {{.Bid.Project}}`,
	`{{.Sender.PrincipalName}},

Bid #{{.Bid.ID}} – {{.Bid.Project}} has been SUBMITTED.

- Submitted: {{index .Extra "SubmittedAt"}}
- Platform: {{.Bid.Platform}}
- GC/Estimator: {{.Bid.Estimator.Name}} / {{.Bid.GCCompany}}
- Proof: {{index .Extra "Proof"}}

Next step: Follow-up sequence is active ({{index .Extra "Offsets"}}).

{{.Sender.Name}}
`)

var followUpTmpls = map[models.FollowUpKind]*messageTemplate{
	models.FollowUpReceiptConfirmation: mustTemplate("receipt_confirmation",
		`Bid Confirmation – {{.Bid.Project}} – {{.Bid.GCCompany}}`,
		`Hi {{.Bid.Estimator.Name}},

Just confirming you received our bid for {{.Bid.Project}}.

Let me know if you need any clarifications.

`+gcSignoff),

	models.FollowUpStatusCheck: mustTemplate("status_check",
		`Status Check – {{.Bid.Project}}`,
		`Hi {{.Bid.Estimator.Name}},

Checking in on the status of {{.Bid.Project}}.

Any questions on our scope or pricing? Happy to clarify.

`+gcSignoff),

	models.FollowUpValueTouch: mustTemplate("value_touch",
		`Quick Turnaround Available – {{.Bid.Project}}`,
		`Hi {{.Bid.Estimator.Name}},

If you need any revisions or scope adjustments on {{.Bid.Project}}, I can turn those around quickly.

Also happy to walk through our pricing breakdown if that would help.

`+gcSignoff),

	models.FollowUpCloseoutRequest: mustTemplate("closeout_request",
		`Close the Loop – {{.Bid.Project}}`,
		`Hi {{.Bid.Estimator.Name}},

Following up one last time on {{.Bid.Project}}.

Can you let me know the outcome? Also, would you like us on your bid list for future projects?

`+gcSignoff),
}

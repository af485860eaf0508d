package mailer

import "fmt"

// InviteJob is the JSON payload put on the RabbitMQ queue when a user
// mails a workspace invite code. The invite worker renders and sends
// it; joining by code never depends on delivery.
type InviteJob struct {
	To         string `json:"to"`
	InviteCode string `json:"invite_code"`
	Workspace  string `json:"workspace"`
	Sender     string `json:"sender"`
}

// Subject builds the mail subject line.
func (j InviteJob) Subject() string {
	return fmt.Sprintf("%s sizi %q çalışma alanına davet ediyor", j.Sender, j.Workspace)
}

// Text renders the plain-text body.
func (j InviteJob) Text() string {
	return fmt.Sprintf(
		"%s sizi %q çalışma alanında birlikte çalışmaya davet ediyor.\n\nDavet kodu: %s\n\nUygulamada \"Koda katıl\" bölümüne bu kodu girerek boarda katılabilirsiniz.",
		j.Sender, j.Workspace, j.InviteCode,
	)
}

// HTML renders a minimal HTML body.
func (j InviteJob) HTML() string {
	return fmt.Sprintf(
		"<p>%s sizi <strong>%s</strong> çalışma alanında birlikte çalışmaya davet ediyor.</p><p>Davet kodu: <code>%s</code></p>",
		j.Sender, j.Workspace, j.InviteCode,
	)
}

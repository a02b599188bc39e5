package entity

// EmailTemplate identifies a registered email body template.
type EmailTemplate string

const (
	EmailTemplateActivateAccount EmailTemplate = "activate_account"
)

// EmailMessage is everything the mail transport needs to render and send one email.
type EmailMessage struct {
	To              string
	Username        string
	Template        EmailTemplate
	ConfirmationURL string
	ActivationCode  string
	Subject         string
}

package entities

// EmailMessage is a rendered transactional email
type EmailMessage struct {
	To       []string
	Subject  string
	HTML     string
	Text     string
	Template string
}

package mail

import "fmt"

// ActivationSubject builds the subject line for the account activation mail.
func ActivationSubject(clientHost string) string {
	return fmt.Sprintf("Confirmation your email on %s", clientHost)
}

// ActivationBody builds the HTML body carrying the activation link.
func ActivationBody(username, clientHost, activationLink string) string {
	return fmt.Sprintf(
		`<div>
			<h1>Hello, %s! Follow the link to activate your account on %s!</h1>
			<a href="%s">%s</a>
		</div>`,
		username, clientHost, activationLink, activationLink,
	)
}

// PasswordResetSubject builds the subject line for the reset mail.
func PasswordResetSubject(clientHost string) string {
	return fmt.Sprintf("Change your password on %s", clientHost)
}

// PasswordResetBody builds the HTML body carrying the reset link.
func PasswordResetBody(username, clientHost, resetLink string) string {
	return fmt.Sprintf(
		`<div>
			<h1>Hello, %s! Follow the link to change your password on %s!</h1>
			<a href="%s">%s</a>
		</div>`,
		username, clientHost, resetLink, resetLink,
	)
}

package service

import "fmt"

func welcomeEmailTemplate(goalsURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Your account is ready.

Create your first goal and start logging progress: %s

If you have questions, reach out to our support team.

Best,
The %s Team`, goalsURL, appName)

	return subject, body
}

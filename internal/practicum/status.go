package practicum

import "fmt"

// statusVerdicts maps the three documented review outcomes to the sentences
// delivered to the user. The texts must stay distinct from each other: the
// poll loop dedups on message content, so two statuses with identical wording
// would suppress a real change.
var statusVerdicts = map[string]string{
	"approved":  "The reviewer liked everything. Hooray!",
	"reviewing": "The work was taken up for review.",
	"rejected":  "The reviewer has remarks.",
}

// FormatStatus renders a homework entry as a notification message.
func FormatStatus(hw Homework) (string, error) {
	if hw.Name == "" {
		return "", &MissingFieldError{Field: "homework_name"}
	}
	if hw.Status == "" {
		return "", &MissingFieldError{Field: "status"}
	}
	verdict, ok := statusVerdicts[hw.Status]
	if !ok {
		return "", &UnknownStatusError{Status: hw.Status}
	}
	return fmt.Sprintf("Review status changed for %q. %s", hw.Name, verdict), nil
}

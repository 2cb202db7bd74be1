package notify

import "fmt"

// Builders for the notification mails the engine sends. Body text is plain;
// recipients only ever get one short paragraph per event.

func LoginAlertMail(to, username string) Mail {
	return Mail{
		To:      []string{to},
		Subject: "New login to your account",
		Body:    fmt.Sprintf("Hi %s,\n\nA new login to your account was just recorded. If this was not you, please reset your password.\n", username),
	}
}

func LeadAssignedMail(to, leadName, projectTitle, leadRole string) Mail {
	return Mail{
		To:      []string{to},
		Subject: fmt.Sprintf("You have been assigned to project %q", projectTitle),
		Body:    fmt.Sprintf("Hi %s,\n\nYou have been assigned as %s on project %q.\n", leadName, leadRole, projectTitle),
	}
}

func MemberAddedMail(to, memberName, teamName, memberRole string) Mail {
	return Mail{
		To:      []string{to},
		Subject: fmt.Sprintf("You have been added to team %q", teamName),
		Body:    fmt.Sprintf("Hi %s,\n\nYou have been added to team %q as %s.\n", memberName, teamName, memberRole),
	}
}

func TaskAssignedMail(to, assigneeName, taskTitle, projectTitle string) Mail {
	return Mail{
		To:      []string{to},
		Subject: fmt.Sprintf("New task assigned: %s", taskTitle),
		Body:    fmt.Sprintf("Hi %s,\n\nYou have been assigned the task %q in project %q.\n", assigneeName, taskTitle, projectTitle),
	}
}

func TaskSubmittedMail(to, reviewerName, taskTitle, submitterName string) Mail {
	return Mail{
		To:      []string{to},
		Subject: fmt.Sprintf("Task submitted for approval: %s", taskTitle),
		Body:    fmt.Sprintf("Hi %s,\n\n%s has submitted the task %q for your approval.\n", reviewerName, submitterName, taskTitle),
	}
}

func TaskApprovedMail(to, assigneeName, taskTitle string, approved bool, remarks string) Mail {
	verdict := "approved"
	if !approved {
		verdict = "not approved"
	}
	body := fmt.Sprintf("Hi %s,\n\nYour task %q was %s.\n", assigneeName, taskTitle, verdict)
	if remarks != "" {
		body += fmt.Sprintf("\nRemarks: %s\n", remarks)
	}
	return Mail{
		To:      []string{to},
		Subject: fmt.Sprintf("Task review outcome: %s", taskTitle),
		Body:    body,
	}
}

func TaskRejectedMail(to, assigneeName, taskTitle, remarks string) Mail {
	body := fmt.Sprintf("Hi %s,\n\nYour task %q was rejected.\n", assigneeName, taskTitle)
	if remarks != "" {
		body += fmt.Sprintf("\nRemarks: %s\n", remarks)
	}
	return Mail{
		To:      []string{to},
		Subject: fmt.Sprintf("Task rejected: %s", taskTitle),
		Body:    body,
	}
}

func TaskRevisionMail(to, assigneeName, taskTitle, remarks string) Mail {
	body := fmt.Sprintf("Hi %s,\n\nThe task %q needs revision before it can be accepted.\n", assigneeName, taskTitle)
	if remarks != "" {
		body += fmt.Sprintf("\nRemarks: %s\n", remarks)
	}
	return Mail{
		To:      []string{to},
		Subject: fmt.Sprintf("Task needs revision: %s", taskTitle),
		Body:    body,
	}
}

func ProjectDeletedMail(to, projectTitle string) Mail {
	return Mail{
		To:      []string{to},
		Subject: fmt.Sprintf("Project deleted: %s", projectTitle),
		Body:    fmt.Sprintf("The project %q and all of its teams and tasks have been permanently deleted. If you did not initiate this action, please contact support.\n", projectTitle),
	}
}

func ProjectLeftMail(to, projectTitle string) Mail {
	return Mail{
		To:      []string{to},
		Subject: fmt.Sprintf("You left the project: %s", projectTitle),
		Body:    fmt.Sprintf("You have left the project %q. If you did not request this action, please contact support.\n", projectTitle),
	}
}

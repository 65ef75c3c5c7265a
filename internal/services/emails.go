package services

import (
	"fmt"

	"github.com/devmarket/marketplace-api/internal/models"
	"github.com/devmarket/marketplace-api/internal/notify"
)

// Email builders. Bodies use the snapshot fields captured at submission time,
// so a later rename of the project or developer does not affect the text.

func newApplicationEmail(clientEmail string, app *models.ProjectApplication) notify.Message {
	return notify.Message{
		To:      clientEmail,
		Subject: fmt.Sprintf("New application for %q", app.ProjectName),
		HTMLBody: fmt.Sprintf(
			"<p>Hi,</p><p><strong>%s</strong> has applied to your project <strong>%s</strong>.</p>"+
				"<p>Log in to review the application.</p>",
			app.DeveloperName, app.ProjectName),
	}
}

func applicationAcceptedEmail(app *models.ProjectApplication) notify.Message {
	return notify.Message{
		To:      app.DeveloperEmail,
		Subject: fmt.Sprintf("You were selected for %q", app.ProjectName),
		HTMLBody: fmt.Sprintf(
			"<p>Hi %s,</p><p>Congratulations! Your application for <strong>%s</strong> was accepted.</p>"+
				"<p>The client will be in touch with next steps.</p>",
			app.DeveloperName, app.ProjectName),
	}
}

func applicationRejectedEmail(app *models.ProjectApplication) notify.Message {
	return notify.Message{
		To:      app.DeveloperEmail,
		Subject: fmt.Sprintf("Update on your application for %q", app.ProjectName),
		HTMLBody: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your application for <strong>%s</strong> was not selected this time.</p>"+
				"<p>New projects are posted regularly, so keep an eye out.</p>",
			app.DeveloperName, app.ProjectName),
	}
}

func accountApprovedEmail(user *models.User) notify.Message {
	return notify.Message{
		To:      user.Email,
		Subject: "Your developer account has been approved",
		HTMLBody: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your developer account is now active. You can browse open projects and apply.</p>",
			user.Name),
	}
}

func accountRejectedEmail(user *models.User) notify.Message {
	return notify.Message{
		To:      user.Email,
		Subject: "Update on your developer account",
		HTMLBody: fmt.Sprintf(
			"<p>Hi %s,</p><p>Unfortunately your developer account application was not approved.</p>",
			user.Name),
	}
}

func projectCompletedEmail(developerEmail, developerName, projectTitle string) notify.Message {
	return notify.Message{
		To:      developerEmail,
		Subject: fmt.Sprintf("%q was marked completed", projectTitle),
		HTMLBody: fmt.Sprintf(
			"<p>Hi %s,</p><p>The project <strong>%s</strong> has been marked completed by the client.</p>",
			developerName, projectTitle),
	}
}

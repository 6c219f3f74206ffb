// Package email delivers transactional emails.
//
// EmailSender is implemented by the Postmark client for real delivery and by
// DevSender, which writes each message to disk for local inspection. Message
// bodies are built from templ components in the templates subpackage.
//
//	sender, err := email.NewPostmarkClient(cfg)
//	if err != nil {
//		return err
//	}
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "ann@example.com",
//		Subject:  "Your password reset code",
//		BodyHTML: body,
//		Tag:      "password-reset",
//	})
package email

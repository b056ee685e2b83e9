package email

import (
	"context"
	"encoding/json"
	"fmt"

	"blog/internal/core/domain/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type sesClient interface {
	SendTemplatedEmail(
		ctx context.Context,
		params *ses.SendTemplatedEmailInput,
		optFns ...func(*ses.Options),
	) (*ses.SendTemplatedEmailOutput, error)
}

type Templates struct {
	ConfirmEmail  string
	ResetPassword string
}

func (t Templates) For(purpose user.TokenPurpose) (string, bool) {
	switch purpose {
	case user.PurposeConfirmEmail:
		return t.ConfirmEmail, true
	case user.PurposeResetPassword:
		return t.ResetPassword, true
	}
	return "", false
}

// TemplateParams is the data every account email template is rendered with.
type TemplateParams struct {
	Username  string `json:"username"`
	ActionURL string `json:"actionUrl"`
}

type EmailSender struct {
	ses sesClient
	// This address must be verified with Amazon SES.
	sender    string
	templates Templates
}

func NewEmailSender(awsConfig aws.Config, sender string, templates Templates) *EmailSender {
	return newEmailSender(ses.NewFromConfig(awsConfig), sender, templates)
}

func newEmailSender(client sesClient, sender string, templates Templates) *EmailSender {
	return &EmailSender{ses: client, sender: sender, templates: templates}
}

func (s *EmailSender) Send(ctx context.Context, n user.Notification) error {
	template, ok := s.templates.For(n.Purpose)
	if !ok {
		return fmt.Errorf("no email template for %q", n.Purpose)
	}
	if n.To.IsZero() {
		return fmt.Errorf("recipient of %q email is not defined", n.Purpose)
	}

	templateParamsBytes, err := json.Marshal(TemplateParams{Username: n.Name, ActionURL: n.ActionURL})
	if err != nil {
		return err
	}

	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: aws.String(s.sender),
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{string(n.To)},
			},
			Template:     aws.String(template),
			TemplateData: aws.String(string(templateParamsBytes)),
		},
	)
	return err
}

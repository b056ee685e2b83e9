package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"blog/internal/config"
	"blog/internal/implementations/email"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type emailTemplate struct {
	name     string
	subject  string
	htmlPart string
	textPart string
}

func accountTemplates(cfg *config.Config) []emailTemplate {
	return []emailTemplate{
		{
			name:     cfg.AwsEmailConfirmEmailTemplate,
			subject:  "Confirm your email",
			htmlPart: `<p>Hi {{username}},</p><p>Please confirm your account by clicking <a href="{{actionUrl}}">this link</a>.</p>`,
			textPart: "Hi {{username}},\n\nPlease confirm your account by opening this link:\n{{actionUrl}}\n",
		},
		{
			name:     cfg.AwsEmailResetPasswordTemplate,
			subject:  "Reset your password",
			htmlPart: `<p>Hi {{username}},</p><p>Please reset your password by clicking <a href="{{actionUrl}}">this link</a>.</p>`,
			textPart: "Hi {{username}},\n\nPlease reset your password by opening this link:\n{{actionUrl}}\n",
		},
	}
}

// Usage:
//
//	aws create-templates
//	aws delete-templates
//	aws send-test <template> <to>
func main() {
	if len(os.Args) < 2 {
		fail(fmt.Errorf("usage: %s create-templates|delete-templates|send-test <template> <to>", os.Args[0]))
	}

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	svc := ses.NewFromConfig(loadAwsConfig(cfg))

	switch os.Args[1] {
	case "create-templates":
		for _, t := range accountTemplates(cfg) {
			createEmailTemplate(svc, t)
		}
	case "delete-templates":
		for _, t := range accountTemplates(cfg) {
			deleteEmailTemplate(svc, t.name)
		}
	case "send-test":
		if len(os.Args) != 4 {
			fail(fmt.Errorf("usage: %s send-test <template> <to>", os.Args[0]))
		}
		sendEmailTemplate(svc, cfg.AwsEmailSender, os.Args[2], os.Args[3])
	default:
		fail(fmt.Errorf("unknown command %q", os.Args[1]))
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func loadAwsConfig(cfg *config.Config) aws.Config {
	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(cfg.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AwsAccessKey,
				cfg.AwsSecretKey,
				"",
			),
		),
	)
	if err != nil {
		fail(err)
	}
	return awsCfg
}

func createEmailTemplate(svc *ses.Client, t emailTemplate) {
	result, err := svc.CreateTemplate(context.Background(), &ses.CreateTemplateInput{
		Template: &types.Template{
			SubjectPart:  aws.String(t.subject),
			HtmlPart:     aws.String(t.htmlPart),
			TextPart:     aws.String(t.textPart),
			TemplateName: aws.String(t.name),
		},
	})
	if err != nil {
		fail(err)
	}

	fmt.Println("Created:", t.name)
	fmt.Println(result)
}

func deleteEmailTemplate(svc *ses.Client, name string) {
	result, err := svc.DeleteTemplate(context.Background(), &ses.DeleteTemplateInput{
		TemplateName: aws.String(name),
	})
	if err != nil {
		fail(err)
	}

	fmt.Println("Deleted:", name)
	fmt.Println(result)
}

func sendEmailTemplate(svc *ses.Client, sender string, name string, to string) {
	data, err := json.Marshal(email.TemplateParams{
		Username:  "test",
		ActionURL: "https://example.com/account/confirmemail?userId=1&token=test",
	})
	if err != nil {
		fail(err)
	}

	result, err := svc.SendTemplatedEmail(context.Background(), &ses.SendTemplatedEmailInput{
		Source: aws.String(sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Template:     aws.String(name),
		TemplateData: aws.String(string(data)),
	})
	if err != nil {
		fail(err)
	}

	fmt.Println("Sent:")
	fmt.Println(result)
}

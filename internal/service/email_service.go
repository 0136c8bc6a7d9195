package service

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"tinywords/internal/models"
)

// sesClient is the part of the SES API the service uses
type sesClient interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client     sesClient
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
	debug      bool
}

// NewEmailService creates a new email service
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string, debug bool) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		if debug {
			log.Println("[DEBUG] Email service will skip sending all emails")
		}
		return &EmailService{
			enabled: false,
			debug:   debug,
		}, nil
	}

	if debug {
		log.Printf("[DEBUG] Initializing email service with AWS SES")
		log.Printf("[DEBUG] AWS Region: %s", awsRegion)
		log.Printf("[DEBUG] From Email: %s", fromEmail)
		log.Printf("[DEBUG] From Name: %s", fromName)
		log.Printf("[DEBUG] App Base URL: %s", appBaseURL)
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		if debug {
			log.Printf("[DEBUG] Failed to load AWS config: %v", err)
		}
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if debug {
		log.Println("[DEBUG] AWS config loaded successfully")
	}

	// Create SES client
	client := sesv2.NewFromConfig(cfg)

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	if debug {
		log.Println("[DEBUG] SES client created successfully")
	}

	return &EmailService{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
		debug:      debug,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendProgressReport emails a parent the player's progress summary
func (s *EmailService) SendProgressReport(ctx context.Context, summary models.ProgressSummary, since time.Time) error {
	toEmail := summary.Player.ParentEmail
	if s.debug {
		log.Printf("[DEBUG] SendProgressReport called: to=%s, player=%s", toEmail, summary.Player.ID)
	}

	if !s.enabled {
		log.Printf("Skipping email send (service disabled): progress report to %s", toEmail)
		if s.debug {
			log.Printf("[DEBUG] Email service is disabled, no email will be sent")
		}
		return nil
	}

	subject, htmlBody, textBody := renderProgressReport(summary, since, s.appBaseURL)

	if s.debug {
		log.Printf("[DEBUG] Sending progress report: subject=%s, to=%s", subject, toEmail)
		log.Printf("[DEBUG] HTML body length: %d bytes", len(htmlBody))
		log.Printf("[DEBUG] Text body length: %d bytes", len(textBody))
	}

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

func renderProgressReport(summary models.ProgressSummary, since time.Time, appBaseURL string) (subject, htmlBody, textBody string) {
	name := summary.Player.Name
	period := since.Format("2 January 2006")
	words := "none yet"
	if len(summary.RecentWords) > 0 {
		words = strings.Join(summary.RecentWords, ", ")
	}

	subject = fmt.Sprintf("%s's TinyWords progress", name)
	htmlBody = fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #4a90e2; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>%s's reading progress</h1>
		</div>
		<div class="content">
			<p>Since %s:</p>
			<ul>
				<li>Rounds played: %d</li>
				<li>Right first time: %d (%.0f%%)</li>
				<li>Rounds with hints: %d</li>
				<li>Current score: %d (best %d)</li>
				<li>Current streak: %d (best %d)</li>
			</ul>
			<p>Recent words: %s</p>
			<p><a href="%s">Open TinyWords</a></p>
		</div>
		<div class="footer">
			<p>This is an automated email from TinyWords. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, html.EscapeString(name), period,
		summary.RoundsPlayed, summary.FirstTryRounds, summary.FirstTryPercent(), summary.HintedRounds,
		summary.Score.Score, summary.Score.HighScore, summary.Score.Streak, summary.Score.HighStreak,
		html.EscapeString(words), appBaseURL)

	textBody = fmt.Sprintf(`%s's reading progress since %s

Rounds played: %d
Right first time: %d (%.0f%%)
Rounds with hints: %d
Current score: %d (best %d)
Current streak: %d (best %d)

Recent words: %s

Open TinyWords: %s

---
This is an automated email from TinyWords. Please do not reply.
`, name, period,
		summary.RoundsPlayed, summary.FirstTryRounds, summary.FirstTryPercent(), summary.HintedRounds,
		summary.Score.Score, summary.Score.HighScore, summary.Score.Streak, summary.Score.HighStreak,
		words, appBaseURL)

	return subject, htmlBody, textBody
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	if s.debug {
		log.Printf("[DEBUG] sendEmail called: to=%s, subject=%s", toEmail, subject)
	}

	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	if s.debug {
		log.Printf("[DEBUG] From address: %s", fromAddress)
		log.Printf("[DEBUG] To address: %s", toEmail)
		log.Printf("[DEBUG] Subject: %s", subject)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if s.debug {
		log.Printf("[DEBUG] Calling SES SendEmail API...")
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		if s.debug {
			log.Printf("[DEBUG] SES SendEmail failed: %v", err)
		}
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	if s.debug {
		log.Printf("[DEBUG] SES SendEmail succeeded")
		if result.MessageId != nil {
			log.Printf("[DEBUG] Message ID: %s", *result.MessageId)
		}
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}

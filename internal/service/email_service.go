package service

import (
	"chaos_backend/internal/config"
	"chaos_backend/pkg/logger"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Mailer sends recruitment notifications. Sends are fire-and-forget; a
// failed send is logged, never surfaced to the triggering request.
type Mailer interface {
	Send(toName, toAddress, subject, body string)
}

func NewMailer(cfg *config.Config) Mailer {
	if cfg.Email.Provider == "sendgrid" && cfg.Email.SendgridKey != "" {
		return &sendgridMailer{
			key:  cfg.Email.SendgridKey,
			from: sgmail.NewEmail(cfg.Email.FromName, cfg.Email.FromAddress),
		}
	}
	return &consoleMailer{}
}

type sendgridMailer struct {
	key  string
	from *sgmail.Email
}

func (m *sendgridMailer) Send(toName, toAddress, subject, body string) {
	go func() {
		msg := sgmail.NewSingleEmail(m.from, subject, sgmail.NewEmail(toName, toAddress), body, body)

		req := sendgrid.GetRequest(m.key, "/v3/mail/send", "https://api.sendgrid.com")
		req.Method = http.MethodPost
		req.Body = sgmail.GetRequestBody(msg)

		res, err := sendgrid.API(req)
		if err != nil {
			logger.Log.Error("sendgrid send failed", zap.Error(err), zap.String("to", toAddress))
			return
		}
		if res.StatusCode >= http.StatusBadRequest {
			logger.Log.Error("sendgrid send rejected",
				zap.Int("status", res.StatusCode),
				zap.String("to", toAddress),
			)
		}
	}()
}

// consoleMailer is the development fallback; it logs instead of sending.
type consoleMailer struct{}

func (m *consoleMailer) Send(toName, toAddress, subject, body string) {
	logger.Log.Info("email (console)",
		zap.String("to", fmt.Sprintf("%s <%s>", toName, toAddress)),
		zap.String("subject", subject),
		zap.String("body", body),
	)
}

package worker

import (
	"context"
	"fmt"
	"log"

	"github.com/qs3c/uikit_server/internal/pkg/email"
	"github.com/qs3c/uikit_server/internal/pkg/queue"
)

// Mailer 邮件任务处理器
type Mailer struct {
	emailService *email.Service
}

// NewMailer 创建邮件任务处理器
func NewMailer(emailService *email.Service) *Mailer {
	return &Mailer{emailService: emailService}
}

// Process 处理一条邮件任务
func (m *Mailer) Process(ctx context.Context, msg *queue.EmailMessage) error {
	switch msg.Type {
	case queue.EmailWelcome:
		log.Printf("Sending welcome email to %s", msg.To)
		return m.emailService.SendWelcome(msg.To, msg.Name)
	case queue.EmailReceipt:
		log.Printf("Sending payment receipt to %s (tx %s)", msg.To, msg.TransactionID)
		return m.emailService.SendPaymentReceipt(msg.To, msg.Name, msg.PlanName, msg.Amount, msg.TransactionID)
	case queue.EmailExpiryReminder:
		log.Printf("Sending expiry reminder to %s (plan %s)", msg.To, msg.PlanName)
		return m.emailService.SendExpiryReminder(msg.To, msg.Name, msg.PlanName, msg.EndDate)
	default:
		return fmt.Errorf("未知的邮件类型: %s", msg.Type)
	}
}

package notify

import (
	"fmt"
	"strings"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/AhmadEkramy/elitesupps/config"
	"github.com/AhmadEkramy/elitesupps/internal/domain"
)

const poolSize = 4

// Mailer sends order notification emails off the request path. Sends are
// fire-and-forget: a failed delivery is logged and dropped, never retried,
// and never affects order placement.
type Mailer struct {
	cfg  config.MailConfig
	pool *ants.Pool
}

func NewMailer(cfg config.MailConfig) (*Mailer, error) {
	pool, err := ants.NewPool(poolSize, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}
	return &Mailer{cfg: cfg, pool: pool}, nil
}

// OrderPlaced queues a notification for a freshly placed order
func (m *Mailer) OrderPlaced(order *domain.Order) {
	if !m.cfg.Enable || m.cfg.NotifyTo == "" {
		return
	}
	err := m.pool.Submit(func() {
		m.sendOrderMail(order)
	})
	if err != nil {
		zap.L().Warn("order notification dropped, pool full", zap.String("order_id", order.ID))
	}
}

func (m *Mailer) sendOrderMail(order *domain.Order) {
	lines := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		label := fmt.Sprintf("%s x%d", item.Name, item.Quantity)
		if item.SelectedFlavor != "" {
			label += " (" + item.SelectedFlavor + ")"
		}
		lines = append(lines, label)
	}

	body := fmt.Sprintf(
		"New order %s\n\nCustomer: %s\nPhone: %s\nAddress: %s\nPayment: %s\n\nItems:\n%s\n\nSubtotal: %d EGP\nDelivery: %d EGP\nDiscount: %d EGP\nTotal: %d EGP\n",
		order.ID,
		order.CustomerInfo.FullName,
		order.CustomerInfo.PhoneNumber,
		order.CustomerInfo.Address,
		order.CustomerInfo.PaymentMethod,
		strings.Join(lines, "\n"),
		order.OrderSummary.Subtotal,
		order.OrderSummary.DeliveryFee,
		order.OrderSummary.CouponDiscount,
		order.OrderSummary.TotalCost,
	)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.NotifyTo)
	msg.SetHeader("Subject", fmt.Sprintf("New order %s - %d EGP", order.ID, order.OrderSummary.TotalCost))
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		zap.L().Warn("order notification send failed",
			zap.String("order_id", order.ID),
			zap.Error(err))
		return
	}
	zap.L().Info("order notification sent", zap.String("order_id", order.ID))
}

// Release drains the worker pool
func (m *Mailer) Release() {
	m.pool.Release()
}

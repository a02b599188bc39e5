package external_services

import (
	"context"
	"sync"
	"time"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/contract"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var mailDispatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "mail_dispatch_total",
	Help: "Outgoing emails by result (sent, failed, dropped).",
}, []string{"template", "result"})

const defaultSendTimeout = 30 * time.Second

// MailDispatcher delivers email on background workers so callers never wait on SMTP.
// Failures are logged and counted; nothing is retried.
type MailDispatcher struct {
	sender      contract.IEmailService
	logger      *zap.Logger
	queue       chan entity.EmailMessage
	sendTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

var _ contract.IMailDispatcher = (*MailDispatcher)(nil)

// NewMailDispatcher starts workers goroutines draining a queue of queueSize messages.
func NewMailDispatcher(sender contract.IEmailService, logger *zap.Logger, queueSize, workers int) *MailDispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	if workers < 1 {
		workers = 1
	}
	d := &MailDispatcher{
		sender:      sender,
		logger:      logger.Named("mail"),
		queue:       make(chan entity.EmailMessage, queueSize),
		sendTimeout: defaultSendTimeout,
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
	return d
}

// Dispatch enqueues msg without blocking. A full or stopped queue drops it.
func (d *MailDispatcher) Dispatch(msg entity.EmailMessage) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.drop(msg, "dispatcher stopped")
		return
	}
	select {
	case d.queue <- msg:
	default:
		d.drop(msg, "queue full")
	}
}

// Shutdown stops accepting mail and waits for queued messages to be sent.
func (d *MailDispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *MailDispatcher) work() {
	defer d.wg.Done()
	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
		err := d.sender.SendEmail(ctx, msg)
		cancel()
		if err != nil {
			mailDispatchTotal.WithLabelValues(string(msg.Template), "failed").Inc()
			d.logger.Error("Failed to send email",
				zap.String("to", msg.To),
				zap.String("template", string(msg.Template)),
				zap.Error(err),
			)
			continue
		}
		mailDispatchTotal.WithLabelValues(string(msg.Template), "sent").Inc()
		d.logger.Debug("Email sent", zap.String("to", msg.To), zap.String("template", string(msg.Template)))
	}
}

func (d *MailDispatcher) drop(msg entity.EmailMessage, reason string) {
	mailDispatchTotal.WithLabelValues(string(msg.Template), "dropped").Inc()
	d.logger.Error("Email dropped",
		zap.String("to", msg.To),
		zap.String("template", string(msg.Template)),
		zap.String("reason", reason),
	)
}

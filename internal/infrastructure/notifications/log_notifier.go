package notifications

import (
	"go.uber.org/zap"

	"github.com/Hen-Heang/h-market/domain"
)

// LogNotifier surfaces issued one-time codes on the operator log. It exists
// for development visibility only; the code never reaches a client payload.
type LogNotifier struct {
	logger *zap.Logger
}

var _ domain.CodeNotifier = (*LogNotifier)(nil)

// NewLogNotifier creates a notifier writing to the given logger.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// NotifyCode implements domain.CodeNotifier.
func (n *LogNotifier) NotifyCode(email, code string) {
	n.logger.Info("verification code issued",
		zap.String("email", email),
		zap.String("code", code),
	)
}

// NopNotifier drops codes entirely. Used in the production configuration,
// where codes must never appear in any sink.
type NopNotifier struct{}

var _ domain.CodeNotifier = (*NopNotifier)(nil)

// NotifyCode implements domain.CodeNotifier.
func (NopNotifier) NotifyCode(email, code string) {}

package idp

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// LogProvider is the development stand-in: it fabricates reset links and
// accepts any code, logging what a real provider would have done.
type LogProvider struct {
	logger *zap.Logger
}

func NewLogProvider(logger *zap.Logger) *LogProvider {
	return &LogProvider{logger: logger}
}

func (p *LogProvider) GenerateResetLink(_ context.Context, email string) (string, error) {
	link := fmt.Sprintf("http://localhost:3000/reset-password?oobCode=dev-%s", email)
	p.logger.Info("dev reset link generated", zap.String("email", email), zap.String("link", link))
	return link, nil
}

func (p *LogProvider) VerifyResetCode(_ context.Context, oobCode string) (string, error) {
	if oobCode == "" {
		return "", ErrResetCodeInvalid
	}
	p.logger.Info("dev reset code accepted", zap.String("oob_code", oobCode))
	return "dev@example.com", nil
}

func (p *LogProvider) ConfirmReset(_ context.Context, oobCode, _ string) error {
	if oobCode == "" {
		return ErrResetCodeInvalid
	}
	p.logger.Info("dev password reset confirmed", zap.String("oob_code", oobCode))
	return nil
}

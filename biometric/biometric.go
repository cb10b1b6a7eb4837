// Package biometric описывает платформенную биометрическую проверку.
// Реальные реализации (Face ID, отпечаток) поставляются платформенным мостом;
// здесь — общие типы ошибок и заглушка для платформ без биометрии.
package biometric

import (
	"context"
	"errors"
)

// Причины отказа биометрической проверки. Все не фатальны: UI показывает
// сообщение и предлагает обычный вход.
var (
	ErrCancelled   = errors.New("biometric prompt cancelled")
	ErrNotEnrolled = errors.New("no biometric credentials enrolled")
	ErrLockedOut   = errors.New("biometric authentication locked out")
	ErrUnavailable = errors.New("biometric hardware unavailable")
)

// Unavailable — заглушка для платформ без биометрического моста.
// IsAvailable всегда false, Authenticate всегда отказывает.
type Unavailable struct{}

func (Unavailable) IsAvailable() bool { return false }

func (Unavailable) Authenticate(ctx context.Context) error { return ErrUnavailable }

package service

import (
	"time"

	"github.com/oakfield-primary/portal-api/internal/dto"
)

const defaultNoticeDismiss = 2 * time.Second

// NoticeFactory stamps success notices with the configured auto-dismiss
// delay. The browser owns the timer; the portal only supplies the value.
type NoticeFactory struct {
	dismissAfter time.Duration
}

func NewNoticeFactory(dismissAfter time.Duration) NoticeFactory {
	if dismissAfter <= 0 {
		dismissAfter = defaultNoticeDismiss
	}
	return NoticeFactory{dismissAfter: dismissAfter}
}

// New builds a notice for the given message.
func (f NoticeFactory) New(message string) dto.Notice {
	dismiss := f.dismissAfter
	if dismiss <= 0 {
		dismiss = defaultNoticeDismiss
	}
	return dto.Notice{Message: message, DismissAfterMS: dismiss.Milliseconds()}
}

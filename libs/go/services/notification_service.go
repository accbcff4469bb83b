package services

import (
	"sync"
	"time"

	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/constants"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/interfaces"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/business"
)

// NotificationService holds the single toast shown to the user. Success and
// error toasts clear themselves; pending toasts stay until replaced.
type NotificationService struct {
	mu           sync.Mutex
	current      business.Notification
	generation   uint64
	timer        *time.Timer
	successDelay time.Duration
	errorDelay   time.Duration
	now          func() time.Time
}

var _ interfaces.Notifier = (*NotificationService)(nil)

// NewNotificationService creates a notifier. A zero delay falls back to the
// default; a negative delay disables auto-clear for that kind of toast.
func NewNotificationService(successDelay, errorDelay time.Duration) *NotificationService {
	if successDelay == 0 {
		successDelay = constants.DefaultSuccessClearDelay
	}
	if errorDelay == 0 {
		errorDelay = constants.DefaultNotificationClearDelay
	}
	return &NotificationService{
		successDelay: successDelay,
		errorDelay:   errorDelay,
		now:          time.Now,
	}
}

// Notify replaces the current toast
func (s *NotificationService) Notify(status business.NotificationStatus, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.stopTimerLocked()
	s.current = business.Notification{
		Visible:   true,
		Status:    status,
		Message:   message,
		CreatedAt: s.now(),
	}

	var delay time.Duration
	switch status {
	case business.NotificationSuccess:
		delay = s.successDelay
	case business.NotificationError:
		delay = s.errorDelay
	default:
		return
	}
	if delay < 0 {
		return
	}

	gen := s.generation
	s.timer = time.AfterFunc(delay, func() { s.expire(gen) })
}

// Current returns the toast being shown, if any
func (s *NotificationService) Current() business.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Clear hides the toast immediately
func (s *NotificationService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.stopTimerLocked()
	s.current = business.Notification{}
}

// expire clears the toast only if nothing newer replaced it
func (s *NotificationService) expire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return
	}
	s.timer = nil
	s.current = business.Notification{}
}

func (s *NotificationService) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

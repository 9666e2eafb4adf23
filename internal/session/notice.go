package session

import "time"

// Level is the severity of a notice.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a transient message shown to the user.
type Notice struct {
	Level   Level
	Message string
	At      time.Time
}

// MaxNotices bounds how many notices are kept.
const MaxNotices = 20

// Notify appends a notice, dropping the oldest past MaxNotices.
func (s *State) Notify(level Level, msg string) {
	s.Notices = append(s.Notices, Notice{Level: level, Message: msg, At: time.Now()})
	if n := len(s.Notices); n > MaxNotices {
		s.Notices = append([]Notice(nil), s.Notices[n-MaxNotices:]...)
	}
}

// LastNotice returns the most recent notice.
func (s *State) LastNotice() (Notice, bool) {
	if len(s.Notices) == 0 {
		return Notice{}, false
	}
	return s.Notices[len(s.Notices)-1], true
}

// DrainNotices returns and clears the pending notices.
func (s *State) DrainNotices() []Notice {
	out := s.Notices
	s.Notices = nil
	return out
}

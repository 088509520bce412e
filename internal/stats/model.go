package stats

import "github.com/thesrcielos/exambuddy/internal/user"

// UserStat is the persisted counter row for one (user, topic) pair.
// Invariant: Total == Correct + Incorrect.
type UserStat struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_topic" json:"-"`
	User      user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Topic     string    `gorm:"not null;uniqueIndex:idx_user_topic" json:"topic"`
	Total     int       `gorm:"not null;default:0" json:"total"`
	Correct   int       `gorm:"not null;default:0" json:"correct"`
	Incorrect int       `gorm:"not null;default:0" json:"incorrect"`
}

type TopicCounters struct {
	Total     int `json:"total"`
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

// StatsMap is keyed by topic name.
type StatsMap map[string]TopicCounters

type AnswerRequest struct {
	Topic   string `json:"topic"`
	Correct *bool  `json:"correct"`
}

type ResetResponse struct {
	Status string `json:"status"`
}

type TopicCard struct {
	Topic      string `json:"topic"`
	Total      int    `json:"total"`
	Correct    int    `json:"correct"`
	Incorrect  int    `json:"incorrect"`
	Percentage int    `json:"percentage"`
	Badge      string `json:"badge"`
}

type Dashboard struct {
	Cards      []TopicCard `json:"cards"`
	WeakTopics []TopicCard `json:"weakTopics"`
}

func (s UserStat) Counters() TopicCounters {
	return TopicCounters{Total: s.Total, Correct: s.Correct, Incorrect: s.Incorrect}
}

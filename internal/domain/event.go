package domain

// EventTopic names a channel on the event bus.
type EventTopic string

const (
	TopicApplicationCreated       EventTopic = "application-created"
	TopicApplicationStatusChanged EventTopic = "application-status-changed"
	TopicInterviewScheduled       EventTopic = "interview-scheduled"
	TopicNotificationReceived     EventTopic = "notification-received"
)

func AllTopics() []EventTopic {
	return []EventTopic{
		TopicApplicationCreated,
		TopicApplicationStatusChanged,
		TopicInterviewScheduled,
		TopicNotificationReceived,
	}
}

func (t EventTopic) IsValid() bool {
	switch t {
	case TopicApplicationCreated, TopicApplicationStatusChanged, TopicInterviewScheduled, TopicNotificationReceived:
		return true
	}
	return false
}

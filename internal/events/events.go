// Package events publishes engagement events to Kafka for the
// push-notification pipeline. Publishing is fire-and-forget: a like or a
// comment must never fail because the broker is down.
package events

import "time"

// Topic is the Kafka topic engagement events go to.
const Topic = "engagement-events"

// Event types.
const (
	TypePostLiked    = "post.liked"
	TypePostUnliked  = "post.unliked"
	TypeCommentAdded = "comment.added"
)

// EngagementEvent is the payload consumed by the notification service.
type EngagementEvent struct {
	EventID    string    `json:"eventId"`
	Type       string    `json:"type"`
	PostID     string    `json:"postId"`
	ActorID    string    `json:"actorId"`
	DesignerID string    `json:"designerId"`
	CommentID  string    `json:"commentId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

package entity

// EngagementKind names one engagement relation between an actor and a target.
type EngagementKind string

const (
	EngagementLike     EngagementKind = "like"
	EngagementSave     EngagementKind = "save"
	EngagementViewPost EngagementKind = "view-post"
	EngagementViewUser EngagementKind = "view-user"
)

// TargetKind is the entity an engagement points at.
type TargetKind string

const (
	TargetPost TargetKind = "post"
	TargetUser TargetKind = "user"
)

package persistent

import (
	"fmt"

	"carhive/internal/entity"
	"carhive/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EngagementRepository owns set membership for every engagement relation.
// Nothing else writes to the likes/saves/post_views/user_views tables.
type EngagementRepository interface {
	Has(kind entity.EngagementKind, actorID, targetID string) (bool, error)
	Add(kind entity.EngagementKind, actorID, targetID string) error
	Remove(kind entity.EngagementKind, actorID, targetID string) error
}

type engagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// relation maps a kind onto its join table. Column order is (actor, target).
type relation struct {
	row       func(actorID, targetID string) interface{}
	actorCol  string
	targetCol string
}

func (r *engagementRepository) relationFor(kind entity.EngagementKind) (relation, error) {
	switch kind {
	case entity.EngagementLike:
		return relation{
			row: func(a, t string) interface{} {
				return &model.LikeModel{UserID: a, PostID: t}
			},
			actorCol:  "user_id",
			targetCol: "post_id",
		}, nil
	case entity.EngagementSave:
		return relation{
			row: func(a, t string) interface{} {
				return &model.SaveModel{UserID: a, PostID: t}
			},
			actorCol:  "user_id",
			targetCol: "post_id",
		}, nil
	case entity.EngagementViewPost:
		return relation{
			row: func(a, t string) interface{} {
				return &model.PostViewModel{UserID: a, PostID: t}
			},
			actorCol:  "user_id",
			targetCol: "post_id",
		}, nil
	case entity.EngagementViewUser:
		return relation{
			row: func(a, t string) interface{} {
				return &model.UserViewModel{ViewerID: a, ViewedID: t}
			},
			actorCol:  "viewer_id",
			targetCol: "viewed_id",
		}, nil
	default:
		return relation{}, fmt.Errorf("unknown engagement kind %q", kind)
	}
}

func (r *engagementRepository) Has(kind entity.EngagementKind, actorID, targetID string) (bool, error) {
	rel, err := r.relationFor(kind)
	if err != nil {
		return false, err
	}

	var count int64
	err = r.db.Model(rel.row("", "")).
		Where(fmt.Sprintf("%s = ? AND %s = ?", rel.actorCol, rel.targetCol), actorID, targetID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts the membership row. The unique (actor, target) index plus
// ON CONFLICT DO NOTHING makes concurrent duplicate adds collapse into one.
func (r *engagementRepository) Add(kind entity.EngagementKind, actorID, targetID string) error {
	rel, err := r.relationFor(kind)
	if err != nil {
		return err
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(rel.row(actorID, targetID)).Error
}

func (r *engagementRepository) Remove(kind entity.EngagementKind, actorID, targetID string) error {
	rel, err := r.relationFor(kind)
	if err != nil {
		return err
	}
	return r.db.
		Where(fmt.Sprintf("%s = ? AND %s = ?", rel.actorCol, rel.targetCol), actorID, targetID).
		Delete(rel.row("", "")).Error
}

package usecase

import (
	"context"
	"fmt"

	"carhive/internal/entity"
	"carhive/internal/repo/persistent"
	"carhive/pkg/logger"
	"carhive/pkg/queue"

	"github.com/redis/go-redis/v9"
)

// EngagementUseCase is the toggle state machine for like/save/view relations.
type EngagementUseCase interface {
	// Toggle flips or advances membership for (actor, target, kind) and
	// reports whether the set changed. A repeat view is a successful no-op.
	Toggle(kind entity.EngagementKind, actorID, targetID string) (bool, error)
}

// transition is one row of the state machine table: which entity the kind
// targets and whether PRESENT can flip back to ABSENT.
type transition struct {
	target        entity.TargetKind
	bidirectional bool
}

// Likes and saves are reversible preferences; views are append-only history
// and only an explicit deletion path removes them.
var transitions = map[entity.EngagementKind]transition{
	entity.EngagementLike:     {target: entity.TargetPost, bidirectional: true},
	entity.EngagementSave:     {target: entity.TargetPost, bidirectional: true},
	entity.EngagementViewPost: {target: entity.TargetPost, bidirectional: false},
	entity.EngagementViewUser: {target: entity.TargetUser, bidirectional: false},
}

type engagementUseCase struct {
	engagementRepo persistent.EngagementRepository
	postRepo       persistent.PostRepository
	userRepo       persistent.UserRepository
	otherRepo      persistent.OtherRepository
	queueClient    *queue.Client
	redisClient    *redis.Client
	logger         *logger.Logger
}

func NewEngagementUseCase(
	engagementRepo persistent.EngagementRepository,
	postRepo persistent.PostRepository,
	userRepo persistent.UserRepository,
	otherRepo persistent.OtherRepository,
	queueClient *queue.Client,
	redisClient *redis.Client,
	log *logger.Logger,
) EngagementUseCase {
	return &engagementUseCase{
		engagementRepo: engagementRepo,
		postRepo:       postRepo,
		userRepo:       userRepo,
		otherRepo:      otherRepo,
		queueClient:    queueClient,
		redisClient:    redisClient,
		logger:         log,
	}
}

func (uc *engagementUseCase) Toggle(kind entity.EngagementKind, actorID, targetID string) (bool, error) {
	rules, ok := transitions[kind]
	if !ok {
		return false, fmt.Errorf("unknown engagement kind %q", kind)
	}

	// Viewing yourself is not an engagement, and not an error either.
	if kind == entity.EngagementViewUser && actorID == targetID {
		return false, nil
	}

	exists, err := uc.targetExists(rules.target, targetID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, ErrTargetNotFound
	}

	present, err := uc.engagementRepo.Has(kind, actorID, targetID)
	if err != nil {
		return false, err
	}

	if present {
		if !rules.bidirectional {
			return false, nil
		}
		if err := uc.engagementRepo.Remove(kind, actorID, targetID); err != nil {
			return false, err
		}
		uc.invalidatePopular()
		return true, nil
	}

	if err := uc.engagementRepo.Add(kind, actorID, targetID); err != nil {
		return false, err
	}
	uc.invalidatePopular()
	uc.notifyOwner(kind, actorID, targetID)
	return true, nil
}

func (uc *engagementUseCase) targetExists(target entity.TargetKind, id string) (bool, error) {
	if target == entity.TargetUser {
		return uc.userRepo.Exists(id)
	}
	return uc.postRepo.Exists(id)
}

func (uc *engagementUseCase) invalidatePopular() {
	if uc.redisClient == nil {
		return
	}
	if err := uc.redisClient.Incr(context.Background(), popularGenKey).Err(); err != nil {
		uc.logger.Warn("Failed to bump popular feed generation: %v", err)
	}
}

// notifyOwner records a notification for likes and saves on someone else's
// post and hands it to the queue for delivery. Best effort on both counts.
func (uc *engagementUseCase) notifyOwner(kind entity.EngagementKind, actorID, targetID string) {
	if kind != entity.EngagementLike && kind != entity.EngagementSave {
		return
	}

	ownerID, err := uc.postRepo.OwnerOf(targetID)
	if err != nil {
		uc.logger.Warn("Failed to resolve owner of post %s: %v", targetID, err)
		return
	}
	if ownerID == "" || ownerID == actorID {
		return
	}

	notification := &entity.Notification{
		UserID:  ownerID,
		ActorID: actorID,
		PostID:  targetID,
		Kind:    string(kind),
		Message: fmt.Sprintf("your post got a new %s", kind),
	}
	if err := uc.otherRepo.CreateNotification(notification); err != nil {
		uc.logger.Warn("Failed to store notification for post %s: %v", targetID, err)
	}

	if uc.queueClient == nil {
		return
	}
	go func() {
		task := map[string]interface{}{
			"type":     "engagement",
			"kind":     string(kind),
			"actor_id": actorID,
			"post_id":  targetID,
			"owner_id": ownerID,
		}
		if err := uc.queueClient.PublishEngagementTask(task); err != nil {
			uc.logger.Error("Failed to publish engagement task: %v (kind=%s, post_id=%s)", err, kind, targetID)
		}
	}()
}

package services

import (
	"errors"

	"github.com/abdulhameed-s/leveling_tracker/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrTaskNotFound covers both a missing task and a task owned by another
// user.
var ErrTaskNotFound = errors.New("task not found")

const TaskCompletionPoints = 10

// CompleteTask marks a task done and credits a flat point reward plus a
// strength bump, recomputing level and rank. Completing an already-done task
// leaves points unchanged. Returns the user's total points either way.
func CompleteTask(db *gorm.DB, userID, taskID uuid.UUID) (int, error) {
	var points int
	err := db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, "id = ? AND user_id = ?", taskID, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return err
		}

		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return err
		}

		if !task.Completed {
			task.Completed = true
			if err := tx.Save(&task).Error; err != nil {
				return err
			}

			user.Points += TaskCompletionPoints
			user.Strength += 2
			user.Level = LevelForPoints(user.Points)
			user.Rank = RankForPoints(user.Points)
			if err := tx.Save(&user).Error; err != nil {
				return err
			}
		}

		points = user.Points
		return nil
	})
	if err != nil {
		return 0, err
	}
	return points, nil
}

package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/abdulhameed-s/leveling_tracker/database"
	"github.com/abdulhameed-s/leveling_tracker/models"
	"github.com/abdulhameed-s/leveling_tracker/notifications"
)

// SendTaskAlarmReminders emails users whose task alarms fall in the next
// five-minute window. Runs every five minutes so each alarm is seen once.
func SendTaskAlarmReminders() {
	log.Println("Running job: SendTaskAlarmReminders...")

	now := time.Now()
	upperBound := now.Add(5 * time.Minute)

	var dueTasks []models.Task
	err := database.DB.
		Where("completed = ? AND alarm_time IS NOT NULL AND alarm_time BETWEEN ? AND ?", false, now, upperBound).
		Find(&dueTasks).Error
	if err != nil {
		log.Printf("Error checking for due task alarms: %v", err)
		return
	}

	if len(dueTasks) == 0 {
		return
	}

	for _, task := range dueTasks {
		var user models.User
		if err := database.DB.First(&user, "id = ?", task.UserID).Error; err != nil {
			log.Printf("Error loading owner of task %s: %v", task.ID, err)
			continue
		}
		if user.Email == nil {
			continue
		}

		log.Printf("Sending alarm reminder for task ID: %s", task.ID)

		emailSubject := "Reminder: Your Task Is Due!"
		emailBody := fmt.Sprintf(
			"<h1>Task Reminder</h1><p>Hi %s,</p><p>Your task <b>%s</b> is scheduled for %s. Complete it to earn points!</p>",
			user.Username,
			task.Title,
			task.AlarmTime.Format(time.Kitchen),
		)

		go notifications.SendEmail(user.Username, *user.Email, emailSubject, emailBody)
	}
}

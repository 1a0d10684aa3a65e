package services

import (
	"fmt"

	"github.com/abdulhameed-s/leveling_tracker/models"
	"gorm.io/gorm"
)

// rankBands map total points to one of 21 hunter-style rank labels. Bands are
// contiguous and non-overlapping; anything below zero falls through to
// "Unranked".
type rankBand struct {
	Label string
	Low   int
	High  int
}

var rankBands = []rankBand{
	{"E", 0, 99},
	{"E+", 100, 199},
	{"E++", 200, 299},
	{"D", 300, 499},
	{"D+", 500, 699},
	{"D++", 700, 899},
	{"C", 900, 1199},
	{"C+", 1200, 1499},
	{"C++", 1500, 1799},
	{"B", 1800, 2199},
	{"B+", 2200, 2599},
	{"B++", 2600, 2999},
	{"A", 3000, 3499},
	{"A+", 3500, 3999},
	{"A++", 4000, 4499},
	{"S", 4500, 4999},
	{"S+", 5000, 5999},
	{"SS", 6000, 6999},
	{"SS+", 7000, 7999},
	{"SSS", 8000, 8999},
	{"National Rank", 9000, 9999999},
}

func RankForPoints(points int) string {
	for _, band := range rankBands {
		if points >= band.Low && points <= band.High {
			return band.Label
		}
	}
	return "Unranked"
}

// levelThresholds are cumulative point totals; level is 1 plus the number of
// thresholds met or exceeded.
var levelThresholds = []int{50, 150, 300, 500, 750, 1050, 1400, 1800, 2250, 2750}

func LevelForPoints(points int) int {
	level := 1
	for _, threshold := range levelThresholds {
		if points >= threshold {
			level++
		}
	}
	return level
}

type UserStats struct {
	Strength int `json:"strength"`
	Finance  int `json:"finance"`
	Wisdom   int `json:"wisdom"`
	Growth   int `json:"growth"`
	Mental   int `json:"mental"`
}

// CalculateStats derives display stats from points and completion counts.
func CalculateStats(db *gorm.DB, user *models.User) (UserStats, error) {
	base := user.Points

	var completedTasks, completedQuests, studySessions int64
	if err := db.Model(&models.Task{}).Where("user_id = ? AND completed = ?", user.ID, true).Count(&completedTasks).Error; err != nil {
		return UserStats{}, fmt.Errorf("count completed tasks: %w", err)
	}
	if err := db.Model(&models.Quest{}).Where("user_id = ? AND completed = ?", user.ID, true).Count(&completedQuests).Error; err != nil {
		return UserStats{}, fmt.Errorf("count completed quests: %w", err)
	}
	if err := db.Model(&models.StudyLog{}).Where("user_id = ?", user.ID).Count(&studySessions).Error; err != nil {
		return UserStats{}, fmt.Errorf("count study sessions: %w", err)
	}

	return UserStats{
		Strength: base/10 + int(completedTasks)*5,
		Finance:  base/20 + int(studySessions)*3,
		Wisdom:   base/15 + int(completedQuests)*4,
		Growth:   int(completedTasks+studySessions+completedQuests) * 7,
		Mental:   50 + base/30,
	}, nil
}

package services

import (
	"testing"

	"github.com/abdulhameed-s/leveling_tracker/models"
)

func TestRankForPoints(t *testing.T) {
	tests := []struct {
		points int
		want   string
	}{
		{0, "E"},
		{99, "E"},
		{100, "E+"},
		{899, "D++"},
		{900, "C"},
		{2200, "B+"},
		{4500, "S"},
		{8999, "SSS"},
		{9000, "National Rank"},
		{250000, "National Rank"},
		{-5, "Unranked"},
	}

	for _, tt := range tests {
		if got := RankForPoints(tt.points); got != tt.want {
			t.Errorf("RankForPoints(%d) = %q, want %q", tt.points, got, tt.want)
		}
	}
}

func TestLevelForPoints(t *testing.T) {
	tests := []struct {
		points int
		want   int
	}{
		{0, 1},
		{49, 1},
		{50, 2},
		{150, 3},
		{749, 5},
		{750, 6},
		{2749, 10},
		{2750, 11},
		{99999, 11},
	}

	for _, tt := range tests {
		if got := LevelForPoints(tt.points); got != tt.want {
			t.Errorf("LevelForPoints(%d) = %d, want %d", tt.points, got, tt.want)
		}
	}
}

func TestRankBandsAreContiguous(t *testing.T) {
	for i := 1; i < len(rankBands); i++ {
		if rankBands[i].Low != rankBands[i-1].High+1 {
			t.Errorf("gap between %q (ends %d) and %q (starts %d)",
				rankBands[i-1].Label, rankBands[i-1].High, rankBands[i].Label, rankBands[i].Low)
		}
	}
	if rankBands[0].Low != 0 {
		t.Errorf("first band starts at %d, want 0", rankBands[0].Low)
	}
}

func TestCalculateStats(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "hunter")
	if err := db.Model(user).Update("points", 300).Error; err != nil {
		t.Fatalf("seed points: %v", err)
	}

	// Two completed tasks, one completed quest, two study sessions. The
	// incomplete task and quest must not be counted.
	seed := []interface{}{
		&models.Task{UserID: user.ID, Title: "laundry", Completed: true},
		&models.Task{UserID: user.ID, Title: "groceries", Completed: true},
		&models.Task{UserID: user.ID, Title: "taxes"},
		&models.Quest{UserID: user.ID, Title: "Meditate for 10 minutes", Cadence: models.CadenceDaily, XP: 10, Completed: true},
		&models.Quest{UserID: user.ID, Title: "Read 20 pages", Cadence: models.CadenceDaily, XP: 10},
		&models.StudyLog{UserID: user.ID, Subject: "math", Duration: 30},
		&models.StudyLog{UserID: user.ID, Subject: "go", Duration: 45},
	}
	for _, record := range seed {
		if err := db.Create(record).Error; err != nil {
			t.Fatalf("seed record: %v", err)
		}
	}

	var fresh models.User
	if err := db.First(&fresh, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}

	stats, err := CalculateStats(db, &fresh)
	if err != nil {
		t.Fatalf("CalculateStats: %v", err)
	}

	want := UserStats{
		Strength: 300/10 + 2*5, // 40
		Finance:  300/20 + 2*3, // 21
		Wisdom:   300/15 + 1*4, // 24
		Growth:   (2 + 1 + 2) * 7, // 35
		Mental:   50 + 300/30, // 60
	}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/abdulhameed-s/leveling_tracker/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Quest{}, &models.Task{}, &models.StudyLog{}); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB, at time.Time) *QuestService {
	t.Helper()

	service := NewQuestService(db, DefaultQuestConfig())
	service.now = func() time.Time { return at }
	return service
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{Username: username, Password: "hashed", Rank: "E", Level: 1}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return &user
}

func questsByCadence(t *testing.T, db *gorm.DB, userID uuid.UUID, cadence string) []models.Quest {
	t.Helper()

	var quests []models.Quest
	if err := db.Where("user_id = ? AND cadence = ?", userID, cadence).Find(&quests).Error; err != nil {
		t.Fatalf("query quests: %v", err)
	}
	return quests
}

func TestEnsureFreshQuestsFirstCall(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	user := createTestUser(t, db, "hunter")

	found, err := service.EnsureFreshQuests(user.ID)
	if err != nil {
		t.Fatalf("EnsureFreshQuests: %v", err)
	}
	if !found {
		t.Fatal("EnsureFreshQuests reported user missing")
	}

	wantCounts := map[string]int{
		models.CadenceDaily:   3,
		models.CadenceWeekly:  2,
		models.CadenceMonthly: 1,
	}
	for cadence, want := range wantCounts {
		quests := questsByCadence(t, db, user.ID, cadence)
		if len(quests) != want {
			t.Errorf("%s quests = %d, want %d", cadence, len(quests), want)
		}
		for _, quest := range quests {
			if quest.Completed {
				t.Errorf("fresh %s quest %q created completed", cadence, quest.Title)
			}
			if quest.XP <= 0 {
				t.Errorf("fresh %s quest %q has xp %d", cadence, quest.Title, quest.XP)
			}
		}
	}

	var updated models.User
	if err := db.First(&updated, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if updated.LastDailyQuest == nil || updated.LastWeeklyQuest == nil || updated.LastMonthlyQuest == nil {
		t.Error("regeneration timestamps were not stamped")
	}
}

func TestEnsureFreshQuestsImmediateSecondCallIsNoOp(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	user := createTestUser(t, db, "hunter")

	if _, err := service.EnsureFreshQuests(user.ID); err != nil {
		t.Fatalf("first call: %v", err)
	}
	before := questIDs(t, db, user.ID)

	if _, err := service.EnsureFreshQuests(user.ID); err != nil {
		t.Fatalf("second call: %v", err)
	}
	after := questIDs(t, db, user.ID)

	if len(before) != len(after) {
		t.Fatalf("quest count changed: %d -> %d", len(before), len(after))
	}
	for id := range before {
		if !after[id] {
			t.Errorf("quest %s was replaced on an immediate second call", id)
		}
	}
}

func questIDs(t *testing.T, db *gorm.DB, userID uuid.UUID) map[uuid.UUID]bool {
	t.Helper()

	var quests []models.Quest
	if err := db.Where("user_id = ?", userID).Find(&quests).Error; err != nil {
		t.Fatalf("query quests: %v", err)
	}
	ids := make(map[uuid.UUID]bool, len(quests))
	for _, quest := range quests {
		ids[quest.ID] = true
	}
	return ids
}

func TestEnsureFreshQuestsMissingUserIsNoOp(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db, time.Now())

	found, err := service.EnsureFreshQuests(uuid.New())
	if err != nil {
		t.Fatalf("EnsureFreshQuests: %v", err)
	}
	if found {
		t.Error("EnsureFreshQuests reported a nonexistent user as found")
	}

	var count int64
	db.Model(&models.Quest{}).Count(&count)
	if count != 0 {
		t.Errorf("quests created for missing user: %d", count)
	}
}

func TestEnsureFreshQuestsExpiryReplacesOnlyThatCadence(t *testing.T) {
	db := newTestDB(t)
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	service := newTestService(t, db, start)
	user := createTestUser(t, db, "hunter")

	if _, err := service.EnsureFreshQuests(user.ID); err != nil {
		t.Fatalf("initial generation: %v", err)
	}

	dailyBefore := questIDs(t, db, user.ID)
	weeklyBefore := questsByCadence(t, db, user.ID, models.CadenceWeekly)
	monthlyBefore := questsByCadence(t, db, user.ID, models.CadenceMonthly)

	// A day and change later only the daily cadence is due.
	service.now = func() time.Time { return start.Add(24*time.Hour + time.Minute) }
	if _, err := service.EnsureFreshQuests(user.ID); err != nil {
		t.Fatalf("regeneration: %v", err)
	}

	dailyAfter := questsByCadence(t, db, user.ID, models.CadenceDaily)
	if len(dailyAfter) != 3 {
		t.Errorf("daily quests after expiry = %d, want 3", len(dailyAfter))
	}
	for _, quest := range dailyAfter {
		if dailyBefore[quest.ID] {
			t.Errorf("daily quest %s survived regeneration", quest.ID)
		}
	}

	for _, quest := range append(weeklyBefore, monthlyBefore...) {
		var still models.Quest
		if err := db.First(&still, "id = ?", quest.ID).Error; err != nil {
			t.Errorf("%s quest %s was retired by a daily regeneration", quest.Cadence, quest.ID)
		}
	}
}

func TestEnsureFreshQuestsShortPoolDrawsWholePool(t *testing.T) {
	db := newTestDB(t)
	cfg, err := NewQuestConfig(
		map[string]time.Duration{
			models.CadenceDaily:   24 * time.Hour,
			models.CadenceWeekly:  7 * 24 * time.Hour,
			models.CadenceMonthly: 30 * 24 * time.Hour,
		},
		map[string]int{
			models.CadenceDaily:   3,
			models.CadenceWeekly:  2,
			models.CadenceMonthly: 1,
		},
		map[string][]PoolEntry{
			models.CadenceDaily: {{Title: "Only quest"}},
		},
	)
	if err != nil {
		t.Fatalf("NewQuestConfig: %v", err)
	}

	service := NewQuestService(db, cfg)
	service.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	user := createTestUser(t, db, "hunter")

	if _, err := service.EnsureFreshQuests(user.ID); err != nil {
		t.Fatalf("EnsureFreshQuests: %v", err)
	}

	daily := questsByCadence(t, db, user.ID, models.CadenceDaily)
	if len(daily) != 1 {
		t.Fatalf("daily quests = %d, want the whole 1-entry pool", len(daily))
	}
	if daily[0].Title != "Only quest" || daily[0].Category != "General" || daily[0].XP != 10 || daily[0].Difficulty != "Medium" {
		t.Errorf("pool defaults not applied: %+v", daily[0])
	}
}

func TestEnsureFreshQuestsPersonalization(t *testing.T) {
	tests := []struct {
		name      string
		heightCm  float64
		weightKg  float64
		wantTitle string
		wantXP    int
	}{
		{"underweight", 170, 50, "Light Workout", 15},
		{"overweight", 170, 90, "Moderate Cardio", 20},
		{"healthy", 170, 65, "Standard Exercise", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			service := newTestService(t, db, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
			user := createTestUser(t, db, "hunter")
			if err := db.Model(user).Updates(map[string]interface{}{
				"height_cm": tt.heightCm,
				"weight_kg": tt.weightKg,
			}).Error; err != nil {
				t.Fatalf("set biometrics: %v", err)
			}

			if _, err := service.EnsureFreshQuests(user.ID); err != nil {
				t.Fatalf("EnsureFreshQuests: %v", err)
			}

			var quest models.Quest
			err := db.Where("user_id = ? AND title = ? AND cadence = ?", user.ID, tt.wantTitle, models.CadenceDaily).First(&quest).Error
			if err != nil {
				t.Fatalf("personalized quest %q not created: %v", tt.wantTitle, err)
			}
			if quest.XP != tt.wantXP {
				t.Errorf("xp = %d, want %d", quest.XP, tt.wantXP)
			}
			if quest.Category != "Physical" || quest.Difficulty != "Medium" {
				t.Errorf("quest fields = %s/%s, want Physical/Medium", quest.Category, quest.Difficulty)
			}

			// Repeat calls within the same period must not duplicate it.
			if _, err := service.EnsureFreshQuests(user.ID); err != nil {
				t.Fatalf("second EnsureFreshQuests: %v", err)
			}
			var count int64
			db.Model(&models.Quest{}).
				Where("user_id = ? AND title = ? AND cadence = ?", user.ID, tt.wantTitle, models.CadenceDaily).
				Count(&count)
			if count != 1 {
				t.Errorf("personalized quest count = %d, want 1", count)
			}
		})
	}
}

func TestPersonalizedQuestFor(t *testing.T) {
	title, xp := PersonalizedQuestFor(170, 50)
	if title != "Light Workout" || xp != 15 {
		t.Errorf("BMI 17.3 -> %q/%d, want Light Workout/15", title, xp)
	}
	title, xp = PersonalizedQuestFor(170, 90)
	if title != "Moderate Cardio" || xp != 20 {
		t.Errorf("BMI 31.1 -> %q/%d, want Moderate Cardio/20", title, xp)
	}
	title, xp = PersonalizedQuestFor(170, 65)
	if title != "Standard Exercise" || xp != 10 {
		t.Errorf("BMI 22.5 -> %q/%d, want Standard Exercise/10", title, xp)
	}
}

func TestCompleteQuestCreditsXPExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db, time.Now())
	user := createTestUser(t, db, "hunter")

	quest := models.Quest{
		UserID:     user.ID,
		Title:      "Practice coding for 30 minutes",
		Category:   "Academics",
		Cadence:    models.CadenceDaily,
		Difficulty: "Medium",
		XP:         20,
	}
	if err := db.Create(&quest).Error; err != nil {
		t.Fatalf("create quest: %v", err)
	}

	result, err := service.CompleteQuest(user.ID, quest.ID)
	if err != nil {
		t.Fatalf("CompleteQuest: %v", err)
	}
	if result.Points != 20 {
		t.Errorf("points = %d, want 20", result.Points)
	}
	if result.QuestID != quest.ID {
		t.Errorf("quest id = %s, want %s", result.QuestID, quest.ID)
	}

	var reloaded models.Quest
	if err := db.First(&reloaded, "id = ?", quest.ID).Error; err != nil {
		t.Fatalf("reload quest: %v", err)
	}
	if !reloaded.Completed {
		t.Error("quest not marked completed")
	}

	_, err = service.CompleteQuest(user.ID, quest.ID)
	if !errors.Is(err, ErrQuestAlreadyCompleted) {
		t.Fatalf("second completion error = %v, want ErrQuestAlreadyCompleted", err)
	}

	var owner models.User
	if err := db.First(&owner, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if owner.Points != 20 {
		t.Errorf("points after repeat completion = %d, want 20", owner.Points)
	}
}

func TestCompleteQuestForeignQuestIsNotFound(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db, time.Now())
	owner := createTestUser(t, db, "owner")
	intruder := createTestUser(t, db, "intruder")

	quest := models.Quest{
		UserID:  owner.ID,
		Title:   "Read 20 pages of a book",
		Cadence: models.CadenceDaily,
		XP:      15,
	}
	if err := db.Create(&quest).Error; err != nil {
		t.Fatalf("create quest: %v", err)
	}

	_, err := service.CompleteQuest(intruder.ID, quest.ID)
	if !errors.Is(err, ErrQuestNotFound) {
		t.Fatalf("error = %v, want ErrQuestNotFound", err)
	}

	var reloaded models.Quest
	if err := db.First(&reloaded, "id = ?", quest.ID).Error; err != nil {
		t.Fatalf("reload quest: %v", err)
	}
	if reloaded.Completed {
		t.Error("foreign completion attempt mutated the quest")
	}

	var reloadedOwner models.User
	if err := db.First(&reloadedOwner, "id = ?", owner.ID).Error; err != nil {
		t.Fatalf("reload owner: %v", err)
	}
	if reloadedOwner.Points != 0 {
		t.Errorf("owner points = %d, want 0", reloadedOwner.Points)
	}
}

func TestCompleteQuestUnknownIDIsNotFound(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db, time.Now())
	user := createTestUser(t, db, "hunter")

	_, err := service.CompleteQuest(user.ID, uuid.New())
	if !errors.Is(err, ErrQuestNotFound) {
		t.Fatalf("error = %v, want ErrQuestNotFound", err)
	}
}

func TestCompleteQuestRecomputesLevelAndRank(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db, time.Now())
	user := createTestUser(t, db, "hunter")
	if err := db.Model(user).Update("points", 90).Error; err != nil {
		t.Fatalf("seed points: %v", err)
	}

	quest := models.Quest{
		UserID:  user.ID,
		Title:   "Meditate for 10 minutes",
		Cadence: models.CadenceDaily,
		XP:      20,
	}
	if err := db.Create(&quest).Error; err != nil {
		t.Fatalf("create quest: %v", err)
	}

	result, err := service.CompleteQuest(user.ID, quest.ID)
	if err != nil {
		t.Fatalf("CompleteQuest: %v", err)
	}
	if result.Points != 110 {
		t.Errorf("points = %d, want 110", result.Points)
	}
	if result.Level != 2 {
		t.Errorf("level = %d, want 2", result.Level)
	}
	if result.Rank != "E+" {
		t.Errorf("rank = %q, want E+", result.Rank)
	}
	if !result.RankedUp {
		t.Error("crossing from E into E+ did not report a rank-up")
	}
	if result.LeveledUp {
		t.Error("level was already 2 before completion, should not report a level-up")
	}
}

func TestCompleteQuestReportsLevelUpWithoutRankUp(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db, time.Now())
	user := createTestUser(t, db, "hunter")
	if err := db.Model(user).Update("points", 40).Error; err != nil {
		t.Fatalf("seed points: %v", err)
	}

	quest := models.Quest{
		UserID:  user.ID,
		Title:   "Read 20 pages",
		Cadence: models.CadenceDaily,
		XP:      20,
	}
	if err := db.Create(&quest).Error; err != nil {
		t.Fatalf("create quest: %v", err)
	}

	// 40 -> 60 points crosses the first level threshold but stays inside
	// rank E.
	result, err := service.CompleteQuest(user.ID, quest.ID)
	if err != nil {
		t.Fatalf("CompleteQuest: %v", err)
	}
	if result.Level != 2 {
		t.Errorf("level = %d, want 2", result.Level)
	}
	if !result.LeveledUp {
		t.Error("crossing 50 points did not report a level-up")
	}
	if result.Rank != "E" {
		t.Errorf("rank = %q, want E", result.Rank)
	}
	if result.RankedUp {
		t.Error("rank stayed E, should not report a rank-up")
	}
}

func TestListQuests(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db, time.Now())
	user := createTestUser(t, db, "hunter")

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	seed := []models.Quest{
		{UserID: user.ID, Title: "oldest", Cadence: models.CadenceDaily, XP: 10, CreatedAt: base},
		{UserID: user.ID, Title: "middle", Cadence: models.CadenceWeekly, XP: 10, CreatedAt: base.Add(time.Hour)},
		{UserID: user.ID, Title: "newest", Cadence: models.CadenceDaily, XP: 10, CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed quest: %v", err)
		}
	}

	all, err := service.ListQuests(user.ID, "")
	if err != nil {
		t.Fatalf("ListQuests: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("quests = %d, want 3", len(all))
	}
	if all[0].Title != "newest" || all[2].Title != "oldest" {
		t.Errorf("quests not ordered newest first: %s, %s, %s", all[0].Title, all[1].Title, all[2].Title)
	}

	daily, err := service.ListQuests(user.ID, models.CadenceDaily)
	if err != nil {
		t.Fatalf("ListQuests daily: %v", err)
	}
	if len(daily) != 2 {
		t.Errorf("daily quests = %d, want 2", len(daily))
	}
	for _, quest := range daily {
		if quest.Cadence != models.CadenceDaily {
			t.Errorf("cadence filter leaked a %s quest", quest.Cadence)
		}
	}

	none, err := service.ListQuests(uuid.New(), "")
	if err != nil {
		t.Fatalf("ListQuests for unknown user: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("unknown user quests = %d, want 0", len(none))
	}
}

func TestSamplePool(t *testing.T) {
	pool := []PoolEntry{
		{Title: "a"}, {Title: "b"}, {Title: "c"}, {Title: "d"},
	}

	drawn := samplePool(pool, 2)
	if len(drawn) != 2 {
		t.Fatalf("drawn = %d, want 2", len(drawn))
	}
	seen := map[string]bool{}
	for _, entry := range drawn {
		if seen[entry.Title] {
			t.Errorf("entry %q drawn twice", entry.Title)
		}
		seen[entry.Title] = true
	}

	whole := samplePool(pool, 10)
	if len(whole) != len(pool) {
		t.Errorf("short pool draw = %d, want %d", len(whole), len(pool))
	}
}

package feed

import (
	"fmt"
	"sort"
	"time"

	"github.com/sistersync/sistersync-backend/internal/models"
	"gorm.io/gorm"
)

// feedCap bounds the shared feed; only the freshest items survive.
const feedCap = 20

// waterMilestoneLiters is the intake that earns a hydration feed item.
const waterMilestoneLiters = 2.0

type FeedItem struct {
	ID          string    `json:"id"`
	User        string    `json:"user"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Date        string    `json:"date"`
}

type FeedService struct {
	db *gorm.DB
}

func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{db: db}
}

// GetFeed assembles the cross-user feed: logged meals, hydration milestones,
// and badge unlocks, newest first, capped. Eventually consistent by design;
// clients refetch on hub events rather than merging.
func (s *FeedService) GetFeed() ([]FeedItem, error) {
	items := make([]FeedItem, 0, feedCap*2)

	type mealRow struct {
		ID          string
		Type        string
		Description string
		CreatedAt   time.Time
		UserName    string
		Date        string
	}
	var meals []mealRow
	err := s.db.Table("meals").
		Select("meals.id, meals.type, meals.description, meals.created_at, daily_logs.user_name, daily_logs.date").
		Joins("JOIN daily_logs ON daily_logs.id = meals.log_id").
		Order("meals.created_at DESC").
		Limit(feedCap).
		Scan(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meal feed: %w", err)
	}
	for _, m := range meals {
		items = append(items, FeedItem{
			ID:          m.ID,
			User:        m.UserName,
			Type:        "meal",
			Title:       fmt.Sprintf("%s logged %s", m.UserName, m.Type),
			Description: m.Description,
			Timestamp:   m.CreatedAt,
			Date:        m.Date,
		})
	}

	type waterRow struct {
		ID        string
		UserName  string
		Date      string
		UpdatedAt time.Time
	}
	var waters []waterRow
	err = s.db.Table("daily_logs").
		Select("id, user_name, date, updated_at").
		Where("water >= ?", waterMilestoneLiters).
		Order("updated_at DESC").
		Limit(feedCap).
		Scan(&waters).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch water milestones: %w", err)
	}
	for _, w := range waters {
		items = append(items, FeedItem{
			ID:          "water-" + w.ID,
			User:        w.UserName,
			Type:        "milestone",
			Title:       fmt.Sprintf("%s hit 2L water!", w.UserName),
			Description: "Hydration goal achieved",
			Timestamp:   w.UpdatedAt,
			Date:        w.Date,
		})
	}

	var achievements []models.SharedAchievement
	err = s.db.Order("unlocked_at DESC").Limit(feedCap).Find(&achievements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch achievements: %w", err)
	}
	for _, a := range achievements {
		items = append(items, FeedItem{
			ID:          a.ID.String(),
			User:        a.UserName,
			Type:        "badge",
			Title:       fmt.Sprintf("%s earned a badge", a.UserName),
			Description: a.Description,
			Timestamp:   a.UnlockedAt,
			Date:        a.UnlockedAt.Format("2006-01-02"),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	if len(items) > feedCap {
		items = items[:feedCap]
	}

	return items, nil
}

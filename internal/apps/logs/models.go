package logs

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DailyLog is the per-user, per-date aggregate. At most one row exists per
// (user_name, date); it is created lazily on first write for that date.
// CaloriesConsumed and CaloriesBurned are derived caches, always recomputed
// as exact sums over children, never incremented in place.
type DailyLog struct {
	ID               uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserName         string                      `gorm:"size:50;not null;uniqueIndex:idx_daily_logs_user_date" json:"user_name"`
	Date             string                      `gorm:"size:10;not null;uniqueIndex:idx_daily_logs_user_date" json:"date"`
	Water            float64                     `gorm:"default:0" json:"water"`
	Steps            int                         `gorm:"default:0" json:"steps"`
	Mood             string                      `gorm:"size:50" json:"mood"`
	FlowLevel        string                      `gorm:"size:20" json:"flow_level"`
	Symptoms         datatypes.JSONSlice[string] `json:"symptoms"`
	SugarCravings    string                      `gorm:"size:10;default:'None'" json:"sugar_cravings"`
	Waist            *float64                    `json:"waist"`
	Weight           *float64                    `json:"weight"`
	CycleDay         *int                        `json:"cycle_day"`
	IsPeriod         bool                        `gorm:"default:false" json:"is_period"`
	IsSick           bool                        `gorm:"default:false" json:"is_sick"`
	SickNotes        string                      `gorm:"type:text" json:"sick_notes"`
	CaloriesConsumed int                         `gorm:"default:0" json:"calories_consumed"`
	CaloriesBurned   int                         `gorm:"default:0" json:"calories_burned"`
	CalorieTarget    int                         `gorm:"default:1500" json:"calorie_target"`
	Meals            []Meal                      `gorm:"foreignKey:LogID;constraint:OnDelete:CASCADE" json:"meals"`
	Activities       []Activity                  `gorm:"foreignKey:LogID;constraint:OnDelete:CASCADE" json:"activities"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

type Meal struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LogID       uuid.UUID `gorm:"type:uuid;not null;index" json:"log_id"`
	Type        string    `gorm:"size:20;not null" json:"type"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Calories    int       `gorm:"default:0" json:"calories"`
	HasRice     bool      `gorm:"default:false" json:"has_rice"`
	IsNonVeg    bool      `gorm:"default:false" json:"is_non_veg"`
	CreatedAt   time.Time `json:"created_at"`
}

type Activity struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LogID          uuid.UUID `gorm:"type:uuid;not null;index" json:"log_id"`
	Type           string    `gorm:"size:50;not null" json:"type"`
	DurationMins   int       `gorm:"default:0" json:"duration_mins"`
	CaloriesBurned int       `gorm:"default:0" json:"calories_burned"`
	CreatedAt      time.Time `json:"created_at"`
}

var MealTypes = []string{"Breakfast", "Lunch", "Dinner", "Snack"}

var CravingLevels = []string{"None", "Low", "Medium", "High"}

// --- DTOs ---

// SaveLogRequest is a partial update: nil fields are left untouched.
type SaveLogRequest struct {
	Water         *float64  `json:"water"`
	Steps         *int      `json:"steps"`
	Mood          *string   `json:"mood"`
	FlowLevel     *string   `json:"flow_level"`
	Symptoms      *[]string `json:"symptoms"`
	SugarCravings *string   `json:"sugar_cravings"`
	Waist         *float64  `json:"waist"`
	Weight        *float64  `json:"weight"`
	CycleDay      *int      `json:"cycle_day"`
	IsPeriod      *bool     `json:"is_period"`
	IsSick        *bool     `json:"is_sick"`
	SickNotes     *string   `json:"sick_notes"`
	CalorieTarget *int      `json:"calorie_target"`
}

type AddMealRequest struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	HasRice     bool   `json:"has_rice"`
	IsNonVeg    bool   `json:"is_non_veg"`
}

type UpdateMealRequest struct {
	Type        *string `json:"type"`
	Description *string `json:"description"`
	HasRice     *bool   `json:"has_rice"`
	IsNonVeg    *bool   `json:"is_non_veg"`
}

type AddActivityRequest struct {
	Type         string `json:"type"`
	DurationMins int    `json:"duration_mins"`
}

type UpdateActivityRequest struct {
	Type         *string `json:"type"`
	DurationMins *int    `json:"duration_mins"`
}

type HistoryResponse struct {
	Logs []DailyLog `json:"logs"`
	Days int        `json:"days"`
}

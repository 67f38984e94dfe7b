package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// QuickTags are the preset tags offered per journal category. Custom tags are free-form.
var QuickTags = map[string][]string{
	"activities": {"strength_training", "running", "walking", "dog_walk", "hiking", "disc_golf", "hooverball", "cooking"},
	"social":     {"date_night", "friends", "family", "phone_call", "new_connection", "group_activity", "party", "networking"},
	"education":  {"reading", "online_course", "textbook", "video", "podcast", "studying"},
	"mood":       {"productive", "energized", "focused", "relaxed", "stressed", "tired"},
}

const (
	MinJournalScore = 1
	MaxJournalScore = 10
)

// JournalEntry is a user's daily log: free text, two optional scores and tags.
type JournalEntry struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uix_journal_user_date" json:"user_id"`
	Date              string    `gorm:"type:varchar(10);not null;uniqueIndex:uix_journal_user_date" json:"date"`
	Content           string    `gorm:"type:text;not null" json:"content"`
	Summary           *string   `gorm:"type:text" json:"summary,omitempty"`
	DayScore          *int      `gorm:"type:smallint" json:"day_score,omitempty"`
	ProductivityScore *int      `gorm:"type:smallint" json:"productivity_score,omitempty"`
	Activities        []string  `gorm:"type:jsonb;serializer:json" json:"activities"`
	Social            []string  `gorm:"type:jsonb;serializer:json" json:"social"`
	Education         []string  `gorm:"type:jsonb;serializer:json" json:"education"`
	Mood              []string  `gorm:"type:jsonb;serializer:json" json:"mood"`
	CustomTags        []string  `gorm:"type:jsonb;serializer:json" json:"custom_tags"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}

// Markdown renders the entry as a dated document with a tag section per non-empty category.
func (e *JournalEntry) Markdown() string {
	return renderMarkdown(e.Date, e.Content, []tagSection{
		{"activities", e.Activities},
		{"social", e.Social},
		{"education", e.Education},
		{"mood", e.Mood},
		{"custom_tags", e.CustomTags},
	})
}

// Reflection is a longer-form note on a date, tagged with themes.
type Reflection struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uix_reflection_user_date" json:"user_id"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:uix_reflection_user_date" json:"date"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Themes    []string  `gorm:"type:jsonb;serializer:json" json:"themes"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Reflection) TableName() string {
	return "reflections"
}

func (r *Reflection) Markdown() string {
	return renderMarkdown(r.Date, r.Content, []tagSection{{"themes", r.Themes}})
}

type tagSection struct {
	name string
	tags []string
}

func renderMarkdown(date, content string, sections []tagSection) string {
	var b strings.Builder
	b.WriteString("# " + date + "\n\n")
	b.WriteString(content + "\n\n")

	var filled []tagSection
	for _, s := range sections {
		if len(s.tags) > 0 {
			filled = append(filled, s)
		}
	}
	if len(filled) == 0 {
		return b.String()
	}

	b.WriteString("\n## Tags\n")
	for _, s := range filled {
		b.WriteString("\n### " + titleWords(s.name) + "\n")
		b.WriteString(strings.Join(s.tags, ", ") + "\n")
	}
	return b.String()
}

// titleWords turns "custom_tags" into "Custom Tags".
func titleWords(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// JournalDirection selects the neighbouring reflection when navigating by date.
type JournalDirection string

const (
	DirectionPrev JournalDirection = "prev"
	DirectionNext JournalDirection = "next"
)

// PutJournalEntryRequest is the request body for writing a day's journal entry.
type PutJournalEntryRequest struct {
	Content           string   `json:"content" validate:"required,max=20000"`
	Summary           *string  `json:"summary,omitempty" validate:"omitempty,max=1000"`
	DayScore          *int     `json:"day_score,omitempty" validate:"omitempty,min=1,max=10"`
	ProductivityScore *int     `json:"productivity_score,omitempty" validate:"omitempty,min=1,max=10"`
	Activities        []string `json:"activities" validate:"dive,oneof=strength_training running walking dog_walk hiking disc_golf hooverball cooking"`
	Social            []string `json:"social" validate:"dive,oneof=date_night friends family phone_call new_connection group_activity party networking"`
	Education         []string `json:"education" validate:"dive,oneof=reading online_course textbook video podcast studying"`
	Mood              []string `json:"mood" validate:"dive,oneof=productive energized focused relaxed stressed tired"`
	CustomTags        []string `json:"custom_tags" validate:"max=20,dive,required,max=50"`
}

// PutReflectionRequest is the request body for writing a reflection.
type PutReflectionRequest struct {
	Content string   `json:"content" validate:"required,max=50000"`
	Themes  []string `json:"themes" validate:"max=20,dive,required,max=50"`
}

// JournalTagsResponse lists the preset tags and score bounds for clients.
type JournalTagsResponse struct {
	QuickTags map[string][]string `json:"quick_tags"`
	MinScore  int                 `json:"min_score"`
	MaxScore  int                 `json:"max_score"`
}

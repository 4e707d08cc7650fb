// Package domain defines core domain types, constants, and validation for the
// sermonscribe engine. It acts as the validation gate at pipeline entry points.
package domain

import "time"

// Transcript is a stored video transcript with its metadata.
type Transcript struct {
	ID         int64     `json:"id"`
	VideoID    string    `json:"video_id"`
	Title      string    `json:"title"`
	Transcript string    `json:"transcript"`
	AISummary  string    `json:"ai_summary,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// VideoRef identifies a stored video without its transcript body.
type VideoRef struct {
	ID      int64  `json:"id"`
	VideoID string `json:"video_id"`
	Title   string `json:"title"`
}

// Cue is a single timed caption line.
type Cue struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// PersonalStory is an illustrative story extracted from a sermon.
type PersonalStory struct {
	ID      int64  `json:"id,omitempty"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Message string `json:"message"`
}

// CategoryType identifies one of the three fixed sermon category axes.
type CategoryType string

const (
	CategoryChristianLife  CategoryType = "christian_life"
	CategoryChurchMinistry CategoryType = "church_ministry"
	CategoryTheology       CategoryType = "theology"
)

// CategoryTypes lists all category axes in canonical order.
var CategoryTypes = []CategoryType{
	CategoryChristianLife, CategoryChurchMinistry, CategoryTheology,
}

// CategorySet holds the categories assigned to a transcript, one slice per axis.
type CategorySet struct {
	ChristianLife  []string `json:"christian_life"`
	ChurchMinistry []string `json:"church_ministry"`
	Theology       []string `json:"theology"`
}

// Empty reports whether no categories are assigned on any axis.
func (c CategorySet) Empty() bool {
	return len(c.ChristianLife) == 0 && len(c.ChurchMinistry) == 0 && len(c.Theology) == 0
}

// Fixed category vocabularies. AI-assigned categories outside these lists
// are discarded during validation.
var (
	ChristianLifeCategories = []string{
		"Abortion", "Adoption", "Anxiety", "Community", "Dating", "Depression",
		"Family", "Forgiveness", "Friendship", "Generosity", "Marriage", "Money",
		"Parenting", "Prayer", "Suffering", "Work",
	}
	ChurchMinistryCategories = []string{
		"Baptism", "Church", "Communion", "Discipleship", "Evangelism",
		"Leadership", "Membership", "Missions", "Preaching", "Worship",
	}
	TheologyCategories = []string{
		"Creation", "Faith", "Grace", "Heaven", "Hell", "Jesus", "Salvation",
		"Sin", "The Bible", "The Gospel", "The Holy Spirit", "The Trinity",
	}
)

// VocabularyFor returns the fixed vocabulary for a category type, nil for unknown.
func VocabularyFor(ct CategoryType) []string {
	switch ct {
	case CategoryChristianLife:
		return ChristianLifeCategories
	case CategoryChurchMinistry:
		return ChurchMinistryCategories
	case CategoryTheology:
		return TheologyCategories
	default:
		return nil
	}
}

package model

import "time"

// CreatedAtLayout is the fixed UTC timestamp format stored on news items.
const CreatedAtLayout = "2006-01-02 15:04 UTC"

// NowUTC formats the current time in the stored timestamp format.
func NowUTC() string {
	return time.Now().UTC().Format(CreatedAtLayout)
}

// NewsItem is a published news entry. FakeScore is frozen at creation time
// and never recomputed; retention decisions read the stored value.
type NewsItem struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Author    string  `json:"author,omitempty"`
	Content   string  `json:"content"`
	Image     string  `json:"image,omitempty"`
	Audio     string  `json:"audio,omitempty"`
	CreatedAt string  `json:"created_at"`
	FakeScore float64 `json:"fake_score"`
}

// Submission is a candidate item before it has passed moderation.
// Image and Audio name files already staged in the upload store.
type Submission struct {
	Title   string
	Author  string
	Content string
	Image   string
	Audio   string
}

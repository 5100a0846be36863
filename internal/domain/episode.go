package domain

import (
	"fmt"
	"time"
)

// Episode describes a playable episode. The player only passes it through
// to the thumbnail preview.
type Episode struct {
	ID           string
	Title        string
	Description  string
	SeriesTitle  string
	Duration     time.Duration
	ThumbnailURL string
}

// DisplayTitle returns "Series - Title" when the series is known
func (e Episode) DisplayTitle() string {
	if e.SeriesTitle == "" {
		return e.Title
	}
	return fmt.Sprintf("%s - %s", e.SeriesTitle, e.Title)
}

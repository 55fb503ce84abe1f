package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkReactionOnset BookmarkType = "reaction_onset"
	BookmarkHalfReacted   BookmarkType = "half_reacted"
	BookmarkFullyReacted  BookmarkType = "fully_reacted"
	BookmarkRateSpike     BookmarkType = "rate_spike"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        uint64       `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects reaction milestones across stats windows.
// Milestones fire once per population; a window containing a reset
// re-arms them.
type BookmarkDetector struct {
	// Rolling history of newly reacted particles per window (circular buffer)
	history     []int
	historySize int
	historyIdx  int
	historyFull bool

	prevReacted int
	onset       bool
	half        bool
	full        bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]int, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	if stats.Resets > 0 {
		bd.rearm()
	}
	var bookmarks []Bookmark

	newly := stats.Reacted - bd.prevReacted
	if newly < 0 {
		newly = 0
	}

	if !bd.onset && stats.Reacted > 0 {
		bd.onset = true
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkReactionOnset,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("First products at temperature %d", stats.Temperature),
		})
	}

	if b := bd.checkRateSpike(stats, newly); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if !bd.half && stats.ReactedFraction >= 0.5 {
		bd.half = true
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkHalfReacted,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d of %d particles reacted", stats.Reacted, stats.Concentration),
		})
	}

	if !bd.full && stats.Concentration > 0 && stats.Reacted == stats.Concentration {
		bd.full = true
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkFullyReacted,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("All %d particles reacted", stats.Concentration),
		})
	}

	bd.addToHistory(newly)
	bd.prevReacted = stats.Reacted
	return bookmarks
}

func (bd *BookmarkDetector) rearm() {
	bd.historyIdx = 0
	bd.historyFull = false
	bd.prevReacted = 0
	bd.onset, bd.half, bd.full = false, false, false
}

func (bd *BookmarkDetector) addToHistory(newly int) {
	bd.history[bd.historyIdx] = newly
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []int {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkRateSpike fires when a window produces more than twice the rolling
// average of new products.
func (bd *BookmarkDetector) checkRateSpike(stats WindowStats, newly int) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(newly) > avg*2.0 && newly >= 3 {
		return &Bookmark{
			Type:        BookmarkRateSpike,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d new products is %.1fx average (%.2f)", newly, float64(newly)/avg, avg),
		}
	}
	return nil
}

// ABOUTME: Merges feed-sourced and diary-sourced Film lists into one list without duplicates
// ABOUTME: Matches by normalized title plus watched date since the two sources use unrelated IDs

package reconcile

import (
	"strings"

	"github.com/harper/letterboxd2notion/internal/models"
	"github.com/harper/letterboxd2notion/internal/timeutil"
)

// Key identifies one viewing across sources. Films without a watched date
// have no key.
func Key(f models.Film) (string, bool) {
	if f.WatchedDate == nil {
		return "", false
	}
	return NormalizeTitle(f.Title) + "|" + f.WatchedDate.Format(timeutil.DateLayout), true
}

// NormalizeTitle case-folds and collapses whitespace.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}

// Merge returns the feed films, in order, followed by the diary films that
// match no feed film. A feed film absorbs at most one diary viewing: a
// missing rating is filled from it and rewatch is OR-ed. Years must agree
// when both sides know them.
func Merge(feed, diary []models.Film) []models.Film {
	byKey := make(map[string][]int, len(feed))
	out := make([]models.Film, 0, len(feed)+len(diary))
	for _, f := range feed {
		if k, ok := Key(f); ok {
			byKey[k] = append(byKey[k], len(out))
		}
		out = append(out, f)
	}

	claimed := make([]bool, len(out))
	for _, d := range diary {
		idx, ok := match(out, byKey, claimed, d)
		if !ok {
			out = append(out, d)
			continue
		}
		claimed[idx] = true
		out[idx] = absorb(out[idx], d)
	}
	return out
}

func match(films []models.Film, byKey map[string][]int, claimed []bool, d models.Film) (int, bool) {
	k, ok := Key(d)
	if !ok {
		return 0, false
	}
	for _, idx := range byKey[k] {
		if claimed[idx] {
			continue
		}
		f := films[idx]
		if f.Year != 0 && d.Year != 0 && f.Year != d.Year {
			continue
		}
		return idx, true
	}
	return 0, false
}

// absorb fills gaps in the feed record from its diary twin.
func absorb(feed, diary models.Film) models.Film {
	out := feed
	if out.Rating == nil && diary.Rating != nil {
		r := *diary.Rating
		out.Rating = &r
	}
	out.Rewatch = feed.Rewatch || diary.Rewatch
	return out
}

package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"scorebot/models"
)

// ItemType selects which kind of items a ranking pass keeps. A mixed list is
// never produced in one pass.
type ItemType string

const (
	// ItemTypeUsers keeps only Slack user IDs
	ItemTypeUsers ItemType = "users"
	// ItemTypeThings keeps only free-text items
	ItemTypeThings ItemType = "things"
)

var userIDPattern = regexp.MustCompile(`U[A-Z0-9]+`)

// IsUserID reports whether an item is a Slack user ID rather than a
// free-text "thing".
func IsUserID(item string) bool {
	return userIDPattern.MatchString(item)
}

// MaybeLinkItem wraps user IDs in Slack's mrkdwn mention syntax; free-text
// items pass through unchanged.
func MaybeLinkItem(item string) string {
	if IsUserID(item) {
		return "<@" + item + ">"
	}
	return item
}

// PointsLabel formats a score with the correct singular/plural noun.
func PointsLabel(score int) string {
	if score == 1 || score == -1 {
		return fmt.Sprintf("%d point", score)
	}
	return fmt.Sprintf("%d points", score)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// competitionRanks assigns competition ("dense with gaps") ranks to a list
// already sorted by score descending: tied items share a rank, and the rank
// after a tie equals the number of items ranked so far plus one.
func competitionRanks(scores []models.ScoreCount) []int {
	ranks := make([]int, len(scores))
	lastScore := 0
	lastRank := 0

	for i, sc := range scores {
		rank := i + 1
		if i > 0 && sc.Score == lastScore {
			rank = lastRank
		}
		ranks[i] = rank
		lastRank = rank
		lastScore = sc.Score
	}

	return ranks
}

func filterByType(scores []models.ScoreCount, itemType ItemType) []models.ScoreCount {
	var out []models.ScoreCount
	for _, sc := range scores {
		if IsUserID(sc.Item) == (itemType == ItemTypeUsers) {
			out = append(out, sc)
		}
	}
	return out
}

// RankItemsSlack renders the ranked list as compact chat lines, e.g.
// "1. Jane [54 points] :muscle:". The winning line carries a marker that
// differs for users and things.
func RankItemsSlack(scores []models.ScoreCount, itemType ItemType) []string {
	kept := filterByType(scores, itemType)
	ranks := competitionRanks(kept)

	var lines []string
	for i, sc := range kept {
		item := MaybeLinkItem(sc.Item)
		line := fmt.Sprintf("%d. %s [%s]", ranks[i], titleCase(item), PointsLabel(sc.Score))

		if i == 0 {
			if IsUserID(sc.Item) {
				line += " :muscle:"
			} else {
				line += " :tada:"
			}
		}

		lines = append(lines, line)
	}

	return lines
}

// RankItems renders the ranked list as structured records for programmatic
// consumers, resolving user IDs to display names through the gateway.
func RankItems(ctx context.Context, scores []models.ScoreCount, itemType ItemType, gateway PlatformGateway) []models.RankedItem {
	kept := filterByType(scores, itemType)
	ranks := competitionRanks(kept)

	var items []models.RankedItem
	for i, sc := range kept {
		item := sc.Item
		if IsUserID(item) {
			item = gateway.ResolveDisplayName(ctx, item)
		}

		items = append(items, models.RankedItem{
			Rank:   ranks[i],
			Item:   titleCase(item),
			Score:  PointsLabel(sc.Score),
			ItemID: sc.Item,
		})
	}

	return items
}

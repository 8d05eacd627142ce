// Package service implements the application's business logic, including
// the feed ranking engine.
package service

import (
	"time"

	"smashboard/internal/models"
)

// Engagement weights for the hotness score. Comments weigh more than likes
// because they signal active discussion; views are a weak tie-breaker.
const (
	likeWeight    = 2.0
	commentWeight = 3.0
	viewWeight    = 0.1

	// decayWindowHours is how long freshness contributes to a post's score.
	// After a week the time factor bottoms out at zero and the post competes
	// on engagement alone.
	decayWindowHours = 168.0
)

// TimeFactor returns the freshness multiplier component for a post created
// at the given time: 1 when brand new, linearly decaying to 0 at one week,
// and clamped to [0, 1] after that.
func TimeFactor(createdAt, now time.Time) float64 {
	ageHours := now.Sub(createdAt).Hours()
	factor := 1 - ageHours/decayWindowHours
	if factor < 0 {
		return 0
	}
	if factor > 1 {
		return 1
	}
	return factor
}

// HotScore computes the hotness of a post at the given instant:
//
//	(likes*2 + comments*3 + views*0.1) * (1 + timeFactor)
//
// A week-old post keeps exactly its raw engagement score; a brand-new post
// scores double.
func HotScore(post *models.Post, now time.Time) float64 {
	engagement := float64(post.LikeCount)*likeWeight +
		float64(post.CommentCount)*commentWeight +
		float64(post.ViewCount)*viewWeight
	return engagement * (1 + TimeFactor(post.CreatedAt, now))
}

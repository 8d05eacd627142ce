package service

import (
	"context"
	"sort"
	"time"

	"smashboard/internal/models"
	"smashboard/internal/observability"
	"smashboard/internal/repository"
)

// Affinity weights by engagement channel. Liking a post signals more
// interest in its tags than merely having authored one.
const (
	affinityLikeWeight     = 3.0
	affinityBookmarkWeight = 2.0
	affinityAuthorWeight   = 1.0
)

// Ranker blend. Components are normalized into [0,1] before weighting.
const (
	tagComponentWeight     = 0.40
	similarComponentWeight = 0.30
	hotComponentWeight     = 0.20
	timeComponentWeight    = 0.10

	tagScoreDivisor     = 30.0
	hotScoreDivisor     = 100.0
	perSimilarUserScore = 0.1

	// similarUserPool caps how many similar users the ranker consults when
	// scoring candidates.
	similarUserPool = 10
)

// RecommendService computes personalized feeds from relationship data.
// Every operation is read-only; scores are recomputed on demand.
type RecommendService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	now      func() time.Time
}

// NewRecommendService creates a new recommendation service. The clock
// defaults to time.Now and is injectable for tests.
func NewRecommendService(userRepo repository.UserRepository, postRepo repository.PostRepository) *RecommendService {
	return &RecommendService{
		userRepo: userRepo,
		postRepo: postRepo,
		now:      time.Now,
	}
}

// TagAffinity accumulates per-tag interest weights from the user's liked,
// bookmarked, and authored posts. A user with no activity gets an empty map.
func (s *RecommendService) TagAffinity(ctx context.Context, userID uint) (map[uint]float64, error) {
	defer observability.ObserveStage("tag_affinity", time.Now())

	affinity := make(map[uint]float64)

	liked, err := s.postRepo.ListLikedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, post := range liked {
		for _, tag := range post.Tags {
			affinity[tag.ID] += affinityLikeWeight
		}
	}

	bookmarked, err := s.postRepo.ListBookmarkedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, post := range bookmarked {
		for _, tag := range post.Tags {
			affinity[tag.ID] += affinityBookmarkWeight
		}
	}

	authored, err := s.postRepo.ListByAuthor(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	for _, post := range authored {
		for _, tag := range post.Tags {
			affinity[tag.ID] += affinityAuthorWeight
		}
	}

	return affinity, nil
}

// SimilarUsers ranks other users by two additive signals: +1 for each
// shared follow target's follower, +1 for each co-liked post. The subject
// is excluded from both signals. Ties break by id ascending so the order
// is deterministic.
func (s *RecommendService) SimilarUsers(ctx context.Context, userID uint, limit int) ([]*models.User, error) {
	defer observability.ObserveStage("similar_users", time.Now())

	ids, err := s.similarUserIDs(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// GetByIDs does not preserve order; restore the ranked order.
	byID := make(map[uint]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	ranked := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			ranked = append(ranked, u)
		}
	}
	return ranked, nil
}

func (s *RecommendService) similarUserIDs(ctx context.Context, userID uint, limit int) ([]uint, error) {
	scores := make(map[uint]float64)

	followingIDs, err := s.userRepo.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	peers, err := s.userRepo.FollowersOf(ctx, followingIDs)
	if err != nil {
		return nil, err
	}
	for _, edge := range peers {
		if edge.FollowerID != userID {
			scores[edge.FollowerID]++
		}
	}

	likedIDs, err := s.postRepo.LikedPostIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	coLikes, err := s.postRepo.LikersForPosts(ctx, likedIDs)
	if err != nil {
		return nil, err
	}
	for _, like := range coLikes {
		if like.UserID != userID {
			scores[like.UserID]++
		}
	}

	ids := make([]uint, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if scores[ids[i]] != scores[ids[j]] {
			return scores[ids[i]] > scores[ids[j]]
		}
		return ids[i] < ids[j]
	})

	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

// HotPosts scores every non-draft post and returns the hottest first. The
// full set is sorted in memory because the decay formula cannot be pushed
// into a store-level ORDER BY. Ties break by id ascending.
func (s *RecommendService) HotPosts(ctx context.Context, limit int) ([]*models.Post, error) {
	defer observability.ObserveStage("hot_posts", time.Now())

	posts, err := s.postRepo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()

	sort.Slice(posts, func(i, j int) bool {
		si, sj := HotScore(posts[i], now), HotScore(posts[j], now)
		if si != sj {
			return si > sj
		}
		return posts[i].ID < posts[j].ID
	})

	posts = dedupeByID(posts)
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

// Recommend returns a personalized feed of at most limit posts. Anonymous
// callers (userID 0) fall back to the hot ranking. The result never
// contains drafts, the requester's own posts, or duplicate ids.
func (s *RecommendService) Recommend(ctx context.Context, userID uint, limit int) ([]*models.Post, error) {
	if userID == 0 {
		return s.HotPosts(ctx, limit)
	}
	defer observability.ObserveStage("recommend", time.Now())

	affinity, err := s.TagAffinity(ctx, userID)
	if err != nil {
		return nil, err
	}

	similarIDs, err := s.similarUserIDs(ctx, userID, similarUserPool)
	if err != nil {
		return nil, err
	}
	similarLikes, err := s.postRepo.LikesByUsers(ctx, similarIDs)
	if err != nil {
		return nil, err
	}
	similarBookmarks, err := s.postRepo.BookmarksByUsers(ctx, similarIDs)
	if err != nil {
		return nil, err
	}

	// Per post, the set of similar users engaged with it via like or bookmark.
	engaged := make(map[uint]map[uint]struct{})
	markEngaged := func(postID, uid uint) {
		if engaged[postID] == nil {
			engaged[postID] = make(map[uint]struct{})
		}
		engaged[postID][uid] = struct{}{}
	}
	for _, l := range similarLikes {
		markEngaged(l.PostID, l.UserID)
	}
	for _, b := range similarBookmarks {
		markEngaged(b.PostID, b.UserID)
	}

	all, err := s.postRepo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()

	candidates := make([]*models.Post, 0, len(all))
	finals := make(map[uint]float64, len(all))
	for _, post := range all {
		if post.AuthorID == userID {
			continue
		}
		candidates = append(candidates, post)
		finals[post.ID] = s.finalScore(post, now, affinity, len(engaged[post.ID]))
	}

	sort.Slice(candidates, func(i, j int) bool {
		si, sj := finals[candidates[i].ID], finals[candidates[j].ID]
		if si != sj {
			return si > sj
		}
		return candidates[i].ID < candidates[j].ID
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	if limit > 0 && len(candidates) < limit {
		observability.RecommendationBackfills.Inc()

		hot, err := s.HotPosts(ctx, 2*limit)
		if err != nil {
			return nil, err
		}
		seen := make(map[uint]struct{}, len(candidates))
		for _, p := range candidates {
			seen[p.ID] = struct{}{}
		}
		for _, p := range hot {
			if len(candidates) >= limit {
				break
			}
			if _, ok := seen[p.ID]; ok {
				continue
			}
			if p.AuthorID == userID {
				continue
			}
			seen[p.ID] = struct{}{}
			candidates = append(candidates, p)
		}
	}

	return dedupeByID(candidates), nil
}

func (s *RecommendService) finalScore(post *models.Post, now time.Time, affinity map[uint]float64, engagedSimilar int) float64 {
	var tagSum float64
	for _, tag := range post.Tags {
		tagSum += affinity[tag.ID]
	}
	tagScore := clamp01(tagSum / tagScoreDivisor)
	similarScore := clamp01(float64(engagedSimilar) * perSimilarUserScore)
	hotScore := clamp01(HotScore(post, now) / hotScoreDivisor)
	timeScore := TimeFactor(post.CreatedAt, now)

	return tagComponentWeight*tagScore +
		similarComponentWeight*similarScore +
		hotComponentWeight*hotScore +
		timeComponentWeight*timeScore
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func dedupeByID(posts []*models.Post) []*models.Post {
	seen := make(map[uint]struct{}, len(posts))
	out := posts[:0]
	for _, p := range posts {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

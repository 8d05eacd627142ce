package service

import (
	"context"
	"time"

	"smashboard/internal/models"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn          func(context.Context, *models.User) error
	getByIDFn         func(context.Context, uint) (*models.User, error)
	getByIDsFn        func(context.Context, []uint) ([]*models.User, error)
	getByUsernameFn   func(context.Context, string) (*models.User, error)
	getByEmailFn      func(context.Context, string) (*models.User, error)
	updateFn          func(context.Context, *models.User) error
	updateLastLoginFn func(context.Context, uint, time.Time) error
	followFn          func(context.Context, uint, uint) (bool, error)
	unfollowFn        func(context.Context, uint, uint) (bool, error)
	isFollowingFn     func(context.Context, uint, uint) (bool, error)
	followingIDsFn    func(context.Context, uint) ([]uint, error)
	followerIDsFn     func(context.Context, uint) ([]uint, error)
	followersOfFn     func(context.Context, []uint) ([]models.Follow, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]*models.User, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	return s.updateLastLoginFn(ctx, id, at)
}
func (s *userRepoStub) Follow(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.followFn(ctx, followerID, followingID)
}
func (s *userRepoStub) Unfollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.unfollowFn(ctx, followerID, followingID)
}
func (s *userRepoStub) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followingID)
}
func (s *userRepoStub) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followingIDsFn(ctx, userID)
}
func (s *userRepoStub) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followerIDsFn(ctx, userID)
}
func (s *userRepoStub) FollowersOf(ctx context.Context, followingIDs []uint) ([]models.Follow, error) {
	return s.followersOfFn(ctx, followingIDs)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:          func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:         func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByIDsFn:        func(_ context.Context, _ []uint) ([]*models.User, error) { return nil, nil },
		getByUsernameFn:   func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByEmailFn:      func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		updateFn:          func(_ context.Context, _ *models.User) error { return nil },
		updateLastLoginFn: func(_ context.Context, _ uint, _ time.Time) error { return nil },
		followFn:          func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		unfollowFn:        func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		isFollowingFn:     func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		followingIDsFn:    func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		followerIDsFn:     func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		followersOfFn:     func(_ context.Context, _ []uint) ([]models.Follow, error) { return nil, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn           func(context.Context, *models.Post) error
	getByIDFn          func(context.Context, uint) (*models.Post, error)
	listFn             func(context.Context, int, int, models.Category) ([]*models.Post, error)
	listPublishedFn    func(context.Context) ([]*models.Post, error)
	listByAuthorFn     func(context.Context, uint, bool) ([]*models.Post, error)
	listLikedByFn      func(context.Context, uint) ([]*models.Post, error)
	listBookmarkedByFn func(context.Context, uint) ([]*models.Post, error)
	searchFn           func(context.Context, string, int, int) ([]*models.Post, error)
	updateFn           func(context.Context, *models.Post) error
	deleteFn           func(context.Context, uint) error
	incrementViewFn    func(context.Context, uint) error
	toggleLikeFn       func(context.Context, uint, uint) (bool, int, error)
	toggleBookmarkFn   func(context.Context, uint, uint) (bool, error)
	likedPostIDsFn     func(context.Context, uint) ([]uint, error)
	likersForPostsFn   func(context.Context, []uint) ([]models.PostLike, error)
	likesByUsersFn     func(context.Context, []uint) ([]models.PostLike, error)
	bookmarksByUsersFn func(context.Context, []uint) ([]models.Bookmark, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int, category models.Category) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset, category)
}
func (s *postRepoStub) ListPublished(ctx context.Context) ([]*models.Post, error) {
	return s.listPublishedFn(ctx)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint, includeDrafts bool) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, authorID, includeDrafts)
}
func (s *postRepoStub) ListLikedBy(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.listLikedByFn(ctx, userID)
}
func (s *postRepoStub) ListBookmarkedBy(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.listBookmarkedByFn(ctx, userID)
}
func (s *postRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, error) {
	return s.searchFn(ctx, query, limit, offset)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IncrementView(ctx context.Context, id uint) error {
	return s.incrementViewFn(ctx, id)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, userID, postID uint) (bool, int, error) {
	return s.toggleLikeFn(ctx, userID, postID)
}
func (s *postRepoStub) ToggleBookmark(ctx context.Context, userID, postID uint) (bool, error) {
	return s.toggleBookmarkFn(ctx, userID, postID)
}
func (s *postRepoStub) LikedPostIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.likedPostIDsFn(ctx, userID)
}
func (s *postRepoStub) LikersForPosts(ctx context.Context, postIDs []uint) ([]models.PostLike, error) {
	return s.likersForPostsFn(ctx, postIDs)
}
func (s *postRepoStub) LikesByUsers(ctx context.Context, userIDs []uint) ([]models.PostLike, error) {
	return s.likesByUsersFn(ctx, userIDs)
}
func (s *postRepoStub) BookmarksByUsers(ctx context.Context, userIDs []uint) ([]models.Bookmark, error) {
	return s.bookmarksByUsersFn(ctx, userIDs)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:           func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:          func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn:             func(_ context.Context, _, _ int, _ models.Category) ([]*models.Post, error) { return nil, nil },
		listPublishedFn:    func(_ context.Context) ([]*models.Post, error) { return nil, nil },
		listByAuthorFn:     func(_ context.Context, _ uint, _ bool) ([]*models.Post, error) { return nil, nil },
		listLikedByFn:      func(_ context.Context, _ uint) ([]*models.Post, error) { return nil, nil },
		listBookmarkedByFn: func(_ context.Context, _ uint) ([]*models.Post, error) { return nil, nil },
		searchFn:           func(_ context.Context, _ string, _, _ int) ([]*models.Post, error) { return nil, nil },
		updateFn:           func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:           func(_ context.Context, _ uint) error { return nil },
		incrementViewFn:    func(_ context.Context, _ uint) error { return nil },
		toggleLikeFn:       func(_ context.Context, _, _ uint) (bool, int, error) { return true, 1, nil },
		toggleBookmarkFn:   func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		likedPostIDsFn:     func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		likersForPostsFn:   func(_ context.Context, _ []uint) ([]models.PostLike, error) { return nil, nil },
		likesByUsersFn:     func(_ context.Context, _ []uint) ([]models.PostLike, error) { return nil, nil },
		bookmarksByUsersFn: func(_ context.Context, _ []uint) ([]models.Bookmark, error) { return nil, nil },
	}
}

// tagRepoStub is a stub for repository.TagRepository.
type tagRepoStub struct {
	getByIDFn     func(context.Context, uint) (*models.Tag, error)
	getByNameFn   func(context.Context, string) (*models.Tag, error)
	listFn        func(context.Context) ([]*models.Tag, error)
	listForPostFn func(context.Context, uint) ([]*models.Tag, error)
	attachTagsFn  func(context.Context, uint, []string) ([]*models.Tag, error)
	detachTagFn   func(context.Context, uint, uint) error
}

func (s *tagRepoStub) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tagRepoStub) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	return s.getByNameFn(ctx, name)
}
func (s *tagRepoStub) List(ctx context.Context) ([]*models.Tag, error) {
	return s.listFn(ctx)
}
func (s *tagRepoStub) ListForPost(ctx context.Context, postID uint) ([]*models.Tag, error) {
	return s.listForPostFn(ctx, postID)
}
func (s *tagRepoStub) AttachTags(ctx context.Context, postID uint, names []string) ([]*models.Tag, error) {
	return s.attachTagsFn(ctx, postID, names)
}
func (s *tagRepoStub) DetachTag(ctx context.Context, postID, tagID uint) error {
	return s.detachTagFn(ctx, postID, tagID)
}

func noopTagRepo() *tagRepoStub {
	return &tagRepoStub{
		getByIDFn:     func(_ context.Context, id uint) (*models.Tag, error) { return &models.Tag{ID: id}, nil },
		getByNameFn:   func(_ context.Context, _ string) (*models.Tag, error) { return nil, nil },
		listFn:        func(_ context.Context) ([]*models.Tag, error) { return nil, nil },
		listForPostFn: func(_ context.Context, _ uint) ([]*models.Tag, error) { return nil, nil },
		attachTagsFn:  func(_ context.Context, _ uint, _ []string) ([]*models.Tag, error) { return nil, nil },
		detachTagFn:   func(_ context.Context, _, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn           func(context.Context, *models.Comment) error
	getByIDFn          func(context.Context, uint) (*models.Comment, error)
	listActiveByPostFn func(context.Context, uint) ([]*models.Comment, error)
	updateFn           func(context.Context, *models.Comment) error
	softDeleteFn       func(context.Context, uint, uint) error
	toggleLikeFn       func(context.Context, uint, uint) (bool, int, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListActiveByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listActiveByPostFn(ctx, postID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) SoftDelete(ctx context.Context, id, postID uint) error {
	return s.softDeleteFn(ctx, id, postID)
}
func (s *commentRepoStub) ToggleLike(ctx context.Context, userID, commentID uint) (bool, int, error) {
	return s.toggleLikeFn(ctx, userID, commentID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:           func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:          func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listActiveByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:           func(_ context.Context, _ *models.Comment) error { return nil },
		softDeleteFn:       func(_ context.Context, _, _ uint) error { return nil },
		toggleLikeFn:       func(_ context.Context, _, _ uint) (bool, int, error) { return true, 1, nil },
	}
}

package service

import (
	"context"
	"strings"

	"smashboard/internal/markdown"
	"smashboard/internal/models"
	"smashboard/internal/repository"
)

// maxTagsPerPost is the most tags one attach call accepts; extras beyond
// the first five are silently dropped rather than rejected.
const maxTagsPerPost = 5

const maxTitleLength = 100

// PostService handles post lifecycle, engagement toggles, and tagging.
type PostService struct {
	postRepo repository.PostRepository
	tagRepo  repository.TagRepository
}

type CreatePostInput struct {
	AuthorID uint
	Title    string
	Content  string
	Category string
	Tags     []string
	IsDraft  bool
}

type ListPostsInput struct {
	Limit    int
	Offset   int
	Category string
}

type UpdatePostInput struct {
	UserID   uint
	PostID   uint
	Title    string
	Content  string
	Category string
	IsDraft  bool
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository, tagRepo repository.TagRepository) *PostService {
	return &PostService{postRepo: postRepo, tagRepo: tagRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len([]rune(title)) > maxTitleLength {
		return nil, models.NewValidationError("Title must not exceed 100 characters")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}

	post := &models.Post{
		Title:    title,
		Content:  in.Content,
		AuthorID: in.AuthorID,
		Category: models.NormalizeCategory(in.Category),
		IsDraft:  in.IsDraft,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	if names := normalizeTagNames(in.Tags); len(names) > 0 {
		tags, err := s.tagRepo.AttachTags(ctx, post.ID, names)
		if err != nil {
			return nil, err
		}
		for _, tag := range tags {
			post.Tags = append(post.Tags, *tag)
		}
	}
	return post, nil
}

// GetPost returns the post with rendered HTML. When viewed by someone other
// than the author it must not be a draft.
func (s *PostService) GetPost(ctx context.Context, postID, viewerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.IsDraft && post.AuthorID != viewerID {
		return nil, models.NewNotFoundError("Post", postID)
	}

	html, err := markdown.RenderHTML(post.Content)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	post.ContentHTML = html
	return post, nil
}

// ViewPost records a view of a published post and returns it rendered.
// Draft views by the author are not counted.
func (s *PostService) ViewPost(ctx context.Context, postID, viewerID uint) (*models.Post, error) {
	post, err := s.GetPost(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	if !post.IsDraft {
		if err := s.postRepo.IncrementView(ctx, postID); err != nil {
			return nil, err
		}
		post.ViewCount++
	}
	return post, nil
}

// ListPosts returns published posts for the index, pinned first, with
// plain-text previews attached.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	limit := in.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	posts, err := s.postRepo.List(ctx, limit, in.Offset, models.NormalizeCategory(in.Category))
	if err != nil {
		return nil, err
	}
	attachPreviews(posts)
	return posts, nil
}

func (s *PostService) SearchPosts(ctx context.Context, query string, limit, offset int) ([]*models.Post, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	posts, err := s.postRepo.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	attachPreviews(posts)
	return posts, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len([]rune(title)) > maxTitleLength {
		return nil, models.NewValidationError("Title must not exceed 100 characters")
	}

	post.Title = title
	post.Content = in.Content
	post.Category = models.NormalizeCategory(in.Category)
	post.IsDraft = in.IsDraft
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (bool, int, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return false, 0, err
	}
	return s.postRepo.ToggleLike(ctx, userID, postID)
}

func (s *PostService) ToggleBookmark(ctx context.Context, userID, postID uint) (bool, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return false, err
	}
	return s.postRepo.ToggleBookmark(ctx, userID, postID)
}

// AttachTags adds tags to the author's own post. Names are trimmed,
// deduplicated within the call, and truncated to the first five.
func (s *PostService) AttachTags(ctx context.Context, userID, postID uint, names []string) ([]*models.Tag, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, models.NewForbiddenError("You can only tag your own posts")
	}

	names = normalizeTagNames(names)
	if len(names) == 0 {
		return nil, nil
	}
	return s.tagRepo.AttachTags(ctx, postID, names)
}

func (s *PostService) DetachTag(ctx context.Context, userID, postID, tagID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return models.NewForbiddenError("You can only untag your own posts")
	}
	if _, err := s.tagRepo.GetByID(ctx, tagID); err != nil {
		return err
	}
	return s.tagRepo.DetachTag(ctx, postID, tagID)
}

func (s *PostService) ListTags(ctx context.Context) ([]*models.Tag, error) {
	return s.tagRepo.List(ctx)
}

// normalizeTagNames trims, drops blanks, dedupes within the call, and keeps
// the first five names. Oversized lists are truncated silently, matching
// the documented tagging policy.
func normalizeTagNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, maxTagsPerPost)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
		if len(out) == maxTagsPerPost {
			break
		}
	}
	return out
}

func attachPreviews(posts []*models.Post) {
	for _, post := range posts {
		post.Preview = markdown.PlainPreview(post.Content, markdown.DefaultPreviewLength)
	}
}

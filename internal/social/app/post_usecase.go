package app

import (
	"context"
	"errors"
	"time"

	"study_portal_service/internal/social/domain"
	"study_portal_service/internal/social/repository"
	"study_portal_service/pkg"

	"github.com/google/uuid"
)

// feedLimit newest posts returned by the feed
const feedLimit = 50

// ErrNotPostAuthor returned when someone else tries to delete a post
var ErrNotPostAuthor = errors.New("access denied")

// PostUseCase social feed operations
type PostUseCase struct {
	postRepo repository.PostRepository
}

// NewPostUseCase init the post use case
func NewPostUseCase(postRepo repository.PostRepository) *PostUseCase {
	return &PostUseCase{postRepo: postRepo}
}

// CreatePost store a new post authored by the verified caller. The author
// starts as the first viewer of their own post.
func (uc *PostUseCase) CreatePost(ctx context.Context, author domain.PostAuthor, content string, images, videos, tags []string, poll *domain.Poll) (*domain.Post, error) {
	if poll != nil {
		for i := range poll.Options {
			if poll.Options[i].ID == "" {
				poll.Options[i].ID = uuid.New().String()
			}
			if poll.Options[i].Votes == nil {
				poll.Options[i].Votes = []string{}
			}
		}
	}

	post := &domain.Post{
		ID:        uuid.New().String(),
		Content:   content,
		Images:    emptyIfNil(images),
		Videos:    emptyIfNil(videos),
		Author:    author,
		Poll:      poll,
		Tags:      emptyIfNil(tags),
		Likes:     []string{},
		Views:     []string{author.ID},
		Comments:  []domain.PostComment{},
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.postRepo.Insert(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts newest posts first
func (uc *PostUseCase) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return uc.postRepo.List(ctx, feedLimit)
}

// ToggleLike add the user's like, or withdraw it if already present
func (uc *PostUseCase) ToggleLike(ctx context.Context, postID, userID string) (*domain.Post, error) {
	post, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if pkg.Contains(post.Likes, userID) {
		post.Likes = pkg.Remove(post.Likes, userID)
	} else {
		post.Likes = append(post.Likes, userID)
	}

	if err := uc.postRepo.Replace(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// AddComment append one comment
func (uc *PostUseCase) AddComment(ctx context.Context, postID string, user domain.CommentUser, text string) (*domain.Post, error) {
	post, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	post.Comments = append(post.Comments, domain.PostComment{
		User:      user,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})

	if err := uc.postRepo.Replace(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Vote move the user's poll vote to optionID. Any previous vote is
// withdrawn first, so each user holds at most one vote per poll.
func (uc *PostUseCase) Vote(ctx context.Context, postID, userID, optionID string) (*domain.Post, error) {
	post, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Poll == nil {
		return nil, errors.New("post has no poll")
	}

	for i := range post.Poll.Options {
		post.Poll.Options[i].Votes = pkg.Remove(post.Poll.Options[i].Votes, userID)
	}
	for i := range post.Poll.Options {
		if post.Poll.Options[i].ID == optionID {
			post.Poll.Options[i].Votes = append(post.Poll.Options[i].Votes, userID)
			break
		}
	}

	if err := uc.postRepo.Replace(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// RegisterView record that the user has seen the post, once per user
func (uc *PostUseCase) RegisterView(ctx context.Context, postID, userID string) (*domain.Post, error) {
	post, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !pkg.Contains(post.Views, userID) {
		post.Views = append(post.Views, userID)
		if err := uc.postRepo.Replace(ctx, post); err != nil {
			return nil, err
		}
	}
	return post, nil
}

// DeletePost remove a post, authors only
func (uc *PostUseCase) DeletePost(ctx context.Context, postID, userID string) error {
	post, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.Author.ID != userID {
		return ErrNotPostAuthor
	}
	return uc.postRepo.Delete(ctx, postID)
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

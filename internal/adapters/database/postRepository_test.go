package database

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"blogify/internal/core/apperror"
	"blogify/internal/core/comment"
	"blogify/internal/core/ids"
	"blogify/internal/core/like"
	"blogify/internal/core/post"
	"blogify/internal/core/user"
	postPort "blogify/internal/ports/post"
	"blogify/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db       *gorm.DB
	posts    *PostRepositoryDatabase
	likes    *LikeRepositoryDatabase
	comments *CommentRepositoryDatabase
	alice    *user.User
	bob      *user.User
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	return &fixture{
		db:       db,
		posts:    NewPostRepositoryDatabase(db),
		likes:    NewLikeRepositoryDatabase(db),
		comments: NewCommentRepositoryDatabase(db),
		alice:    testutil.CreateUser(t, db, "alice"),
		bob:      testutil.CreateUser(t, db, "bob"),
	}
}

func (f *fixture) createPost(t *testing.T, author *user.User, title, content string, at time.Time) *post.Post {
	t.Helper()
	p := &post.Post{
		ID:        ids.New(),
		Title:     title,
		Content:   content,
		AuthorID:  author.ID,
		CreatedAt: at,
		UpdatedAt: at,
	}
	_, err := f.posts.Create(context.Background(), p)
	require.NoError(t, err)
	return p
}

func (f *fixture) addComment(t *testing.T, p *post.Post, author *user.User, text string, at time.Time) *comment.Comment {
	t.Helper()
	c, err := f.comments.Add(context.Background(), &comment.Comment{
		ID:        ids.New(),
		PostID:    p.ID,
		UserID:    author.ID,
		Text:      text,
		CreatedAt: at,
	})
	require.NoError(t, err)
	return c
}

func titles(posts []*post.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Title
	}
	return out
}

func TestPostRepository_CreateAndFind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPost(t, f.alice, "A", "B", baseTime)

	got, err := f.posts.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "B", got.Content)
	assert.Equal(t, f.alice.ID, got.AuthorID)
	assert.Equal(t, "alice", got.Author.Username)
	assert.Empty(t, got.Likes)
	assert.Empty(t, got.Comments)

	authorID, err := f.posts.FindAuthorID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, authorID)
}

func TestPostRepository_FindMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.posts.FindByID(ctx, ids.New())
	assert.True(t, apperror.IsNotFound(err))

	_, err = f.posts.FindAuthorID(ctx, ids.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestPostRepository_UpdatePartial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPost(t, f.alice, "old title", "old content", baseTime)

	editedAt := baseTime.Add(time.Hour)
	require.NoError(t, f.posts.Update(ctx, p.ID, postPort.Fields{Title: "new title"}, editedAt))

	got, err := f.posts.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "new title", got.Title)
	assert.Equal(t, "old content", got.Content)
	assert.True(t, got.CreatedAt.Equal(baseTime), "createdAt is immutable")
	assert.True(t, got.UpdatedAt.Equal(editedAt), "updatedAt comes from the caller")

	err = f.posts.Update(ctx, ids.New(), postPort.Fields{Title: "x"}, editedAt)
	assert.True(t, apperror.IsNotFound(err))
}

func TestPostRepository_UpdateWithIdenticalValues(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPost(t, f.alice, "same", "same", baseTime)

	// report changed rows the way MySQL does when nothing differs
	require.NoError(t, f.db.Callback().Update().After("gorm:update").Register("test:changed_rows", func(db *gorm.DB) {
		db.RowsAffected = 0
	}))

	require.NoError(t, f.posts.Update(ctx, p.ID, postPort.Fields{Title: "same", Content: "same"}, baseTime))

	err := f.posts.Update(ctx, ids.New(), postPort.Fields{Title: "same"}, baseTime)
	assert.True(t, apperror.IsNotFound(err))

	got, err := f.posts.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "same", got.Title)
}

func TestPostRepository_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPost(t, f.alice, "A", "B", baseTime)
	other := f.createPost(t, f.bob, "C", "D", baseTime)

	f.addComment(t, p, f.bob, "nice", baseTime)
	f.addComment(t, other, f.alice, "keep me", baseTime)
	_, _, err := f.likes.Toggle(ctx, p.ID, f.bob.ID)
	require.NoError(t, err)
	_, _, err = f.likes.Toggle(ctx, other.ID, f.alice.ID)
	require.NoError(t, err)

	require.NoError(t, f.posts.Delete(ctx, p.ID))

	var n int64
	require.NoError(t, f.db.Model(&comment.Comment{}).Where("post_id = ?", p.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, f.db.Model(&like.Like{}).Where("post_id = ?", p.ID).Count(&n).Error)
	assert.Zero(t, n)

	survivor, err := f.posts.FindByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, survivor.Comments, 1)
	assert.Len(t, survivor.Likes, 1)

	err = f.posts.Delete(ctx, p.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestPostRepository_ListSorts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.createPost(t, f.alice, "first", "x", baseTime)
	second := f.createPost(t, f.alice, "second", "x", baseTime.Add(time.Hour))
	third := f.createPost(t, f.bob, "third", "x", baseTime.Add(2*time.Hour))

	carol := testutil.CreateUser(t, f.db, "carol")
	for _, u := range []*user.User{f.alice, f.bob, carol} {
		_, _, err := f.likes.Toggle(ctx, first.ID, u.ID)
		require.NoError(t, err)
	}
	_, _, err := f.likes.Toggle(ctx, second.ID, carol.ID)
	require.NoError(t, err)
	_ = third

	page := post.Page{Number: 1, Limit: 10}
	tests := []struct {
		sort post.Sort
		want []string
	}{
		{post.SortNewest, []string{"third", "second", "first"}},
		{post.SortOldest, []string{"first", "second", "third"}},
		{post.SortMostLiked, []string{"first", "second", "third"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			posts, total, err := f.posts.List(ctx, postPort.ListQuery{Page: page, Sort: tt.sort})
			require.NoError(t, err)
			assert.EqualValues(t, 3, total)
			assert.Equal(t, tt.want, titles(posts))
		})
	}

	posts, _, err := f.posts.List(ctx, postPort.ListQuery{Page: page, Sort: post.SortMostLiked})
	require.NoError(t, err)
	assert.Len(t, posts[0].Likes, 3)
	assert.Equal(t, "alice", posts[0].Author.Username)
}

func TestPostRepository_ListPages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 23; i++ {
		f.createPost(t, f.alice, fmt.Sprintf("post-%02d", i), "body", baseTime.Add(time.Duration(i)*time.Minute))
	}

	posts, total, err := f.posts.List(ctx, postPort.ListQuery{Page: post.Page{Number: 1, Limit: 10}, Sort: post.SortNewest})
	require.NoError(t, err)
	assert.EqualValues(t, 23, total)
	assert.Len(t, posts, 10)
	assert.Equal(t, "post-22", posts[0].Title)

	posts, _, err = f.posts.List(ctx, postPort.ListQuery{Page: post.Page{Number: 3, Limit: 10}, Sort: post.SortNewest})
	require.NoError(t, err)
	assert.Equal(t, []string{"post-02", "post-01", "post-00"}, titles(posts))

	posts, total, err = f.posts.List(ctx, postPort.ListQuery{Page: post.Page{Number: 4, Limit: 10}, Sort: post.SortNewest})
	require.NoError(t, err)
	assert.EqualValues(t, 23, total)
	assert.Empty(t, posts)
}

func TestPostRepository_ListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createPost(t, f.alice, "Hello world", "first body", baseTime)
	f.createPost(t, f.bob, "Another day", "she said HELLO there", baseTime.Add(time.Minute))
	f.createPost(t, f.bob, "Nothing here", "plain", baseTime.Add(2*time.Minute))
	f.createPost(t, f.alice, "100% real", "under_score", baseTime.Add(3*time.Minute))

	page := post.Page{Number: 1, Limit: 10}

	posts, total, err := f.posts.List(ctx, postPort.ListQuery{Filter: postPort.ListFilter{AuthorID: f.bob.ID}, Page: page})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, []string{"Nothing here", "Another day"}, titles(posts))

	posts, total, err = f.posts.List(ctx, postPort.ListQuery{Filter: postPort.ListFilter{Search: "hello"}, Page: page})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, []string{"Another day", "Hello world"}, titles(posts))

	posts, _, err = f.posts.List(ctx, postPort.ListQuery{Filter: postPort.ListFilter{Search: "%"}, Page: page})
	require.NoError(t, err)
	assert.Equal(t, []string{"100% real"}, titles(posts), "wildcards match literally")

	posts, _, err = f.posts.List(ctx, postPort.ListQuery{Filter: postPort.ListFilter{Search: "o_w"}, Page: page})
	require.NoError(t, err)
	assert.Empty(t, posts)

	posts, total, err = f.posts.List(ctx, postPort.ListQuery{
		Filter: postPort.ListFilter{AuthorID: f.alice.ID, Search: "HELLO"},
		Page:   page,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, []string{"Hello world"}, titles(posts))
}

func TestLikeRepository_Toggle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPost(t, f.alice, "A", "B", baseTime)

	liked, count, err := f.likes.Toggle(ctx, p.ID, f.bob.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.EqualValues(t, 1, count)

	liked, count, err = f.likes.Toggle(ctx, p.ID, f.alice.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.EqualValues(t, 2, count)

	liked, count, err = f.likes.Toggle(ctx, p.ID, f.bob.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.EqualValues(t, 1, count)

	got, err := f.posts.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Likes, 1)
	assert.Equal(t, f.alice.ID, got.Likes[0].UserID)
	assert.Equal(t, "alice", got.Likes[0].User.Username)

	_, _, err = f.likes.Toggle(ctx, ids.New(), f.bob.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestLikeRepository_ConcurrentLikesAreNotLost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPost(t, f.alice, "A", "B", baseTime)

	const n = 20
	users := make([]*user.User, n)
	for i := range users {
		users[i] = testutil.CreateUser(t, f.db, fmt.Sprintf("fan%02d", i))
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for _, u := range users {
		wg.Add(1)
		go func(u *user.User) {
			defer wg.Done()
			if _, _, err := f.likes.Toggle(ctx, p.ID, u.ID); err != nil {
				errs <- err
			}
		}(u)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, f.db.Model(&like.Like{}).Where("post_id = ?", p.ID).Count(&count).Error)
	assert.EqualValues(t, n, count)
}

func TestCommentRepository_AddFindDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPost(t, f.alice, "A", "B", baseTime)

	c1 := f.addComment(t, p, f.bob, "one", baseTime.Add(time.Minute))
	c2 := f.addComment(t, p, f.alice, "two", baseTime.Add(2*time.Minute))
	c3 := f.addComment(t, p, f.bob, "three", baseTime.Add(3*time.Minute))
	assert.Equal(t, "bob", c1.User.Username)

	found, err := f.comments.FindByID(ctx, p.ID, c2.ID)
	require.NoError(t, err)
	assert.Equal(t, "two", found.Text)
	assert.Equal(t, "alice", found.User.Username)

	require.NoError(t, f.comments.Delete(ctx, p.ID, c2.ID))

	got, err := f.posts.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, c1.ID, got.Comments[0].ID)
	assert.Equal(t, c3.ID, got.Comments[1].ID)

	err = f.comments.Delete(ctx, p.ID, c2.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCommentRepository_ScopedToPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPost(t, f.alice, "A", "B", baseTime)
	other := f.createPost(t, f.bob, "C", "D", baseTime)
	c := f.addComment(t, p, f.bob, "hi", baseTime)

	_, err := f.comments.FindByID(ctx, other.ID, c.ID)
	assert.True(t, apperror.IsNotFound(err))

	err = f.comments.Delete(ctx, other.ID, c.ID)
	assert.True(t, apperror.IsNotFound(err))

	_, err = f.comments.Add(ctx, &comment.Comment{ID: ids.New(), PostID: ids.New(), UserID: f.bob.ID, Text: "x", CreatedAt: baseTime})
	assert.True(t, apperror.IsNotFound(err))
}

package usecase

import (
	"strings"
	"testing"
	"time"

	"nutrigram/pkg/logger"
	"nutrigram/services/post/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockCommentRepository is a mock implementation of persistent.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *entity.Comment) error {
	args := m.Called(comment)
	if args.Error(0) == nil && comment.ID == "" {
		comment.ID = "comment-generated"
	}
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(id string) (*entity.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetByPostID(postID string, limit, offset int) ([]*entity.Comment, error) {
	args := m.Called(postID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) CountByPostID(postID string) (int64, error) {
	args := m.Called(postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) Delete(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

// fakePublisher records published tasks on a channel so tests can wait for
// the asynchronous publish without racing the goroutine.
type fakePublisher struct {
	tasks chan map[string]interface{}
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{tasks: make(chan map[string]interface{}, 8)}
}

func (f *fakePublisher) PublishNotificationTask(task map[string]interface{}) error {
	f.tasks <- task
	return nil
}

func (f *fakePublisher) waitForTask(t *testing.T) map[string]interface{} {
	t.Helper()
	select {
	case task := <-f.tasks:
		return task
	case <-time.After(time.Second):
		t.Fatal("expected a notification task to be published")
		return nil
	}
}

func (f *fakePublisher) assertNoTask(t *testing.T) {
	t.Helper()
	select {
	case task := <-f.tasks:
		t.Fatalf("expected no notification task, got %+v", task)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestAddComment_Success(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	publisher := newFakePublisher()
	uc := NewCommentUseCase(commentRepo, postRepo, publisher, logger.New())

	postRepo.On("GetByID", "post-1").Return(&entity.Post{ID: "post-1", UserID: "author-1"}, nil)
	commentRepo.On("Create", mock.AnythingOfType("*entity.Comment")).Return(nil)

	comment, err := uc.AddComment("post-1", "user-1", "Looks delicious!")

	assert.NoError(t, err)
	assert.NotNil(t, comment)
	assert.Equal(t, "post-1", comment.PostID)
	assert.Equal(t, "user-1", comment.UserID)

	task := publisher.waitForTask(t)
	assert.Equal(t, "comment", task["type"])
	assert.Equal(t, "author-1", task["user_id"])
	assert.Equal(t, "user-1", task["commenter_id"])
	assert.Equal(t, "post-1", task["post_id"])

	commentRepo.AssertExpectations(t)
}

func TestAddComment_OwnPostDoesNotNotify(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	publisher := newFakePublisher()
	uc := NewCommentUseCase(commentRepo, postRepo, publisher, logger.New())

	postRepo.On("GetByID", "post-1").Return(&entity.Post{ID: "post-1", UserID: "author-1"}, nil)
	commentRepo.On("Create", mock.AnythingOfType("*entity.Comment")).Return(nil)

	comment, err := uc.AddComment("post-1", "author-1", "Note to self: more garlic next time")

	assert.NoError(t, err)
	assert.NotNil(t, comment)
	publisher.assertNoTask(t)
}

func TestAddComment_PostNotFound(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	uc := NewCommentUseCase(commentRepo, postRepo, nil, logger.New())

	postRepo.On("GetByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

	comment, err := uc.AddComment("ghost", "user-1", "hello")

	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.Nil(t, comment)
	commentRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAddComment_ContentTooLong(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	uc := NewCommentUseCase(commentRepo, postRepo, nil, logger.New())

	comment, err := uc.AddComment("post-1", "user-1", strings.Repeat("a", 1001))

	assert.ErrorIs(t, err, ErrContentTooLong)
	assert.Nil(t, comment)
}

func TestDeleteComment_Success(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	uc := NewCommentUseCase(commentRepo, postRepo, nil, logger.New())

	commentRepo.On("GetByID", "comment-1").Return(&entity.Comment{ID: "comment-1", UserID: "user-1"}, nil)
	commentRepo.On("Delete", "comment-1").Return(true, nil)

	err := uc.DeleteComment("comment-1", "user-1")

	assert.NoError(t, err)
	commentRepo.AssertExpectations(t)
}

func TestDeleteComment_Forbidden(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	uc := NewCommentUseCase(commentRepo, postRepo, nil, logger.New())

	commentRepo.On("GetByID", "comment-1").Return(&entity.Comment{ID: "comment-1", UserID: "user-1"}, nil)

	err := uc.DeleteComment("comment-1", "intruder")

	assert.ErrorIs(t, err, ErrForbidden)
	commentRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestDeleteComment_SecondDeleteNotFound(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	uc := NewCommentUseCase(commentRepo, postRepo, nil, logger.New())

	// Already soft-deleted, the default-scoped lookup no longer sees it
	commentRepo.On("GetByID", "comment-1").Return(nil, gorm.ErrRecordNotFound)

	err := uc.DeleteComment("comment-1", "user-1")

	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestGetComments_Pagination(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	uc := NewCommentUseCase(commentRepo, postRepo, nil, logger.New())

	expected := []*entity.Comment{
		{ID: "comment-3", PostID: "post-1"},
		{ID: "comment-2", PostID: "post-1"},
	}
	postRepo.On("GetByID", "post-1").Return(&entity.Post{ID: "post-1", UserID: "author-1"}, nil)
	commentRepo.On("GetByPostID", "post-1", 2, 0).Return(expected, nil)
	commentRepo.On("CountByPostID", "post-1").Return(int64(3), nil)

	comments, total, err := uc.GetComments("post-1", 1, 2)

	assert.NoError(t, err)
	assert.Equal(t, expected, comments)
	assert.Equal(t, int64(3), total)
}

func TestGetComments_DeletedPostHidesComments(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	uc := NewCommentUseCase(commentRepo, postRepo, nil, logger.New())

	// The post was soft-deleted; its comment rows are still live but must
	// not be served anymore.
	postRepo.On("GetByID", "post-1").Return(nil, gorm.ErrRecordNotFound)

	comments, total, err := uc.GetComments("post-1", 1, 20)

	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.Nil(t, comments)
	assert.Equal(t, int64(0), total)
	commentRepo.AssertNotCalled(t, "GetByPostID", mock.Anything, mock.Anything, mock.Anything)
	commentRepo.AssertNotCalled(t, "CountByPostID", mock.Anything)
}

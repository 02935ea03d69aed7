package repository_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/postboard/postboard/internal/models"
	"github.com/postboard/postboard/internal/repository"
	"github.com/postboard/postboard/internal/testutil"
)

type LikeRepositoryTestSuite struct {
	suite.Suite
	testDB   *testutil.TestDatabase
	likeRepo *repository.LikeRepository
	user     *models.User
	post     *models.Post
}

func (s *LikeRepositoryTestSuite) SetupSuite() {
	s.testDB = testutil.SetupTestDatabase(s.T())
	s.likeRepo = repository.NewLikeRepository(s.testDB.DB)
}

func (s *LikeRepositoryTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *LikeRepositoryTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)

	user, err := testutil.CreateTestUser("ledgeruser", "ledger@example.com", "Password123", models.RoleUser)
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.testDB.DB.Create(user).Error)
	s.user = user

	post := testutil.CreateTestPost(user, "a post to like")
	require.NoError(s.T(), s.testDB.DB.Create(post).Error)
	s.post = post
}

func (s *LikeRepositoryTestSuite) TestAddLike() {
	err := s.likeRepo.AddLike(s.post.ID, s.user.ID)
	require.NoError(s.T(), err)

	liked, err := s.likeRepo.HasLiked(s.post.ID, s.user.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), liked)

	count, err := s.likeRepo.CountLikes(s.post.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), count)
}

func (s *LikeRepositoryTestSuite) TestAddLike_Twice() {
	require.NoError(s.T(), s.likeRepo.AddLike(s.post.ID, s.user.ID))

	err := s.likeRepo.AddLike(s.post.ID, s.user.ID)
	assert.ErrorIs(s.T(), err, repository.ErrAlreadyLiked)

	// The second call must not change the count.
	count, err := s.likeRepo.CountLikes(s.post.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), count)
}

func (s *LikeRepositoryTestSuite) TestAddLike_ConstraintViolationIsAlreadyLiked() {
	// Pre-insert the like behind the repository's back, as the loser of a
	// concurrent check-then-insert race would see it: the pre-check passes
	// elsewhere but the unique index refuses the insert.
	like := testutil.CreateTestLike(s.post, s.user)
	require.NoError(s.T(), s.testDB.DB.Create(like).Error)

	dup := testutil.CreateTestLike(s.post, s.user)
	err := s.testDB.DB.Create(dup).Error
	require.Error(s.T(), err, "unique index on (post_id, user_id) must refuse the second insert")

	// The repository reports the same AlreadyLiked error for that case.
	err = s.likeRepo.AddLike(s.post.ID, s.user.ID)
	assert.ErrorIs(s.T(), err, repository.ErrAlreadyLiked)
}

func (s *LikeRepositoryTestSuite) TestAddLike_PostNotFound() {
	err := s.likeRepo.AddLike(uuid.New(), s.user.ID)
	assert.ErrorIs(s.T(), err, repository.ErrPostNotFound)
}

func (s *LikeRepositoryTestSuite) TestRemoveLike_ReturnsPostRemovalCount() {
	other, err := testutil.CreateTestUser("otherliker", "other@example.com", "Password123", models.RoleUser)
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.testDB.DB.Create(other).Error)

	require.NoError(s.T(), s.likeRepo.AddLike(s.post.ID, s.user.ID))
	require.NoError(s.T(), s.likeRepo.AddLike(s.post.ID, other.ID))

	count, err := s.likeRepo.RemoveLike(s.post.ID, s.user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), count, "returned count must already exclude the removed like")

	liked, err := s.likeRepo.HasLiked(s.post.ID, s.user.ID)
	require.NoError(s.T(), err)
	assert.False(s.T(), liked)
}

func (s *LikeRepositoryTestSuite) TestRemoveLike_LikeNotFound() {
	_, err := s.likeRepo.RemoveLike(s.post.ID, s.user.ID)
	assert.ErrorIs(s.T(), err, repository.ErrLikeNotFound)

	count, err := s.likeRepo.CountLikes(s.post.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(0), count, "count must be unchanged")
}

func (s *LikeRepositoryTestSuite) TestRemoveLike_PostNotFound() {
	_, err := s.likeRepo.RemoveLike(uuid.New(), s.user.ID)
	assert.ErrorIs(s.T(), err, repository.ErrPostNotFound)
}

func (s *LikeRepositoryTestSuite) TestCountLikes_Empty() {
	count, err := s.likeRepo.CountLikes(s.post.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(0), count)
}

func TestLikeRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(LikeRepositoryTestSuite))
}

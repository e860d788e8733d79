package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gopkg.in/guregu/null.v3"

	"eldenlens.dev/backend/internal/model"
	"eldenlens.dev/backend/internal/pkg/cache"
	"eldenlens.dev/backend/internal/pkg/pgerr"
)

type CachesRedisTestSuite struct {
	suite.Suite
	mock   redismock.ClientMock
	caches *Caches
}

func (s *CachesRedisTestSuite) SetupTest() {
	client, mock := redismock.NewClientMock()
	s.mock = mock
	s.caches = New(cache.NewRedis(client))
}

func (s *CachesRedisTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestCachesRedisTestSuite(t *testing.T) {
	suite.Run(t, new(CachesRedisTestSuite))
}

func (s *CachesRedisTestSuite) TestInvalidateProgressRemovesEveryKey() {
	p := &model.PlayerProgress{ID: "p1", UserID: "u1", PlayerName: "Let Me Solo Her"}

	s.mock.ExpectDel("progress#id:p1", "progress#name:let me solo her", "progresses#userId:u1").SetVal(3)

	s.caches.InvalidateProgress(context.Background(), p)
}

func (s *CachesRedisTestSuite) TestInvalidateFightSessionRemovesEveryKey() {
	fs := &model.FightSession{ID: "s1", ProgressID: "p1"}

	s.mock.ExpectDel("fightSession#id:s1", "fightSessions#progressId:p1", "fightAttempts#sessionId:s1").SetVal(1)

	s.caches.InvalidateFightSession(context.Background(), fs)
}

func (s *CachesRedisTestSuite) TestDeleteKey() {
	s.mock.ExpectDel("weapon#id:uchigatana").SetVal(1)

	s.NoError(s.caches.Delete(context.Background(), "weapon#id", null.StringFrom("uchigatana")))
}

func (s *CachesRedisTestSuite) TestDeleteSingular() {
	s.mock.ExpectDel("weapons").SetVal(1)

	s.NoError(s.caches.Delete(context.Background(), "weapons", null.String{}))
}

func (s *CachesRedisTestSuite) TestDeleteSingularWithKeyIsRejected() {
	err := s.caches.Delete(context.Background(), "weapons", null.StringFrom("x"))
	s.ErrorIs(err, pgerr.ErrInvalidReq)
}

func (s *CachesRedisTestSuite) TestDeleteUnknown() {
	err := s.caches.Delete(context.Background(), "nope", null.String{})
	s.ErrorIs(err, ErrUnknownCache)
}

func TestProgressKeys(t *testing.T) {
	c := New(cache.NewMemory(time.Minute))

	t.Run("Full", func(t *testing.T) {
		keys := c.ProgressKeys(&model.PlayerProgress{ID: "p1", UserID: "u1", PlayerName: " Tarnished "})
		assert.Equal(t, []string{"progress#id:p1", "progress#name:tarnished", "progresses#userId:u1"}, keys)
	})

	t.Run("OnlyID", func(t *testing.T) {
		keys := c.ProgressKeys(&model.PlayerProgress{ID: "p1"})
		assert.Equal(t, []string{"progress#id:p1"}, keys)
	})
}

func TestInvalidateProgressClearsCachedReads(t *testing.T) {
	ctx := context.Background()
	c := New(cache.NewMemory(time.Minute))
	p := model.PlayerProgress{ID: "p1", UserID: "u1", PlayerName: "Tarnished"}

	c.ProgressByID.Set(ctx, p.ID, p)
	c.ProgressByName.Set(ctx, NameKey(p.PlayerName), p)
	c.ProgressesByUser.Set(ctx, p.UserID, []*model.PlayerProgress{&p})
	c.WeaponByID.Set(ctx, "uchigatana", model.Weapon{ID: "uchigatana"})

	c.InvalidateProgress(ctx, &p)

	assert.False(t, c.ProgressByID.Exists(ctx, p.ID))
	assert.False(t, c.ProgressByName.Exists(ctx, "tarnished"))
	assert.False(t, c.ProgressesByUser.Exists(ctx, "u1"))
	assert.True(t, c.WeaponByID.Exists(ctx, "uchigatana"), "reference data must survive progress writes")
}

func TestFlushReferenceKeepsMutableData(t *testing.T) {
	ctx := context.Background()
	c := New(cache.NewMemory(time.Minute))

	c.Weapons.Set(ctx, []*model.Weapon{{ID: "a"}})
	c.WeaponsByCategory.Set(ctx, "katana", []*model.Weapon{{ID: "a"}})
	c.BossStatsByName.Set(ctx, "malenia", model.BossStats{ID: "m"})
	c.BossByID.Set(ctx, "b1", model.Boss{ID: "b1"})
	c.ProgressByID.Set(ctx, "p1", model.PlayerProgress{ID: "p1"})

	c.FlushReference(ctx)

	_, ok := c.Weapons.Get(ctx)
	assert.False(t, ok)
	assert.False(t, c.WeaponsByCategory.Exists(ctx, "katana"))
	assert.False(t, c.BossStatsByName.Exists(ctx, "malenia"))
	assert.False(t, c.BossByID.Exists(ctx, "b1"))
	assert.True(t, c.ProgressByID.Exists(ctx, "p1"))
}

func TestNames(t *testing.T) {
	c := New(cache.NewMemory(time.Minute))
	names := c.Names()

	require.Len(t, names, 18)
	assert.Contains(t, names, "weapons")
	assert.Contains(t, names, "progress#id")
	assert.Contains(t, names, "fightAttempts#sessionId")
}

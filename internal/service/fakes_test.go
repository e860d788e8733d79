package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"gopkg.in/guregu/null.v3"

	"eldenlens.dev/backend/internal/app/appconfig"
	"eldenlens.dev/backend/internal/model"
	modelcache "eldenlens.dev/backend/internal/model/cache"
	"eldenlens.dev/backend/internal/pkg/cache"
	"eldenlens.dev/backend/internal/pkg/pgerr"
	"eldenlens.dev/backend/internal/repo"
)

// calls counts store invocations per method.
type calls struct {
	mu sync.Mutex
	n  map[string]int
}

func (c *calls) hit(method string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.n == nil {
		c.n = make(map[string]int)
	}
	c.n[method]++
}

func (c *calls) count(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n[method]
}

type fakeWeapons struct {
	calls
	weapons []*model.Weapon
}

func (f *fakeWeapons) GetWeapons(context.Context) ([]*model.Weapon, error) {
	f.hit("GetWeapons")
	return f.weapons, nil
}

func (f *fakeWeapons) GetWeaponByID(_ context.Context, id string) (*model.Weapon, error) {
	f.hit("GetWeaponByID")
	for _, w := range f.weapons {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, pgerr.ErrNotFound
}

func (f *fakeWeapons) GetWeaponByName(_ context.Context, name string) (*model.Weapon, error) {
	f.hit("GetWeaponByName")
	for _, w := range f.weapons {
		if strings.EqualFold(w.Name, name) {
			return w, nil
		}
	}
	return nil, pgerr.ErrNotFound
}

func (f *fakeWeapons) GetWeaponsByCategory(_ context.Context, category string) ([]*model.Weapon, error) {
	f.hit("GetWeaponsByCategory")
	return lo.Filter(f.weapons, func(w *model.Weapon, _ int) bool {
		return strings.EqualFold(w.Category, category)
	}), nil
}

type fakeBossStats struct {
	calls
	stats []*model.BossStats
}

func (f *fakeBossStats) GetAllBossStats(context.Context) ([]*model.BossStats, error) {
	f.hit("GetAllBossStats")
	return f.stats, nil
}

func (f *fakeBossStats) GetBossStatsByName(_ context.Context, bossName string) (*model.BossStats, error) {
	f.hit("GetBossStatsByName")
	for _, b := range f.stats {
		if strings.EqualFold(b.BossName, bossName) {
			return b, nil
		}
	}
	return nil, pgerr.ErrNotFound
}

func (f *fakeBossStats) GetBossStatsByTier(_ context.Context, tier int) ([]*model.BossStats, error) {
	f.hit("GetBossStatsByTier")
	return lo.Filter(f.stats, func(b *model.BossStats, _ int) bool { return b.Tier == tier }), nil
}

func (f *fakeBossStats) GetBossStatsByWeakness(_ context.Context, weakness string) ([]*model.BossStats, error) {
	f.hit("GetBossStatsByWeakness")
	return lo.Filter(f.stats, func(b *model.BossStats, _ int) bool {
		return strings.Contains(strings.ToLower(b.Weakness), strings.ToLower(weakness))
	}), nil
}

type fakeBosses struct {
	calls
	bosses []*model.Boss
}

func (f *fakeBosses) GetBosses(context.Context) ([]*model.Boss, error) {
	f.hit("GetBosses")
	return f.bosses, nil
}

func (f *fakeBosses) GetBossByID(_ context.Context, id string) (*model.Boss, error) {
	f.hit("GetBossByID")
	for _, b := range f.bosses {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, pgerr.ErrNotFound
}

func (f *fakeBosses) GetBossesByRegion(_ context.Context, region string) ([]*model.Boss, error) {
	f.hit("GetBossesByRegion")
	return lo.Filter(f.bosses, func(b *model.Boss, _ int) bool { return strings.EqualFold(b.Region, region) }), nil
}

func (f *fakeBosses) GetBossesByLocation(_ context.Context, location string) ([]*model.Boss, error) {
	f.hit("GetBossesByLocation")
	return lo.Filter(f.bosses, func(b *model.Boss, _ int) bool { return strings.EqualFold(b.Location, location) }), nil
}

// fakeProgress mimics the row semantics of repo.Progress: every read and
// write hands out a copy.
type fakeProgress struct {
	calls
	mu   sync.Mutex
	rows map[string]*model.PlayerProgress
}

func newFakeProgress() *fakeProgress {
	return &fakeProgress{rows: make(map[string]*model.PlayerProgress)}
}

func cloneProgress(p *model.PlayerProgress) *model.PlayerProgress {
	c := *p
	c.VisitedLocationIDs = append([]string{}, p.VisitedLocationIDs...)
	c.DefeatedBossIDs = append([]string{}, p.DefeatedBossIDs...)
	c.ObtainedWeaponIDs = append([]string{}, p.ObtainedWeaponIDs...)
	return &c
}

func (f *fakeProgress) CreateProgress(_ context.Context, p *model.PlayerProgress) error {
	f.hit("CreateProgress")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.PlayerName == p.PlayerName {
			return pgerr.ErrConflict
		}
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.rows[p.ID] = cloneProgress(p)
	return nil
}

func (f *fakeProgress) GetProgressByID(_ context.Context, id string) (*model.PlayerProgress, error) {
	f.hit("GetProgressByID")
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, pgerr.ErrNotFound
	}
	return cloneProgress(row), nil
}

func (f *fakeProgress) GetProgressByName(_ context.Context, playerName string) (*model.PlayerProgress, error) {
	f.hit("GetProgressByName")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if strings.EqualFold(row.PlayerName, playerName) {
			return cloneProgress(row), nil
		}
	}
	return nil, pgerr.ErrNotFound
}

func (f *fakeProgress) GetProgressesByUserID(_ context.Context, userID string) ([]*model.PlayerProgress, error) {
	f.hit("GetProgressesByUserID")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*model.PlayerProgress{}
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, cloneProgress(row))
		}
	}
	return out, nil
}

func (f *fakeProgress) list(row *model.PlayerProgress, list repo.ProgressList) *[]string {
	switch list {
	case repo.VisitedLocations:
		return &row.VisitedLocationIDs
	case repo.DefeatedBosses:
		return &row.DefeatedBossIDs
	default:
		return &row.ObtainedWeaponIDs
	}
}

func (f *fakeProgress) AddToList(_ context.Context, progressID string, list repo.ProgressList, id string) (*model.PlayerProgress, error) {
	f.hit("AddToList")
	return f.update(progressID, func(row *model.PlayerProgress) {
		ids := f.list(row, list)
		if !lo.Contains(*ids, id) {
			*ids = append(*ids, id)
		}
	})
}

func (f *fakeProgress) RemoveFromList(_ context.Context, progressID string, list repo.ProgressList, id string) (*model.PlayerProgress, error) {
	f.hit("RemoveFromList")
	return f.update(progressID, func(row *model.PlayerProgress) {
		ids := f.list(row, list)
		*ids = lo.Without(*ids, id)
	})
}

func (f *fakeProgress) IncrementDeaths(_ context.Context, progressID string) (*model.PlayerProgress, error) {
	f.hit("IncrementDeaths")
	return f.update(progressID, func(row *model.PlayerProgress) {
		row.TotalDeaths++
	})
}

func (f *fakeProgress) DeleteProgress(_ context.Context, id string) error {
	f.hit("DeleteProgress")
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return pgerr.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeProgress) update(id string, fn func(row *model.PlayerProgress)) (*model.PlayerProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, pgerr.ErrNotFound
	}
	fn(row)
	row.UpdatedAt = time.Now()
	return cloneProgress(row), nil
}

type fakeFights struct {
	calls
	mu       sync.Mutex
	sessions []*model.FightSession
	attempts []*model.FightAttempt
}

func cloneSession(s *model.FightSession) *model.FightSession {
	c := *s
	c.WeaponsTriedIDs = append([]string{}, s.WeaponsTriedIDs...)
	return &c
}

func (f *fakeFights) CreateSession(_ context.Context, s *model.FightSession) error {
	f.hit("CreateSession")
	f.mu.Lock()
	defer f.mu.Unlock()
	s.StartedAt = time.Now()
	f.sessions = append(f.sessions, cloneSession(s))
	return nil
}

func (f *fakeFights) find(id string) *model.FightSession {
	for _, s := range f.sessions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (f *fakeFights) GetSessionByID(_ context.Context, id string) (*model.FightSession, error) {
	f.hit("GetSessionByID")
	f.mu.Lock()
	defer f.mu.Unlock()
	if s := f.find(id); s != nil {
		return cloneSession(s), nil
	}
	return nil, pgerr.ErrNotFound
}

func (f *fakeFights) GetActiveSession(_ context.Context, progressID, bossID string) (*model.FightSession, error) {
	f.hit("GetActiveSession")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.ProgressID == progressID && s.BossID == bossID && s.IsActive {
			return cloneSession(s), nil
		}
	}
	return nil, pgerr.ErrNotFound
}

func (f *fakeFights) GetSessionsByProgressID(_ context.Context, progressID string) ([]*model.FightSession, error) {
	f.hit("GetSessionsByProgressID")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*model.FightSession{}
	for _, s := range f.sessions {
		if s.ProgressID == progressID {
			out = append(out, cloneSession(s))
		}
	}
	return out, nil
}

func (f *fakeFights) filterAttempts(keep func(a *model.FightAttempt) bool) []*model.FightAttempt {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*model.FightAttempt{}
	for _, a := range f.attempts {
		if keep(a) {
			c := *a
			out = append(out, &c)
		}
	}
	return out
}

func (f *fakeFights) GetAttemptsBySessionID(_ context.Context, sessionID string) ([]*model.FightAttempt, error) {
	f.hit("GetAttemptsBySessionID")
	return f.filterAttempts(func(a *model.FightAttempt) bool { return a.SessionID == sessionID }), nil
}

func (f *fakeFights) GetAttemptsByProgressID(_ context.Context, progressID string) ([]*model.FightAttempt, error) {
	f.hit("GetAttemptsByProgressID")
	return f.filterAttempts(func(a *model.FightAttempt) bool { return a.ProgressID == progressID }), nil
}

func (f *fakeFights) GetAttemptsByProgressAndBoss(_ context.Context, progressID, bossID string) ([]*model.FightAttempt, error) {
	f.hit("GetAttemptsByProgressAndBoss")
	return f.filterAttempts(func(a *model.FightAttempt) bool {
		return a.ProgressID == progressID && a.BossID == bossID
	}), nil
}

func (f *fakeFights) AppendAttempt(_ context.Context, sessionID string, attempt *model.FightAttempt) (*model.FightSession, error) {
	f.hit("AppendAttempt")
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.find(sessionID)
	if s == nil {
		return nil, pgerr.ErrNotFound
	}
	if !s.IsActive {
		return nil, repo.ErrSessionClosed
	}
	s.TotalAttempts++
	s.TotalTimeSpentSecs += attempt.TimeSpentSecs
	attempt.SessionID = s.ID
	attempt.AttemptNumber = s.TotalAttempts
	attempt.AttemptedAt = time.Now()
	if attempt.WeaponID.Valid && !lo.Contains(s.WeaponsTriedIDs, attempt.WeaponID.String) {
		s.WeaponsTriedIDs = append(s.WeaponsTriedIDs, attempt.WeaponID.String)
	}
	if attempt.Victory {
		s.IsActive = false
		s.Victory = true
		s.EndedAt = null.TimeFrom(time.Now())
		s.VictoryWeaponID = attempt.WeaponID
		s.VictoryAttemptNumber = null.IntFrom(int64(attempt.AttemptNumber))
	}
	c := *attempt
	f.attempts = append(f.attempts, &c)
	return cloneSession(s), nil
}

func (f *fakeFights) EndSession(_ context.Context, sessionID string) (*model.FightSession, error) {
	f.hit("EndSession")
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.find(sessionID)
	if s == nil {
		return nil, pgerr.ErrNotFound
	}
	s.IsActive = false
	if !s.EndedAt.Valid {
		s.EndedAt = null.TimeFrom(time.Now())
	}
	return cloneSession(s), nil
}

func testWeapons() []*model.Weapon {
	return []*model.Weapon{
		{
			ID: "uchigatana", Name: "Uchigatana", Category: "Katana", Weight: 5.5,
			Attack:             []model.AttackEntry{{Name: "Phy", Amount: 115}},
			ScalesWith:         []model.ScalingEntry{{Name: "Str", Grade: "D"}, {Name: "Dex", Grade: "C"}},
			RequiredAttributes: []model.RequirementEntry{{Name: "Str", Amount: 11}, {Name: "Dex", Amount: 15}},
		},
		{
			ID: "club", Name: "Club", Category: "Hammer", Weight: 3,
			Attack:             []model.AttackEntry{{Name: "Phy", Amount: 103}},
			ScalesWith:         []model.ScalingEntry{{Name: "Str", Grade: "C"}},
			RequiredAttributes: []model.RequirementEntry{{Name: "Str", Amount: 10}},
		},
		{
			ID: "moonveil", Name: "Moonveil", Category: "Katana", Weight: 6.5,
			Attack:             []model.AttackEntry{{Name: "Phy", Amount: 73}, {Name: "Mag", Amount: 87}},
			ScalesWith:         []model.ScalingEntry{{Name: "Dex", Grade: "C"}, {Name: "Int", Grade: "B"}},
			RequiredAttributes: []model.RequirementEntry{{Name: "Str", Amount: 12}, {Name: "Dex", Amount: 18}, {Name: "Int", Amount: 23}},
		},
		{
			ID: "dagger", Name: "Dagger", Category: "Dagger", Weight: 1.5,
			Attack:             []model.AttackEntry{{Name: "Phy", Amount: 75}},
			ScalesWith:         []model.ScalingEntry{{Name: "Dex", Grade: "B"}},
			RequiredAttributes: []model.RequirementEntry{{Name: "Str", Amount: 5}, {Name: "Dex", Amount: 9}},
		},
	}
}

func testBossStats() []*model.BossStats {
	return []*model.BossStats{
		{
			ID: "margit", Name: "Margit", BossName: "Margit, the Fell Omen", HealthPoints: 4174,
			PhysicalResist: 10, MagicResist: 10, FireResist: 10, LightningResist: 10, HolyResist: 10,
			Weakness: "Strike", Tier: 2, AverageDamage: 400,
		},
		{
			ID: "rennala", Name: "Rennala", BossName: "Rennala, Queen of the Full Moon", HealthPoints: 7000,
			Weakness: "Slash", Tier: 3, AverageDamage: 500,
		},
	}
}

func testBosses() []*model.Boss {
	return []*model.Boss{
		{ID: "margit-the-fell-omen", Name: "Margit, the Fell Omen", Region: "Limgrave", Location: "Stormhill", HealthPoints: "4,174"},
		{ID: "godrick-the-grafted", Name: "Godrick the Grafted", Region: "Limgrave", Location: "Stormveil Castle", HealthPoints: "6,080"},
		{ID: "mohg", Name: "Mohg, the Omen", Region: "Leyndell", HealthPoints: "Unknown"},
		{ID: "rennala", Name: "Rennala, Queen of the Full Moon", Region: "Liurnia", HealthPoints: "7,000"},
	}
}

type testServices struct {
	weaponRepo    *fakeWeapons
	bossStatsRepo *fakeBossStats
	bossRepo      *fakeBosses
	progressRepo  *fakeProgress
	fightRepo     *fakeFights
	caches        *modelcache.Caches

	weapon    *Weapon
	bossStats *BossStats
	boss      *Boss
	progress  *Progress
	fight     *Fight
	analysis  *Analysis
	admin     *Admin
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	ts := &testServices{
		weaponRepo:    &fakeWeapons{weapons: testWeapons()},
		bossStatsRepo: &fakeBossStats{stats: testBossStats()},
		bossRepo:      &fakeBosses{bosses: testBosses()},
		progressRepo:  newFakeProgress(),
		fightRepo:     &fakeFights{},
		caches:        modelcache.New(cache.NewMemory(time.Minute)),
	}
	conf := &appconfig.Config{ConfigSpec: appconfig.ConfigSpec{
		AnalysisFanoutLimit: 2,
		AnalysisTimeout:     5 * time.Second,
	}}

	ts.weapon = NewWeapon(ts.weaponRepo, ts.caches)
	ts.bossStats = NewBossStats(ts.bossStatsRepo, ts.caches)
	ts.boss = NewBoss(ts.bossRepo, ts.bossStats, ts.caches)
	ts.progress = NewProgress(ts.progressRepo, ts.weapon, ts.boss, ts.caches)
	ts.fight = NewFight(ts.fightRepo, ts.progress, ts.boss, ts.caches)
	ts.analysis = NewAnalysis(conf, ts.weapon, ts.bossStats, ts.boss)
	ts.admin = NewAdmin(ts.caches)
	return ts
}

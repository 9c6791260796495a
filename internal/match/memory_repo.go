package match

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryMatchRepository keeps rows in process memory. It backs STORAGE_DRIVER=memory and tests.
type MemoryMatchRepository struct {
	mu      sync.Mutex
	nextID  uint
	matches map[uint]Match
	innings map[uint]Innings
	overs   map[uint]Over
	balls   map[uint]BallEvent

	// CommitHook, when set, runs before a commit is applied. A non-nil error aborts the commit.
	CommitHook func(Changeset) error
}

func NewMemoryMatchRepository() *MemoryMatchRepository {
	return &MemoryMatchRepository{
		matches: make(map[uint]Match),
		innings: make(map[uint]Innings),
		overs:   make(map[uint]Over),
		balls:   make(map[uint]BallEvent),
	}
}

func (r *MemoryMatchRepository) assignID(id *uint, createdAt *time.Time) {
	if *id != 0 {
		return
	}
	r.nextID++
	*id = r.nextID
	*createdAt = time.Now()
}

func (r *MemoryMatchRepository) CreateMatch(ctx context.Context, match *Match) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.assignID(&match.ID, &match.CreatedAt)
	r.matches[match.ID] = match.clone()
	return nil
}

func (r *MemoryMatchRepository) Commit(ctx context.Context, cs Changeset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CommitHook != nil {
		if err := r.CommitHook(cs); err != nil {
			return err
		}
	}

	if cs.Match != nil {
		r.assignID(&cs.Match.ID, &cs.Match.CreatedAt)
		r.matches[cs.Match.ID] = cs.Match.clone()
	}
	if cs.Innings != nil {
		r.assignID(&cs.Innings.ID, &cs.Innings.CreatedAt)
		r.innings[cs.Innings.ID] = cs.Innings.clone()
	}
	if cs.DeletedOver != nil {
		delete(r.overs, cs.DeletedOver.ID)
	}
	if cs.Over != nil {
		if cs.Over.InningsID == 0 && cs.Innings != nil {
			cs.Over.InningsID = cs.Innings.ID
		}
		r.assignID(&cs.Over.ID, &cs.Over.CreatedAt)
		r.overs[cs.Over.ID] = *cs.Over
	}
	if cs.Ball != nil {
		if cs.Ball.InningsID == 0 && cs.Innings != nil {
			cs.Ball.InningsID = cs.Innings.ID
		}
		r.assignID(&cs.Ball.ID, &cs.Ball.CreatedAt)
		r.balls[cs.Ball.ID] = cs.Ball.clone()
	}
	return nil
}

func (r *MemoryMatchRepository) DeleteMatch(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for innID, inn := range r.innings {
		if inn.MatchID != id {
			continue
		}
		for ovID, ov := range r.overs {
			if ov.InningsID == innID {
				delete(r.overs, ovID)
			}
		}
		for evID, ev := range r.balls {
			if ev.InningsID == innID {
				delete(r.balls, evID)
			}
		}
		delete(r.innings, innID)
	}
	delete(r.matches, id)
	return nil
}

func (r *MemoryMatchRepository) LoadMatch(ctx context.Context, id uint) (*MatchState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.matches[id]
	if !ok {
		return nil, nil
	}
	st := &MatchState{Match: m.clone(), Innings: []InningsState{}}
	for _, inn := range r.innings {
		if inn.MatchID != id {
			continue
		}
		is := InningsState{Innings: inn.clone(), Overs: []Over{}, Log: EventLog{Events: []BallEvent{}}}
		for _, ov := range r.overs {
			if ov.InningsID == inn.ID {
				is.Overs = append(is.Overs, ov)
			}
		}
		for _, ev := range r.balls {
			if ev.InningsID == inn.ID {
				is.Log.Events = append(is.Log.Events, ev.clone())
			}
		}
		sort.Slice(is.Overs, func(i, j int) bool { return is.Overs[i].Number < is.Overs[j].Number })
		sort.Slice(is.Log.Events, func(i, j int) bool { return is.Log.Events[i].Sequence < is.Log.Events[j].Sequence })
		st.Innings = append(st.Innings, is)
	}
	sort.Slice(st.Innings, func(i, j int) bool { return st.Innings[i].Innings.Number < st.Innings[j].Innings.Number })
	return st, nil
}

func (r *MemoryMatchRepository) FindMatchIDByPublicLink(ctx context.Context, link string) (uint, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, m := range r.matches {
		if m.PublicLink == link {
			return id, nil
		}
	}
	return 0, nil
}

func (r *MemoryMatchRepository) GetMatches(ctx context.Context, filter MatchFilter, page, pageSize int) ([]Match, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []Match
	for _, m := range r.matches {
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		if filter.TeamID != 0 && m.TeamA.TeamID != filter.TeamID && m.TeamB.TeamID != filter.TeamID {
			continue
		}
		all = append(all, m.clone())
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := int64(len(all))
	start := (page - 1) * pageSize
	if start >= len(all) {
		return []Match{}, total, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

package match

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Changeset is the set of rows touched by one scoring operation. It is written atomically.
// Rows with a zero ID are inserted and get their ID assigned in place.
type Changeset struct {
	Match       *Match
	Innings     *Innings
	DeletedOver *Over
	Over        *Over
	Ball        *BallEvent
}

// MatchFilter narrows GetMatches.
type MatchFilter struct {
	Status MatchStatus
	TeamID uint
}

// MatchRepository persists matches, innings, overs and ball events.
type MatchRepository interface {
	CreateMatch(ctx context.Context, match *Match) error
	// LoadMatch returns nil, nil when the match does not exist.
	LoadMatch(ctx context.Context, id uint) (*MatchState, error)
	// FindMatchIDByPublicLink returns 0, nil when no match has the link.
	FindMatchIDByPublicLink(ctx context.Context, link string) (uint, error)
	GetMatches(ctx context.Context, filter MatchFilter, page, pageSize int) ([]Match, int64, error)
	Commit(ctx context.Context, cs Changeset) error
	// DeleteMatch removes the match with its innings, overs and ball events.
	DeleteMatch(ctx context.Context, id uint) error
}

// GormMatchRepository implements MatchRepository using GORM
type GormMatchRepository struct {
	db *gorm.DB
}

// NewGormMatchRepository creates a new GormMatchRepository
func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

// Models lists the tables owned by this package, for AutoMigrate.
func Models() []interface{} {
	return []interface{}{&Match{}, &Innings{}, &Over{}, &BallEvent{}}
}

// WithTransaction implements transaction support
func (r *GormMatchRepository) WithTransaction(ctx context.Context, txFunc func(*GormMatchRepository) error) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	txRepo := &GormMatchRepository{db: tx}
	err := txFunc(txRepo)
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (r *GormMatchRepository) CreateMatch(ctx context.Context, match *Match) error {
	return r.db.WithContext(ctx).Create(match).Error
}

// Commit writes every row of the changeset in one transaction.
func (r *GormMatchRepository) Commit(ctx context.Context, cs Changeset) error {
	return r.WithTransaction(ctx, func(tx *GormMatchRepository) error {
		if cs.Match != nil {
			if err := tx.db.Save(cs.Match).Error; err != nil {
				return err
			}
		}
		if cs.Innings != nil {
			if err := tx.db.Save(cs.Innings).Error; err != nil {
				return err
			}
		}
		if cs.DeletedOver != nil && cs.DeletedOver.ID != 0 {
			// Hard delete: the (innings, number) slot is reused when the over is bowled again.
			if err := tx.db.Unscoped().Delete(&Over{}, cs.DeletedOver.ID).Error; err != nil {
				return err
			}
		}
		if cs.Over != nil {
			if cs.Over.InningsID == 0 && cs.Innings != nil {
				cs.Over.InningsID = cs.Innings.ID
			}
			if err := tx.db.Save(cs.Over).Error; err != nil {
				return err
			}
		}
		if cs.Ball != nil {
			if cs.Ball.InningsID == 0 && cs.Innings != nil {
				cs.Ball.InningsID = cs.Innings.ID
			}
			if err := tx.db.Save(cs.Ball).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteMatch hard-deletes the match and everything scored under it in one transaction.
func (r *GormMatchRepository) DeleteMatch(ctx context.Context, id uint) error {
	return r.WithTransaction(ctx, func(tx *GormMatchRepository) error {
		inningsIDs := tx.db.Model(&Innings{}).Select("id").Where("match_id = ?", id)
		if err := tx.db.Unscoped().Where("innings_id IN (?)", inningsIDs).Delete(&BallEvent{}).Error; err != nil {
			return err
		}
		if err := tx.db.Unscoped().Where("innings_id IN (?)", inningsIDs).Delete(&Over{}).Error; err != nil {
			return err
		}
		if err := tx.db.Unscoped().Where("match_id = ?", id).Delete(&Innings{}).Error; err != nil {
			return err
		}
		return tx.db.Unscoped().Delete(&Match{}, id).Error
	})
}

func (r *GormMatchRepository) LoadMatch(ctx context.Context, id uint) (*MatchState, error) {
	db := r.db.WithContext(ctx)

	var m Match
	if err := db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var innings []Innings
	if err := db.Where("match_id = ?", id).Order("number asc").Find(&innings).Error; err != nil {
		return nil, err
	}

	st := &MatchState{Match: m, Innings: make([]InningsState, 0, len(innings))}
	for _, inn := range innings {
		overs := []Over{}
		if err := db.Where("innings_id = ?", inn.ID).Order("number asc").Find(&overs).Error; err != nil {
			return nil, err
		}
		events := []BallEvent{}
		if err := db.Where("innings_id = ?", inn.ID).Order("sequence asc").Find(&events).Error; err != nil {
			return nil, err
		}
		st.Innings = append(st.Innings, InningsState{Innings: inn, Overs: overs, Log: EventLog{Events: events}})
	}
	return st, nil
}

func (r *GormMatchRepository) FindMatchIDByPublicLink(ctx context.Context, link string) (uint, error) {
	var m Match
	err := r.db.WithContext(ctx).Select("id").Where("public_link = ?", link).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return m.ID, nil
}

func (r *GormMatchRepository) GetMatches(ctx context.Context, filter MatchFilter, page, pageSize int) ([]Match, int64, error) {
	var matches []Match
	var total int64

	query := r.db.WithContext(ctx).Model(&Match{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.TeamID != 0 {
		query = query.Where("(team_a_team_id = ? OR team_b_team_id = ?)", filter.TeamID, filter.TeamID)
	}

	// Count total before pagination
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Order("id desc").Offset(offset).Limit(pageSize).Find(&matches).Error; err != nil {
		return nil, 0, err
	}
	return matches, total, nil
}

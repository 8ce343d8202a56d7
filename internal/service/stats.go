package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserStats represents statistics for a user
type UserStats struct {
	UserID        string `json:"userId"`
	Username      string `json:"username"`
	Projects      int    `json:"projects"`
	OwnedProjects int    `json:"ownedProjects"`
}

// Totals represents overall counters
type Totals struct {
	Users       int `json:"users"`
	Projects    int `json:"projects"`
	Memberships int `json:"memberships"`
}

// Stats represents combined statistics
type Stats struct {
	UserStats []UserStats `json:"userStats"`
	Totals    Totals      `json:"totals"`
}

// StatsService handles statistics queries
type StatsService struct {
	db *pgxpool.Pool
}

// NewStatsService creates a new StatsService
func NewStatsService(db *pgxpool.Pool) *StatsService {
	return &StatsService{db: db}
}

// GetStats returns overall statistics
func (s *StatsService) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{UserStats: []UserStats{}}

	// Get user statistics
	userQuery := `
		SELECT
			u.id::text,
			u.username,
			COUNT(m.id) AS projects,
			COUNT(CASE WHEN m.role = 'owner' THEN 1 END) AS owned_projects
		FROM users u
		LEFT JOIN users_on_projects m ON m.user_id = u.id
		GROUP BY u.id, u.username
		ORDER BY projects DESC, u.username
	`

	rows, err := s.db.Query(ctx, userQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var us UserStats
		if err := rows.Scan(&us.UserID, &us.Username, &us.Projects, &us.OwnedProjects); err != nil {
			return nil, err
		}
		stats.UserStats = append(stats.UserStats, us)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Get totals
	totalsQuery := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM projects),
			(SELECT COUNT(*) FROM users_on_projects)
	`

	if err := s.db.QueryRow(ctx, totalsQuery).Scan(
		&stats.Totals.Users,
		&stats.Totals.Projects,
		&stats.Totals.Memberships,
	); err != nil {
		return nil, err
	}

	return stats, nil
}

package domain

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Profile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

type Club struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	DatabasePrefix string    `json:"database_prefix"`
	MemberCount    int       `json:"member_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type Membership struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	ClubID   string    `json:"club_id"`
	ClubName string    `json:"club_name"`
	JoinedAt time.Time `json:"joined_at"`
}

// Session is one player's statistics for one play date. It is the superset of
// the Vikings friday and JDA stats rows; columns a club does not track read as
// zero. Dates are kept as the raw text from the export and only parsed for
// display formatting.
type Session struct {
	ID            int64   `json:"id"`
	Date          string  `json:"date"`
	Player        string  `json:"player"`
	Points        int     `json:"points"`
	Bonus         int     `json:"bonus"`
	Games         int     `json:"games"`
	Won           int     `json:"won"`
	Lost          int     `json:"lost"`
	Darts         int     `json:"darts"`
	ScoreLeft     int     `json:"score_left"`
	Average       float64 `json:"average"`
	OneEighty     int     `json:"one_eighty"`
	OneSeventyOne int     `json:"one_seventy_one"`
	HighCloser    int     `json:"high_closer"`
	Winner        int     `json:"winner"`
	BlockPosition int     `json:"block_position"`
	Block         string  `json:"block"`
	Season        string  `json:"season"`
}

// Match is one head-to-head result between two players.
type Match struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	Player   string  `json:"player"`
	Opponent string  `json:"opponent"`
	Legs     int     `json:"legs"`
	Average  float64 `json:"average"`
	Result   string  `json:"result"`
	Season   string  `json:"season"`
}

// Leg is a single game within a match, tracked by JDA only.
type Leg struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Player    string `json:"player"`
	Opponent  string `json:"opponent"`
	Darts     int    `json:"darts"`
	ScoreLeft int    `json:"score_left"`
	Result    string `json:"result"`
}

// MemberLink maps a free-text player name from the statistic tables to a
// profile. UserID is empty for players with no linked account.
type MemberLink struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Member  string `json:"member"`
	Season  int    `json:"season"`
	Color   string `json:"color"`
	UserID  string `json:"user_id"`
}

type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	UserID    string    `json:"user_id"`
	UserEmail string    `json:"user_email"`
	UserName  string    `json:"user_name"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

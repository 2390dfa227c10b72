package dto

import (
	"time"

	"goclan/pkg/database/models"
)

// Member is a roster member formatted for the API.
type Member struct {
	PlayerId   string     `json:"playerId"`
	Name       string     `json:"name"`
	JoinedDate time.Time  `json:"joinedDate"`
	LeftDate   *time.Time `json:"leftDate,omitempty"`
	KickedDate *time.Time `json:"kickedDate,omitempty"`
	Active     bool       `json:"active"`
}

// NewMember formats a roster member row.
func NewMember(member *models.RosterMember) *Member {
	return &Member{
		PlayerId:   member.PlayerId,
		Name:       member.Name,
		JoinedDate: member.JoinedDate,
		LeftDate:   member.LeftDate,
		KickedDate: member.KickedDate,
		Active:     member.Active,
	}
}

// NewMemberList formats a member list.
func NewMemberList(members []*models.RosterMember) []*Member {
	list := make([]*Member, 0, len(members))
	for _, member := range members {
		list = append(list, NewMember(member))
	}
	return list
}

// ChurnBucket is one calendar month of roster movement. A member can
// contribute to several buckets through different event streams.
type ChurnBucket struct {
	Month  string `json:"month"`
	Joined int    `json:"joined"`
	Left   int    `json:"left"`
	Kicked int    `json:"kicked"`
}

// ChurnReport is the roster turnover aggregate.
type ChurnReport struct {
	ClanId uint `json:"clanId"`

	Months []*ChurnBucket `json:"months"`

	ActiveMembers int `json:"activeMembers"`
	TotalJoined   int `json:"totalJoined"`

	RetentionRate float64 `json:"retentionRate"`

	// Average tenure in days over the currently active members only.
	AvgTenureDays float64 `json:"avgTenureDays"`
}

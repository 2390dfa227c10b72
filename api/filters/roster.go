package filters

import (
	"time"

	"goclan/pkg/apperrors"
)

// MemberURIParams are the URI params of the member endpoints.
type MemberURIParams struct {
	ClanId   uint   `uri:"clanId" binding:"required"`
	PlayerId string `uri:"playerId" binding:"required"`
}

// AddMemberBody is an explicit roster addition.
type AddMemberBody struct {
	PlayerId   string `json:"playerId" binding:"required"`
	Name       string `json:"name"`
	JoinedDate string `json:"joinedDate"`
}

// AddMemberFilter is the service input for an explicit roster addition.
type AddMemberFilter struct {
	ClanId     uint
	ActorId    string
	PlayerId   string
	Name       string
	JoinedDate time.Time
}

// NewAddMemberFilter validates the bound body into a service filter.
// An empty joined date defaults to now.
func NewAddMemberFilter(clanId uint, actorId string, body *AddMemberBody) (*AddMemberFilter, error) {
	joined := time.Now().UTC()
	if body.JoinedDate != "" {
		parsed, err := time.Parse(dateLayout, body.JoinedDate)
		if err != nil {
			return nil, apperrors.Newf(apperrors.KindValidation, "invalid joined date %q", body.JoinedDate)
		}
		joined = parsed
	}

	return &AddMemberFilter{
		ClanId:     clanId,
		ActorId:    actorId,
		PlayerId:   body.PlayerId,
		Name:       body.Name,
		JoinedDate: joined,
	}, nil
}

// ChurnFilter is the service input for the churn aggregation.
type ChurnFilter struct {
	ClanId uint
	From   time.Time
	To     time.Time
}

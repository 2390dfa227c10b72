package filters

import (
	"time"

	"goclan/pkg/apperrors"
)

// URI params for the battle endpoints.
type BattleURIParams struct {
	ClanId   uint `uri:"clanId" binding:"required"`
	BattleId int  `uri:"battleId" binding:"required"`
}

// ClanURIParams is the clan-scoped prefix shared by the list endpoints.
type ClanURIParams struct {
	ClanId uint `uri:"clanId" binding:"required"`
}

// BattlePlayerBody is one participant line of a submission.
type BattlePlayerBody struct {
	PlayerId string `json:"playerId" binding:"required"`
	Rank     int    `json:"rank"`
	Score    int    `json:"score"`
	Fp       int    `json:"fp"`
}

// BattleNonplayerBody is one non-participant line of a submission.
type BattleNonplayerBody struct {
	PlayerId   string `json:"playerId" binding:"required"`
	Fp         int    `json:"fp"`
	Reserve    bool   `json:"reserve"`
	ActionCode string `json:"actionCode"`
}

// BattleBody is the raw battle submission.
type BattleBody struct {
	BattleId           int                   `json:"battleId" binding:"required"`
	OpponentName       string                `json:"opponentName" binding:"required"`
	OpponentCountry    string                `json:"opponentCountry"`
	OpponentExternalId string                `json:"opponentId"`
	Score              int                   `json:"score"`
	OpponentScore      int                   `json:"opponentScore"`
	BaselineFp         int                   `json:"baselineFp" binding:"required"`
	OpponentFp         int                   `json:"opponentFp"`
	Players            []BattlePlayerBody    `json:"players" binding:"required,dive"`
	Nonplayers         []BattleNonplayerBody `json:"nonplayers" binding:"dive"`
}

// BattleFilter is the service input for creating or updating a battle.
type BattleFilter struct {
	ClanId  uint
	ActorId string

	BattleId           int
	OpponentName       string
	OpponentCountry    string
	OpponentExternalId string
	Score              int
	OpponentScore      int
	BaselineFp         int
	OpponentFp         int
	Players            []BattlePlayerBody
	Nonplayers         []BattleNonplayerBody
}

// NewBattleFilter builds the service filter from the bound body.
func NewBattleFilter(clanId uint, actorId string, body *BattleBody) *BattleFilter {
	return &BattleFilter{
		ClanId:             clanId,
		ActorId:            actorId,
		BattleId:           body.BattleId,
		OpponentName:       body.OpponentName,
		OpponentCountry:    body.OpponentCountry,
		OpponentExternalId: body.OpponentExternalId,
		Score:              body.Score,
		OpponentScore:      body.OpponentScore,
		BaselineFp:         body.BaselineFp,
		OpponentFp:         body.OpponentFp,
		Players:            body.Players,
		Nonplayers:         body.Nonplayers,
	}
}

// DateRangeQueryParams is the optional date window of the list endpoints.
type DateRangeQueryParams struct {
	From string `form:"from"`
	To   string `form:"to"`
}

const dateLayout = "2006-01-02"

// ParseDateRange validates the optional date window.
func (qp *DateRangeQueryParams) ParseDateRange() (time.Time, time.Time, error) {
	var from, to time.Time
	var err error

	if qp.From != "" {
		from, err = time.Parse(dateLayout, qp.From)
		if err != nil {
			return from, to, apperrors.Newf(apperrors.KindValidation, "invalid from date %q", qp.From)
		}
	}

	if qp.To != "" {
		to, err = time.Parse(dateLayout, qp.To)
		if err != nil {
			return from, to, apperrors.Newf(apperrors.KindValidation, "invalid to date %q", qp.To)
		}
	}

	return from, to, nil
}

// ListBattlesFilter is the service input for the battle list.
type ListBattlesFilter struct {
	ClanId uint
	From   time.Time
	To     time.Time
}

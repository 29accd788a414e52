package store

import (
	"context"

	"github.com/pocketbase/pocketbase/core"

	"club-portal/models"
	"club-portal/policy"
	"club-portal/security"
)

var winnerOrderFields = map[string]bool{
	"rank":        true,
	"player_name": true,
	"created":     true,
}

// ListWinners returns every winner, best rank first by default. Winners are
// public.
func (s *Store) ListWinners(ctx context.Context, ord Ordering) ([]models.Winner, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailableError(err)
	}

	sort, err := ord.sortExpr(winnerOrderFields, "rank")
	if err != nil {
		return nil, validationError(err)
	}

	records, err := s.app.FindRecordsByFilter(policy.CollectionWinners, allFilter, sort, 0, 0)
	if err != nil {
		return nil, storeError(err)
	}

	winners := make([]models.Winner, 0, len(records))
	for _, record := range records {
		winners = append(winners, winnerFromRecord(record))
	}
	return winners, nil
}

func (s *Store) CreateWinner(ctx context.Context, actor *core.Record, form *models.WinnerForm) (*models.Winner, error) {
	if !s.admin.Allowed(actor) {
		return nil, unauthorizedError()
	}
	if err := form.Validate(); err != nil {
		return nil, validationError(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, unavailableError(err)
	}

	collection, err := s.app.FindCollectionByNameOrId(policy.CollectionWinners)
	if err != nil {
		return nil, unavailableError(err)
	}

	record := core.NewRecord(collection)
	applyWinnerForm(record, form)

	if err := s.app.Save(record); err != nil {
		return nil, storeError(err)
	}

	winner := winnerFromRecord(record)
	return &winner, nil
}

func (s *Store) UpdateWinner(ctx context.Context, actor *core.Record, id string, form *models.WinnerForm) (*models.Winner, error) {
	if !s.admin.Allowed(actor) {
		return nil, unauthorizedError()
	}
	if err := form.Validate(); err != nil {
		return nil, validationError(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, unavailableError(err)
	}

	record, err := s.app.FindRecordById(policy.CollectionWinners, id)
	if err != nil {
		return nil, notFoundError(err)
	}

	applyWinnerForm(record, form)

	if err := s.app.Save(record); err != nil {
		return nil, storeError(err)
	}

	winner := winnerFromRecord(record)
	return &winner, nil
}

func (s *Store) DeleteWinner(ctx context.Context, actor *core.Record, id string) error {
	if !s.admin.Allowed(actor) {
		return unauthorizedError()
	}
	if err := ctx.Err(); err != nil {
		return unavailableError(err)
	}

	record, err := s.app.FindRecordById(policy.CollectionWinners, id)
	if err != nil {
		return notFoundError(err)
	}

	if err := s.app.Delete(record); err != nil {
		return storeError(err)
	}
	return nil
}

func applyWinnerForm(record *core.Record, form *models.WinnerForm) {
	record.Set("event_id", form.EventID)
	record.Set("player_name", security.Sanitize(form.PlayerName))
	record.Set("team_name", security.Sanitize(form.TeamName))
	record.Set("rank", form.RankValue())
	record.Set("image_url", security.SanitizeURL(form.ImageURL))
	record.Set("team_members", security.Sanitize(form.TeamMembers))
}

func winnerFromRecord(record *core.Record) models.Winner {
	return models.Winner{
		ID:          record.Id,
		EventID:     record.GetString("event_id"),
		PlayerName:  record.GetString("player_name"),
		TeamName:    record.GetString("team_name"),
		Rank:        record.GetInt("rank"),
		ImageURL:    record.GetString("image_url"),
		TeamMembers: record.GetString("team_members"),
		Created:     record.GetDateTime("created").Time(),
	}
}

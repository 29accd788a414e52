package store

import (
	"context"

	"github.com/pocketbase/pocketbase/core"

	"club-portal/models"
	"club-portal/policy"
	"club-portal/security"
)

// ListTeam returns the team roster. While the collection is empty the static
// in-application roster is served instead, so the about page never renders
// blank.
func (s *Store) ListTeam(ctx context.Context) ([]models.TeamMember, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailableError(err)
	}

	records, err := s.app.FindRecordsByFilter(policy.CollectionTeam, allFilter, "name", 0, 0)
	if err != nil {
		return nil, storeError(err)
	}

	if len(records) == 0 {
		return models.DefaultRoster, nil
	}

	members := make([]models.TeamMember, 0, len(records))
	for _, record := range records {
		members = append(members, teamMemberFromRecord(record))
	}
	return members, nil
}

func (s *Store) CreateTeamMember(ctx context.Context, actor *core.Record, form *models.TeamMemberForm) (*models.TeamMember, error) {
	if !s.admin.Allowed(actor) {
		return nil, unauthorizedError()
	}
	if err := form.Validate(); err != nil {
		return nil, validationError(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, unavailableError(err)
	}

	collection, err := s.app.FindCollectionByNameOrId(policy.CollectionTeam)
	if err != nil {
		return nil, unavailableError(err)
	}

	record := core.NewRecord(collection)
	applyTeamMemberForm(record, form)

	if err := s.app.Save(record); err != nil {
		return nil, storeError(err)
	}

	member := teamMemberFromRecord(record)
	return &member, nil
}

func (s *Store) UpdateTeamMember(ctx context.Context, actor *core.Record, id string, form *models.TeamMemberForm) (*models.TeamMember, error) {
	if !s.admin.Allowed(actor) {
		return nil, unauthorizedError()
	}
	if err := form.Validate(); err != nil {
		return nil, validationError(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, unavailableError(err)
	}

	record, err := s.app.FindRecordById(policy.CollectionTeam, id)
	if err != nil {
		return nil, notFoundError(err)
	}

	applyTeamMemberForm(record, form)

	if err := s.app.Save(record); err != nil {
		return nil, storeError(err)
	}

	member := teamMemberFromRecord(record)
	return &member, nil
}

func (s *Store) DeleteTeamMember(ctx context.Context, actor *core.Record, id string) error {
	if !s.admin.Allowed(actor) {
		return unauthorizedError()
	}
	if err := ctx.Err(); err != nil {
		return unavailableError(err)
	}

	record, err := s.app.FindRecordById(policy.CollectionTeam, id)
	if err != nil {
		return notFoundError(err)
	}

	if err := s.app.Delete(record); err != nil {
		return storeError(err)
	}
	return nil
}

func applyTeamMemberForm(record *core.Record, form *models.TeamMemberForm) {
	bio := security.Sanitize(form.Bio)
	if bio == "" {
		bio = models.RoleBio(form.Role)
	}

	record.Set("name", security.Sanitize(form.Name))
	record.Set("role", security.Sanitize(form.Role))
	record.Set("bio", bio)
	record.Set("image_url", security.SanitizeURL(form.ImageURL))
	record.Set("linkedin_url", security.SanitizeURL(form.LinkedinURL))
	record.Set("github_url", security.SanitizeURL(form.GithubURL))
	record.Set("email", security.NormalizeEmail(form.Email))
}

func teamMemberFromRecord(record *core.Record) models.TeamMember {
	return models.TeamMember{
		ID:          record.Id,
		Name:        record.GetString("name"),
		Role:        record.GetString("role"),
		Bio:         record.GetString("bio"),
		ImageURL:    record.GetString("image_url"),
		LinkedinURL: record.GetString("linkedin_url"),
		GithubURL:   record.GetString("github_url"),
		Email:       record.GetString("email"),
	}
}

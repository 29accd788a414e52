package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("team_members")

		collection.Fields.Add(
			&core.TextField{
				Name:     "name",
				Required: true,
				Max:      500,
			},
			&core.TextField{
				Name:     "role",
				Required: true,
				Max:      500,
			},
			&core.TextField{
				Name: "bio",
				Max:  500,
			},
			&core.URLField{
				Name: "image_url",
			},
			&core.URLField{
				Name: "linkedin_url",
			},
			&core.URLField{
				Name: "github_url",
			},
			&core.EmailField{
				Name: "email",
			},
		)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("team_members")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}

package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		events, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("winners")

		collection.Fields.Add(
			&core.RelationField{
				Name:          "event_id",
				Required:      true,
				CollectionId:  events.Id,
				MaxSelect:     1,
				CascadeDelete: true,
			},
			&core.TextField{
				Name:     "player_name",
				Required: true,
				Max:      500,
			},
			&core.TextField{
				Name: "team_name",
				Max:  500,
			},
			&core.NumberField{
				Name:     "rank",
				Required: true,
				OnlyInt:  true,
				Min:      types.Pointer(1.0),
				Max:      types.Pointer(1000.0),
			},
			&core.URLField{
				Name: "image_url",
			},
			// Newline-delimited member list, free text.
			&core.TextField{
				Name: "team_members",
				Max:  500,
			},
			&core.AutodateField{
				Name:     "created",
				OnCreate: true,
			},
		)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("winners")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}

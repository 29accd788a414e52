package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("events")

		collection.Fields.Add(
			&core.TextField{
				Name:     "title",
				Required: true,
				Max:      500,
			},
			&core.TextField{
				Name: "description",
				Max:  500,
			},
			&core.TextField{
				Name:     "date",
				Required: true,
				Pattern:  `^\d{4}-\d{2}-\d{2}$`,
			},
			&core.TextField{
				Name:     "time",
				Required: true,
				Pattern:  `^\d{2}:\d{2}$`,
			},
			&core.TextField{
				Name:     "location",
				Required: true,
				Max:      500,
			},
			&core.SelectField{
				Name:      "status",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"upcoming", "active", "past"},
			},
			&core.NumberField{
				Name:    "attendees",
				OnlyInt: true,
				Min:     types.Pointer(0.0),
			},
			&core.URLField{
				Name: "image_url",
			},
			&core.URLField{
				Name: "registration_link",
			},
			&core.AutodateField{
				Name:     "created",
				OnCreate: true,
			},
			&core.AutodateField{
				Name:     "updated",
				OnCreate: true,
				OnUpdate: true,
			},
		)

		// Access rules are stamped from the policy table at serve time.

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}

package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("contact_messages")

		collection.Fields.Add(
			&core.TextField{
				Name:     "name",
				Required: true,
				Max:      500,
			},
			&core.EmailField{
				Name:     "email",
				Required: true,
			},
			&core.TextField{
				Name:     "message",
				Required: true,
				Max:      500,
			},
			&core.TextField{
				Name: "reference",
				Max:  16,
			},
			&core.AutodateField{
				Name:     "created",
				OnCreate: true,
			},
		)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("contact_messages")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}

// Package policy declares, per collection, which caller identities may
// perform each operation, and stamps the compiled rules onto the store so
// enforcement happens at the data boundary rather than in handlers.
package policy

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"club-portal/security"
)

// Access is the caller condition required for an operation.
type Access int

const (
	// Disabled locks the operation entirely (only out-of-band superuser
	// access remains).
	Disabled Access = iota
	// Anyone permits the operation without authentication.
	Anyone
	// AdminOnly permits the operation for configured administrator
	// identities only.
	AdminOnly
)

func (a Access) String() string {
	switch a {
	case Anyone:
		return "anyone"
	case AdminOnly:
		return "admin-only"
	default:
		return "disabled"
	}
}

// Rules holds the per-operation access levels for one collection. List and
// View are split so collection listings and single-record reads can diverge,
// even though the table currently always sets them together.
type Rules struct {
	List   Access
	View   Access
	Create Access
	Update Access
	Delete Access
}

// Governed collection names.
const (
	CollectionEvents        = "events"
	CollectionWinners       = "winners"
	CollectionRegistrations = "registrations"
	CollectionContact       = "contact_messages"
	CollectionTeam          = "team_members"
)

// Table is the access policy table: public-read/admin-write for
// informational collections, insert-only from the public side for submission
// collections.
var Table = map[string]Rules{
	CollectionEvents:        {List: Anyone, View: Anyone, Create: AdminOnly, Update: AdminOnly, Delete: AdminOnly},
	CollectionWinners:       {List: Anyone, View: Anyone, Create: AdminOnly, Update: AdminOnly, Delete: AdminOnly},
	CollectionRegistrations: {List: AdminOnly, View: AdminOnly, Create: Anyone, Update: Disabled, Delete: Disabled},
	CollectionContact:       {List: AdminOnly, View: AdminOnly, Create: Anyone, Update: Disabled, Delete: Disabled},
	CollectionTeam:          {List: Anyone, View: Anyone, Create: AdminOnly, Update: AdminOnly, Delete: AdminOnly},
}

// RuleFor returns the declared access for a (collection, operation) pair,
// failing closed for unknown pairs.
func RuleFor(collection, op string) Access {
	rules, ok := Table[collection]
	if !ok {
		return Disabled
	}
	switch op {
	case "list":
		return rules.List
	case "view":
		return rules.View
	case "create":
		return rules.Create
	case "update":
		return rules.Update
	case "delete":
		return rules.Delete
	default:
		return Disabled
	}
}

// adminExpr compiles the administrator condition for the store's rule
// language. The caller must be authenticated and hold one of the configured
// administrator emails. Emails are normalized (trim + lowercase) so the rule
// matches the same identities the facade's admin check accepts; stored auth
// emails are lowercased and the rule comparison is case-sensitive.
func adminExpr(adminEmails []string) string {
	conditions := make([]string, 0, len(adminEmails))
	for _, email := range adminEmails {
		email = security.NormalizeEmail(email)
		if email == "" {
			continue
		}
		conditions = append(conditions, fmt.Sprintf("@request.auth.email = '%s'", strings.ReplaceAll(email, "'", "")))
	}
	if len(conditions) == 0 {
		// No admins configured: fail closed.
		return "1 = 0"
	}
	return fmt.Sprintf(`@request.auth.id != "" && (%s)`, strings.Join(conditions, " || "))
}

// CompileRule converts an access level into a store rule. An empty string
// rule means "anyone"; a nil rule locks the operation.
func CompileRule(access Access, adminEmails []string) *string {
	switch access {
	case Anyone:
		return types.Pointer("")
	case AdminOnly:
		return types.Pointer(adminExpr(adminEmails))
	default:
		return nil
	}
}

// Sync stamps the compiled policy onto every governed collection. It is run
// at serve time because the administrator set comes from runtime
// configuration, not from a migration.
func Sync(app core.App, adminEmails []string) error {
	for name, rules := range Table {
		collection, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			return fmt.Errorf("policy: find collection %s: %w", name, err)
		}

		collection.ListRule = CompileRule(rules.List, adminEmails)
		collection.ViewRule = CompileRule(rules.View, adminEmails)
		collection.CreateRule = CompileRule(rules.Create, adminEmails)
		collection.UpdateRule = CompileRule(rules.Update, adminEmails)
		collection.DeleteRule = CompileRule(rules.Delete, adminEmails)

		if err := app.Save(collection); err != nil {
			return fmt.Errorf("policy: save collection %s: %w", name, err)
		}

		slog.Info("access policy applied",
			"collection", name,
			"list", rules.List.String(),
			"create", rules.Create.String(),
			"update", rules.Update.String(),
			"delete", rules.Delete.String(),
		)
	}
	return nil
}

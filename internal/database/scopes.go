package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

// Predicate is a single WHERE fragment with its bind arguments.
type Predicate struct {
	SQL  string
	Args []any
}

// MembershipFunc returns the predicate a non-admin actor must satisfy to see a row.
type MembershipFunc func(actor *models.User) Predicate

// Rule decides which rows of one table an actor may see.
type Rule struct {
	Table      string
	Membership MembershipFunc
	// Joins are belongs-to relations loaded with a LEFT JOIN on reads.
	Joins []string
	// Preloads are relations fetched with a follow-up query on reads.
	Preloads []string
}

// Predicates composes the visibility conditions for actor. An empty id means
// "any row". actor must not be nil.
func (r Rule) Predicates(actor *models.User, id string) []Predicate {
	preds := make([]Predicate, 0, 3)

	if id != "" {
		preds = append(preds, Predicate{SQL: r.Table + ".id = ?", Args: []any{id}})
	}

	if !actor.IsAdmin {
		preds = append(preds, Predicate{SQL: r.Table + ".is_active = ?", Args: []any{true}})
		if r.Membership != nil {
			preds = append(preds, r.Membership(actor))
		}
	}

	return preds
}

// Filter applies only the WHERE conditions, so it is safe for UPDATE statements.
func (r Rule) Filter(actor *models.User, id string) func(db *gorm.DB) *gorm.DB {
	preds := r.Predicates(actor, id)
	return func(db *gorm.DB) *gorm.DB {
		for _, p := range preds {
			db = db.Where(p.SQL, p.Args...)
		}
		return db
	}
}

// Query is Filter plus the relation loading used by reads.
func (r Rule) Query(actor *models.User, id string) func(db *gorm.DB) *gorm.DB {
	filter := r.Filter(actor, id)
	return func(db *gorm.DB) *gorm.DB {
		for _, j := range r.Joins {
			db = db.Joins(j)
		}
		for _, p := range r.Preloads {
			db = db.Preload(p)
		}
		return filter(db)
	}
}

// Column qualifies column with the rule's table.
func (r Rule) Column(column string) string {
	return r.Table + "." + column
}

// ProjectRule: non-admins see active projects they participate in.
var ProjectRule = Rule{
	Table: "projects",
	Membership: func(actor *models.User) Predicate {
		return Predicate{
			SQL: "EXISTS (SELECT 1 FROM project_participants pp " +
				"WHERE pp.project_id = projects.id AND pp.user_id = ?)",
			Args: []any{actor.ID},
		}
	},
	Joins:    []string{"Owner"},
	Preloads: []string{"Participants"},
}

// TaskRule: non-admins see active tasks of active projects they participate in.
var TaskRule = Rule{
	Table: "tasks",
	Membership: func(actor *models.User) Predicate {
		return Predicate{
			SQL: "EXISTS (SELECT 1 FROM project_participants pp " +
				"JOIN projects p ON p.id = pp.project_id " +
				"WHERE pp.project_id = tasks.project_id AND pp.user_id = ? AND p.is_active = ?)",
			Args: []any{actor.ID, true},
		}
	},
	Joins: []string{"Project", "Executor", "Checker"},
}

// UserRule: non-admins see themselves and active users sharing an active project with them.
var UserRule = Rule{
	Table: "users",
	Membership: func(actor *models.User) Predicate {
		return Predicate{
			SQL: "(users.id = ? OR EXISTS (SELECT 1 FROM project_participants mine " +
				"JOIN project_participants theirs ON theirs.project_id = mine.project_id " +
				"JOIN projects p ON p.id = mine.project_id " +
				"WHERE mine.user_id = ? AND theirs.user_id = users.id AND p.is_active = ?))",
			Args: []any{actor.ID, actor.ID, true},
		}
	},
}

package domain

// taskPolicy captures what a single role may do with tasks. Keeping the rules
// in a table keyed by Role means adding a role is a single new entry here; a
// role missing from the table is denied everything.
type taskPolicy struct {
	viewAll   bool
	create    bool
	delete    bool
	// update decides whether the actor may apply change to t.
	update func(actorID string, t *Task, change TaskChange) error
}

var taskPolicies = map[Role]taskPolicy{
	RoleManager: {
		viewAll: true,
		create:  true,
		delete:  true,
		// Managers may modify any field of any task.
		update: func(string, *Task, TaskChange) error { return nil },
	},
	RoleEmployee: {
		// Employees may change only the status of their own task.
		update: func(actorID string, t *Task, change TaskChange) error {
			if t.AssignedTo != actorID {
				return ErrForbidden
			}
			if !change.StatusOnly() {
				return ErrForbidden
			}
			return nil
		},
	},
}

// AuthorizeView allows managers to read any task and employees only their own.
func AuthorizeView(actor Actor, t *Task) error {
	p, ok := taskPolicies[actor.Role]
	if !ok {
		return ErrForbidden
	}
	if p.viewAll || t.AssignedTo == actor.ID {
		return nil
	}
	return ErrForbidden
}

// AuthorizeCreate allows only managers to create tasks.
func AuthorizeCreate(actor Actor) error {
	if p, ok := taskPolicies[actor.Role]; ok && p.create {
		return nil
	}
	return ErrForbidden
}

// AuthorizeUpdate checks the actor's role policy against the current task and
// the exact field set present in the request.
func AuthorizeUpdate(actor Actor, t *Task, change TaskChange) error {
	p, ok := taskPolicies[actor.Role]
	if !ok {
		return ErrForbidden
	}
	return p.update(actor.ID, t, change)
}

// AuthorizeDelete allows only managers to delete tasks.
func AuthorizeDelete(actor Actor) error {
	if p, ok := taskPolicies[actor.Role]; ok && p.delete {
		return nil
	}
	return ErrForbidden
}

// ListScope returns the assignee filter for list queries: empty for roles
// that see every task, the actor's own id otherwise.
func ListScope(actor Actor) string {
	if p, ok := taskPolicies[actor.Role]; ok && p.viewAll {
		return ""
	}
	return actor.ID
}

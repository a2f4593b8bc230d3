package blog

import (
	"context"

	"github.com/skarle/blogstore/db"
	"github.com/skarle/blogstore/models"
	"github.com/skarle/blogstore/schema"
)

// CreateUser inserts a user with the given name, email, and password hash,
// then fetches and returns the persisted row including its database-assigned
// id. Constraint violations and connection failures propagate as the store's
// errors, mapped through the db package sentinels.
func CreateUser(ctx context.Context, q db.Querier, name, email, passwordHash string) (*models.User, error) {
	d, err := dialectOf(q)
	if err != nil {
		return nil, err
	}

	nu := models.NewUser{Name: name, Email: email, PasswordHash: passwordHash}
	res, err := q.Exec(ctx, schema.Users.InsertSQL(d), nu.Name, nu.Email, nu.PasswordHash)
	if err != nil {
		return nil, err
	}

	return models.ScanUser(createdRow(ctx, q, schema.Users, d, res))
}

// DeleteUser removes the user matching userID and returns the number of rows
// deleted. Deleting a nonexistent id succeeds with a count of zero.
func DeleteUser(ctx context.Context, q db.Querier, userID int64) (int64, error) {
	return deleteByKey(ctx, q, schema.Users, userID)
}

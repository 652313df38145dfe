// Package indexes declares every MongoDB index the service relies on.
// EnsureAll runs at startup and in test setup; each ensure function is
// idempotent, and errors are aggregated so startup can fail fast with
// the whole picture.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureProjects(ctx, db); err != nil {
		problems = append(problems, "projects: "+err.Error())
	}
	if err := ensureIdeas(ctx, db); err != nil {
		problems = append(problems, "project_ideas: "+err.Error())
	}
	if err := ensureTasks(ctx, db); err != nil {
		problems = append(problems, "tasks: "+err.Error())
	}
	if err := ensureMeetings(ctx, db); err != nil {
		problems = append(problems, "meetings: "+err.Error())
	}
	if err := ensureDiscussions(ctx, db); err != nil {
		problems = append(problems, "discussions: "+err.Error())
	}
	if err := ensureMessages(ctx, db); err != nil {
		problems = append(problems, "messages: "+err.Error())
	}
	if err := ensureNotifications(ctx, db); err != nil {
		problems = append(problems, "notifications: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func create(ctx context.Context, db *mongo.Database, coll string, models []mongo.IndexModel) error {
	_, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
	return err
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "users", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetName("uniq_email_ci").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("role_status"),
		},
	})
}

func ensureProjects(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "projects", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "team_member_ids", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("member_status"),
		},
		{
			Keys:    bson.D{{Key: "supervisor_id", Value: 1}},
			Options: options.Index().SetName("supervisor"),
		},
	})
}

func ensureIdeas(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "project_ideas", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "team_members.email", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("member_email_status"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("status_created"),
		},
	})
}

func ensureTasks(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "tasks", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("project_created"),
		},
	})
}

func ensureMeetings(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "meetings", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "scheduled_at", Value: 1}},
			Options: options.Index().SetName("project_scheduled"),
		},
	})
}

func ensureDiscussions(ctx context.Context, db *mongo.Database) error {
	if err := create(ctx, db, "discussions", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("project_created"),
		},
	}); err != nil {
		return err
	}
	return create(ctx, db, "discussion_comments", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "discussion_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("discussion_created"),
		},
	})
}

func ensureMessages(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "messages", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "recipient_id", Value: 1}, {Key: "read", Value: 1}},
			Options: options.Index().SetName("recipient_read"),
		},
		{
			Keys:    bson.D{{Key: "sender_id", Value: 1}, {Key: "recipient_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("conversation"),
		},
	})
}

func ensureNotifications(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "notifications", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "read", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("user_read_created"),
		},
	})
}

package mongo

import (
	"context"
	"time"

	"github.com/yoockh/jobboard/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
)

type RelayEventRepository interface {
	Insert(ctx context.Context, ev *models.RelayEvent) error
}

type relayEventRepo struct {
	col *mongo.Collection
}

func NewRelayEventRepo(db *mongo.Database, collection string) RelayEventRepository {
	return &relayEventRepo{col: db.Collection(collection)}
}

func (r *relayEventRepo) Insert(ctx context.Context, ev *models.RelayEvent) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, ev)
	return err
}

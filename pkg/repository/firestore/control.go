package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/riskledger/riskledger/pkg/domain/model"
	"github.com/riskledger/riskledger/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type controlRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func (r *controlRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + controlsCollection)
}

func newControlRepository(client *firestore.Client) *controlRepository {
	return &controlRepository{client: client}
}

func (r *controlRepository) Create(ctx context.Context, control *model.Control) (*model.Control, error) {
	if err := control.RiskID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "control requires a risk ID")
	}

	now := time.Now().UTC()
	created := *control
	created.ID = types.NewControlID()
	created.Status = control.Status.Normalize()
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.collection().Doc(created.ID.String())
	if _, err := docRef.Create(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create control", goerr.V("title", control.Title))
	}

	return &created, nil
}

func (r *controlRepository) Get(ctx context.Context, id types.ControlID) (*model.Control, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid control ID")
	}

	doc, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "control not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get control from firestore")
	}

	var control model.Control
	if err := doc.DataTo(&control); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal control")
	}

	return &control, nil
}

func (r *controlRepository) ListByRisk(ctx context.Context, riskID types.RiskID) ([]*model.Control, error) {
	iter := r.collection().
		Where("risk_id", "==", riskID.String()).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var controls []*model.Control
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate controls")
		}

		var control model.Control
		if err := doc.DataTo(&control); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal control")
		}
		controls = append(controls, &control)
	}

	return controls, nil
}

func (r *controlRepository) Update(ctx context.Context, control *model.Control) (*model.Control, error) {
	existing, err := r.Get(ctx, control.ID)
	if err != nil {
		return nil, err
	}

	updated := *control
	updated.RiskID = existing.RiskID
	updated.Status = control.Status.Normalize()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	docRef := r.collection().Doc(updated.ID.String())
	if _, err := docRef.Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update control", goerr.V("id", control.ID))
	}

	return &updated, nil
}

func (r *controlRepository) Delete(ctx context.Context, id types.ControlID) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}

	if _, err := r.collection().Doc(id.String()).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete control", goerr.V("id", id))
	}

	return nil
}

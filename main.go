package fodmapdb

import (
	"go.uber.org/zap"

	"github.com/jfranmatheu/EverydayFODMAP-sub001/db"
	"github.com/jfranmatheu/EverydayFODMAP-sub001/ps"
)

type Instance struct {
	Store *ps.Store
}

// Open hydrates a store from its blob and wraps it. The store is shared:
// every DB handle obtained from the same Instance sees the same tables.
func Open(blob ps.BlobStore, log *zap.Logger) *Instance {
	store := ps.NewStore(blob, log)
	store.Load()
	return &Instance{
		Store: store,
	}
}

func (instance *Instance) DB(log *zap.Logger) *db.DB {
	return db.New(instance.Store, log)
}

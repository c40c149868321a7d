package search

import (
	"context"

	"app/internal/domain/model"

	"github.com/elastic/go-elasticsearch/v9"
)

// Indexer binds a client and index name to the catalog operations the
// usecases need.
type Indexer struct {
	ES    *elasticsearch.Client
	Index string
}

func NewIndexer(es *elasticsearch.Client, index string) *Indexer {
	return &Indexer{ES: es, Index: index}
}

func (i *Indexer) IndexProduct(ctx context.Context, p model.Product) error {
	return IndexProduct(ctx, i.ES, i.Index, p)
}

func (i *Indexer) RemoveProduct(ctx context.Context, productID int64) error {
	return DeleteProduct(ctx, i.ES, i.Index, productID)
}

func (i *Indexer) SearchIDs(ctx context.Context, query string, from, size int) (int64, []int64, error) {
	total, docs, err := Search(ctx, i.ES, i.Index, query, from, size)
	if err != nil {
		return 0, nil, err
	}
	ids := make([]int64, len(docs))
	for n, d := range docs {
		ids[n] = d.ID
	}
	return total, ids, nil
}

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"app/internal/domain/model"

	"github.com/elastic/go-elasticsearch/v9"
)

// ProductDoc is the indexed shape of a product.
type ProductDoc struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	BakeryID        int64  `json:"bakery_id"`
	CategoryID      int64  `json:"category_id"`
	DiscountedPrice int64  `json:"discounted_price"`
	IsAvailable     bool   `json:"is_available"`
}

func DocFromProduct(p model.Product) ProductDoc {
	return ProductDoc{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		BakeryID:        p.BakeryID,
		CategoryID:      p.CategoryID,
		DiscountedPrice: p.DiscountedPrice,
		IsAvailable:     p.IsAvailable,
	}
}

// IndexProduct upserts one product document. Best effort: callers log
// failures instead of failing the catalog write.
func IndexProduct(ctx context.Context, es *elasticsearch.Client, index string, p model.Product) error {
	doc := DocFromProduct(p)
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	res, err := es.Index(
		index,
		bytes.NewReader(data),
		es.Index.WithDocumentID(strconv.FormatInt(p.ID, 10)),
		es.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("search: index product %d: %s", p.ID, res.Status())
	}
	return nil
}

func DeleteProduct(ctx context.Context, es *elasticsearch.Client, index string, productID int64) error {
	res, err := es.Delete(
		index,
		strconv.FormatInt(productID, 10),
		es.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("search: delete product %d: %s", productID, res.Status())
	}
	return nil
}

// Search runs a fuzzy multi-match over name and description, filtered
// to available products.
func Search(ctx context.Context, es *elasticsearch.Client, index, query string, from, size int) (int64, []ProductDoc, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":     query,
						"fields":    []string{"name^2", "description"},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"is_available": true},
				},
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source ProductDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	docs := make([]ProductDoc, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		docs[i] = hit.Source
	}
	return r.Hits.Total.Value, docs, nil
}

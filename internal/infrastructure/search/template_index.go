// Package search indexes templates in Elasticsearch.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/tradedocs-portal/internal/domain/entity"
	"github.com/oksasatya/tradedocs-portal/internal/domain/repository"
)

// TemplateIndex keeps one document per template, keyed by template id.
type TemplateIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewTemplateIndex(es *elasticsearch.Client, index string) *TemplateIndex {
	return &TemplateIndex{es: es, index: index}
}

type templateDoc struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Fields      []string `json:"fields"`
}

func (x *TemplateIndex) Index(ctx context.Context, t *entity.Template) error {
	body, err := json.Marshal(templateDoc{ID: t.ID, Title: t.Title, Description: t.Description, Fields: t.FieldNames()})
	if err != nil {
		return err
	}
	res, err := esapi.IndexRequest{
		Index:      x.index,
		DocumentID: t.ID,
		Body:       bytes.NewReader(body),
		Refresh:    "true",
	}.Do(ctx, x.es)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index template %s: %s", t.ID, res.String())
	}
	return nil
}

// Search returns matching template ids, best match first.
func (x *TemplateIndex) Search(ctx context.Context, query string) ([]string, error) {
	q := map[string]any{
		"size":    50,
		"_source": []string{"id"},
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     strings.TrimSpace(query),
				"fields":    []string{"id^3", "title^2", "description", "fields"},
				"fuzziness": "AUTO",
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, err
	}
	res, err := x.es.Search(
		x.es.Search.WithContext(ctx),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search templates: %s", res.String())
	}

	var out struct {
		Hits struct {
			Hits []struct {
				Source templateDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(out.Hits.Hits))
	for _, h := range out.Hits.Hits {
		ids = append(ids, h.Source.ID)
	}
	return ids, nil
}

var _ repository.TemplateIndex = (*TemplateIndex)(nil)

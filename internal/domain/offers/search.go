package offers

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/FACorreiaa/travel-card-offers/internal/domain/source"
)

// SearchDocument is one indexed offer, searchable by its visible text
// independent of any card selection.
type SearchDocument struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Label       string `json:"label"`
}

// SearchHit is one full-text search result with its relevance score.
type SearchHit struct {
	Document SearchDocument `json:"document"`
	Score    float64        `json:"score"`
}

// SearchIndex is an in-memory full-text index over every loaded offer row.
// It is rebuilt wholesale on each source reload.
type SearchIndex struct {
	index bleve.Index
}

// NewSearchIndex builds the index from a snapshot's offer rows.
func NewSearchIndex(snap *source.Snapshot, sources []source.Config, aliases source.FieldAliases) (*SearchIndex, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create offer index: %w", err)
	}

	batch := index.NewBatch()
	for _, src := range sources {
		for i, row := range snap.Offers[src.Name] {
			title, _ := row.FirstField(aliases.Title)
			if title == "" {
				title = row["Website"]
			}
			desc, _ := row.FirstField(aliases.Desc)
			if src.Permanent {
				desc, _ = row.FirstField(aliases.PermanentBenefit)
			}
			if title == "" && desc == "" {
				continue
			}

			doc := SearchDocument{
				ID:          fmt.Sprintf("%s_%d", src.Name, i),
				Title:       title,
				Description: desc,
				Source:      src.Name,
				Label:       src.Label,
			}
			if err := batch.Index(doc.ID, doc); err != nil {
				return nil, fmt.Errorf("index offer %s: %w", doc.ID, err)
			}
		}
	}

	if err := index.Batch(batch); err != nil {
		return nil, fmt.Errorf("batch index offers: %w", err)
	}
	return &SearchIndex{index: index}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = simple.Name

	keywordField := bleve.NewTextFieldMapping()
	keywordField.Analyzer = keyword.Name

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("title", textField)
	docMapping.AddFieldMappingsAt("description", textField)
	docMapping.AddFieldMappingsAt("source", keywordField)
	docMapping.AddFieldMappingsAt("label", keywordField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = simple.Name
	return indexMapping
}

// Search runs a match query with one edit of fuzziness for typo tolerance.
func (si *SearchIndex) Search(query string, limit int) ([]SearchHit, error) {
	if limit <= 0 {
		limit = 10
	}

	matchQuery := bleve.NewMatchQuery(query)
	matchQuery.SetFuzziness(1)

	req := bleve.NewSearchRequest(matchQuery)
	req.Size = limit
	req.Fields = []string{"*"}

	res, err := si.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("offer search: %w", err)
	}

	hits := make([]SearchHit, 0, len(res.Hits))
	for _, hit := range res.Hits {
		doc := SearchDocument{ID: hit.ID}
		if v, ok := hit.Fields["title"].(string); ok {
			doc.Title = v
		}
		if v, ok := hit.Fields["description"].(string); ok {
			doc.Description = v
		}
		if v, ok := hit.Fields["source"].(string); ok {
			doc.Source = v
		}
		if v, ok := hit.Fields["label"].(string); ok {
			doc.Label = v
		}
		hits = append(hits, SearchHit{Document: doc, Score: hit.Score})
	}
	return hits, nil
}

// DocumentCount returns the number of indexed offers.
func (si *SearchIndex) DocumentCount() (uint64, error) {
	return si.index.DocCount()
}

// Close releases the index.
func (si *SearchIndex) Close() error {
	if si.index != nil {
		return si.index.Close()
	}
	return nil
}

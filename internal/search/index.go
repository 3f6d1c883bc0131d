// Package search provides full-text search over authors using Bleve.
package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/hmans/authors/internal/author"
)

// DefaultSearchLimit is the default maximum number of search results.
const DefaultSearchLimit = 1000

// Index wraps a Bleve in-memory index of authors. Documents are keyed by a
// caller-assigned record key rather than the author id, since ids may repeat.
type Index struct {
	index bleve.Index
}

// authorDocument is the structure stored in the Bleve index.
type authorDocument struct {
	Name   string   `json:"name"`
	Gender string   `json:"gender,omitempty"`
	Age    *float64 `json:"age,omitempty"`
}

// NewIndex creates a new in-memory Bleve index.
func NewIndex() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}
	return &Index{index: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = "standard"

	// Gender is matched exactly, e.g. gender:F
	keywordFieldMapping := bleve.NewKeywordFieldMapping()

	authorMapping := bleve.NewDocumentMapping()
	authorMapping.AddFieldMappingsAt("name", textFieldMapping)
	authorMapping.AddFieldMappingsAt("gender", keywordFieldMapping)
	authorMapping.AddFieldMappingsAt("age", bleve.NewNumericFieldMapping())

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = authorMapping
	indexMapping.DefaultAnalyzer = "standard"
	indexMapping.IndexDynamic = false
	indexMapping.StoreDynamic = false
	indexMapping.ScoringModel = "bm25"

	return indexMapping
}

// Close closes the index.
func (idx *Index) Close() error {
	return idx.index.Close()
}

func toDocument(a *author.Author) authorDocument {
	doc := authorDocument{Name: a.Info.Name}
	if a.Info.Gender != nil {
		doc.Gender = *a.Info.Gender
	}
	if a.Info.Age != nil {
		age := float64(*a.Info.Age)
		doc.Age = &age
	}
	return doc
}

// IndexAuthor adds or replaces the document stored under key.
func (idx *Index) IndexAuthor(key string, a *author.Author) error {
	return idx.index.Index(key, toDocument(a))
}

// IndexAuthors indexes multiple authors in one batch, each under its key.
func (idx *Index) IndexAuthors(docs map[string]*author.Author) error {
	batch := idx.index.NewBatch()
	for key, a := range docs {
		if err := batch.Index(key, toDocument(a)); err != nil {
			return err
		}
	}
	return idx.index.Batch(batch)
}

// DeleteAuthor removes the document stored under key.
func (idx *Index) DeleteAuthor(key string) error {
	return idx.index.Delete(key)
}

// Search executes a query string search and returns the keys of matching documents.
// The query string syntax supports terms ("somrita"), prefixes ("som*"),
// field matches ("gender:F") and numeric ranges ("age:>30").
// A limit of 0 or less uses DefaultSearchLimit.
func (idx *Index) Search(queryStr string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	query := bleve.NewQueryStringQuery(queryStr)
	searchRequest := bleve.NewSearchRequest(query)
	searchRequest.Size = limit

	result, err := idx.index.Search(searchRequest)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		keys = append(keys, hit.ID)
	}
	return keys, nil
}

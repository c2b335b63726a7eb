package index

import (
	"sort"
	"strings"

	"github.com/doquery/doquery/internal/analysis"
	"github.com/doquery/doquery/internal/document"
	apperrors "github.com/doquery/doquery/pkg/errors"
)

// InvertedIndex maps terms to the documents and positions they occur at, and
// is the authoritative store of indexed documents.
//
// InvertedIndex is not safe for concurrent use; see indexer.Engine.
type InvertedIndex struct {
	postings   map[string]map[string][]int
	documents  map[string]*document.Document
	docTerms   map[string][]string
	docLengths map[string]int

	uniqueTerms int
	totalTerms  int
}

func New() *InvertedIndex {
	return &InvertedIndex{
		postings:   make(map[string]map[string][]int),
		documents:  make(map[string]*document.Document),
		docTerms:   make(map[string][]string),
		docLengths: make(map[string]int),
	}
}

// AddDocument indexes every field of doc and returns the number of term
// occurrences recorded. Re-adding an existing ID replaces the previous version
// and all of its postings. Positions run across fields in field order.
func (m *InvertedIndex) AddDocument(doc *document.Document, analyzer analysis.Analyzer) (int, error) {
	if doc == nil {
		return 0, apperrors.InvalidArgument("index.AddDocument", "document must not be nil")
	}
	if analyzer == nil {
		return 0, apperrors.InvalidArgument("index.AddDocument", "analyzer must not be nil")
	}
	docID := doc.ID()
	if docID == "" {
		return 0, apperrors.InvalidArgument("index.AddDocument", "document id must not be empty")
	}

	if _, exists := m.documents[docID]; exists {
		m.remove(docID)
	}
	m.documents[docID] = doc

	pos := 0
	terms := make([]string, 0)
	for _, field := range doc.Fields() {
		for _, term := range analyzer.Analyze(field.Value.String()) {
			term = strings.ToLower(term)
			if term == "" {
				continue
			}
			if m.addPosting(term, docID, pos) {
				terms = append(terms, term)
			}
			pos++
		}
	}
	m.docTerms[docID] = terms
	m.docLengths[docID] = pos
	return pos, nil
}

// addPosting records one occurrence and reports whether it is the first
// occurrence of term in docID.
func (m *InvertedIndex) addPosting(term, docID string, pos int) bool {
	docs, exists := m.postings[term]
	if !exists {
		docs = make(map[string][]int)
		m.postings[term] = docs
		m.uniqueTerms++
	}
	positions, seen := docs[docID]
	docs[docID] = append(positions, pos)
	m.totalTerms++
	return !seen
}

// DocumentsForTerm returns a copy of the term's docID → positions mapping.
// An unknown term yields an empty mapping.
func (m *InvertedIndex) DocumentsForTerm(term string) (map[string][]int, error) {
	if term == "" {
		return nil, apperrors.InvalidArgument("index.DocumentsForTerm", "term must not be empty")
	}
	docs := m.postings[strings.ToLower(term)]
	out := make(map[string][]int, len(docs))
	for docID, positions := range docs {
		out[docID] = append([]int(nil), positions...)
	}
	return out, nil
}

// Postings is DocumentsForTerm as a DocID-ordered list.
func (m *InvertedIndex) Postings(term string) (PostingList, error) {
	docs, err := m.DocumentsForTerm(term)
	if err != nil {
		return nil, err
	}
	return NewPostingList(docs), nil
}

// Document looks up a document by ID.
func (m *InvertedIndex) Document(docID string) (*document.Document, bool, error) {
	if docID == "" {
		return nil, false, apperrors.InvalidArgument("index.Document", "document id must not be empty")
	}
	doc, ok := m.documents[docID]
	return doc, ok, nil
}

// DocumentFrequency is the number of documents containing term.
func (m *InvertedIndex) DocumentFrequency(term string) int {
	if term == "" {
		return 0
	}
	return len(m.postings[strings.ToLower(term)])
}

// RemoveDocument deletes the document and all its postings. It returns false
// if no such document exists.
func (m *InvertedIndex) RemoveDocument(docID string) (bool, error) {
	if docID == "" {
		return false, apperrors.InvalidArgument("index.RemoveDocument", "document id must not be empty")
	}
	if _, exists := m.documents[docID]; !exists {
		return false, nil
	}
	m.remove(docID)
	return true, nil
}

func (m *InvertedIndex) remove(docID string) {
	for _, term := range m.docTerms[docID] {
		docs, ok := m.postings[term]
		if !ok {
			continue
		}
		m.totalTerms -= len(docs[docID])
		delete(docs, docID)
		if len(docs) == 0 {
			delete(m.postings, term)
			m.uniqueTerms--
		}
	}
	delete(m.documents, docID)
	delete(m.docTerms, docID)
	delete(m.docLengths, docID)
}

// AllDocuments returns the indexed documents ordered by ID.
func (m *InvertedIndex) AllDocuments() []*document.Document {
	docs := make([]*document.Document, 0, len(m.documents))
	for _, doc := range m.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ID() < docs[j].ID()
	})
	return docs
}

// Snapshot returns every term with its postings, both sorted.
func (m *InvertedIndex) Snapshot() []TermEntry {
	entries := make([]TermEntry, 0, len(m.postings))
	for term, docs := range m.postings {
		entries = append(entries, TermEntry{
			Term:     term,
			Postings: NewPostingList(docs),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Term < entries[j].Term
	})
	return entries
}

func (m *InvertedIndex) Clear() {
	m.postings = make(map[string]map[string][]int)
	m.documents = make(map[string]*document.Document)
	m.docTerms = make(map[string][]string)
	m.docLengths = make(map[string]int)
	m.uniqueTerms = 0
	m.totalTerms = 0
}

func (m *InvertedIndex) DocumentCount() int {
	return len(m.documents)
}

func (m *InvertedIndex) UniqueTermCount() int {
	return m.uniqueTerms
}

func (m *InvertedIndex) TotalTermCount() int {
	return m.totalTerms
}

// DocumentLength is the number of term occurrences indexed for docID.
func (m *InvertedIndex) DocumentLength(docID string) int {
	return m.docLengths[docID]
}

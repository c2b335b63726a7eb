package index

import "sort"

// Posting lists the positions at which a term occurs in one document.
type Posting struct {
	DocID     string `json:"doc_id"`
	Positions []int  `json:"positions"`
}

// Frequency is the number of occurrences of the term in the document.
func (p Posting) Frequency() int {
	return len(p.Positions)
}

// PostingList is ordered by DocID.
type PostingList []Posting

// NewPostingList converts a docID → positions mapping into a PostingList
// sorted by DocID. Position slices are copied.
func NewPostingList(docs map[string][]int) PostingList {
	list := make(PostingList, 0, len(docs))
	for docID, positions := range docs {
		list = append(list, Posting{
			DocID:     docID,
			Positions: append([]int(nil), positions...),
		})
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].DocID < list[j].DocID
	})
	return list
}

// TermEntry pairs a term with its postings.
type TermEntry struct {
	Term     string      `json:"term"`
	Postings PostingList `json:"postings"`
}

// Package suspects maps clue text to the suspect it implicates using a small chained hash table.
package suspects

import (
	"iter"
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// BucketCount is the fixed number of chains in an Index.
const BucketCount = 10

// Association ties a clue to the suspect it points at.
type Association struct {
	Clue    string
	Suspect string
	next    *Association
}

// Index is a fixed-size hash table of associations. Collisions are chained and new associations go to the head of
// their chain, so for a clue inserted twice Lookup returns the most recent suspect. The zero value is empty.
type Index struct {
	buckets [BucketCount]*Association
	size    int
}

// DefaultAssociations are the clue links of the Detective Quest case, in insertion order.
var DefaultAssociations = []Association{
	{Clue: "Pegada de lama", Suspect: "Jardineiro"},
	{Clue: "Pegada de sapato", Suspect: "Jardineiro"},
	{Clue: "Lenço perfumado", Suspect: "Madame Clarisse"},
	{Clue: "Perfume caro", Suspect: "Madame Clarisse"},
	{Clue: "Copo quebrado", Suspect: "Mordomo"},
	{Clue: "Carta rasgada", Suspect: "Professor Edgar"},
}

// NewIndex inserts assocs in order into a new Index.
func NewIndex(assocs ...Association) *Index {
	idx := &Index{}
	for _, a := range assocs {
		idx.Insert(a.Clue, a.Suspect)
	}
	return idx
}

// Hash sums the character codes of key and reduces the sum to a bucket number in [0, BucketCount).
func Hash(key string) int {
	sum := 0
	for _, r := range key {
		sum += int(r)
	}
	return sum % BucketCount
}

// Insert prepends an association to the chain of its bucket. It does not check whether clue is already present.
func (idx *Index) Insert(clue, suspect string) {
	bucket := Hash(clue)
	idx.buckets[bucket] = &Association{
		Clue:    clue,
		Suspect: suspect,
		next:    idx.buckets[bucket],
	}
	idx.size++
}

// Lookup returns the suspect of the first association in the chain whose clue equals clue exactly.
func (idx *Index) Lookup(clue string) (string, bool) {
	for a := idx.buckets[Hash(clue)]; a != nil; a = a.next {
		if a.Clue == clue {
			return a.Suspect, true
		}
	}
	return "", false
}

// CountForSuspect counts the associations, across every bucket, whose suspect equals name exactly.
func (idx *Index) CountForSuspect(name string) int {
	count := 0
	for _, head := range idx.buckets {
		for a := head; a != nil; a = a.next {
			if a.Suspect == name {
				count++
			}
		}
	}
	return count
}

// CountCollected counts the distinct clues in clues that Lookup attributes to name.
func (idx *Index) CountCollected(name string, clues iter.Seq[string]) int {
	seen := mapset.New[string]()
	count := 0
	for clue := range clues {
		if seen.Has(clue) {
			continue
		}
		seen.Put(clue)
		if suspect, ok := idx.Lookup(clue); ok && suspect == name {
			count++
		}
	}
	return count
}

// Len is the number of associations, counting shadowed duplicates.
func (idx *Index) Len() int {
	return idx.size
}

// All yields every association with its bucket, bucket by bucket and head first within a chain.
func (idx *Index) All() iter.Seq2[int, Association] {
	return func(yield func(int, Association) bool) {
		for bucket, head := range idx.buckets {
			for a := head; a != nil; a = a.next {
				if !yield(bucket, Association{Clue: a.Clue, Suspect: a.Suspect}) {
					return
				}
			}
		}
	}
}

// Suspects returns the distinct suspect names in ascending order.
func (idx *Index) Suspects() []string {
	var names []string
	for _, a := range idx.All() {
		if !slices.Contains(names, a.Suspect) {
			names = append(names, a.Suspect)
		}
	}
	slices.Sort(names)
	return names
}

// Package matcher decides whether library files correspond to song list queries.
//
// Two strategies are provided: [MatchFilename] works on file name stems and [MatchMetadata] scores
// embedded tags with a weighted token similarity. [CompareMetadata] and [FindDuplicates] compare
// tag records with each other and [SimilarEntries] pairs near-identical song list entries.
package matcher
